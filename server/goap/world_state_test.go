package goap

import "testing"

func TestWorldState_WithDoesNotMutate(t *testing.T) {
	s := WorldState{}
	armed := s.WithHasWeapon(true)

	if s.HasWeapon {
		t.Error("original state was mutated")
	}
	if !armed.HasWeapon {
		t.Error("HasWeapon = false, want true")
	}
	if armed == s {
		t.Error("states with different facts compare equal")
	}
	if armed != (WorldState{HasWeapon: true}) {
		t.Errorf("armed = %+v, want only HasWeapon", armed)
	}
}

func TestWorldState_EqualStatesShareMapKey(t *testing.T) {
	closed := map[WorldState]struct{}{}
	closed[WorldState{}.WithIsFed(true).WithIsRested(true)] = struct{}{}

	if _, ok := closed[WorldState{}.WithIsRested(true).WithIsFed(true)]; !ok {
		t.Error("equal states reached by different paths should be the same key")
	}
}

func TestWorldState_String(t *testing.T) {
	if got := (WorldState{}).String(); got != "none" {
		t.Errorf("String() = %q, want %q", got, "none")
	}
	s := WorldState{HasWeapon: true, EnemyDead: true}
	if got := s.String(); got != "weapon|enemyDead" {
		t.Errorf("String() = %q, want %q", got, "weapon|enemyDead")
	}
}
