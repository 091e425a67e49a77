package goap

import (
	"context"
	"math"
	"testing"
)

type testAgent struct {
	name string
}

type stubAction struct {
	Definition
	valid  bool
	resets int
}

func (s *stubAction) Validate(*testAgent) bool { return s.valid }
func (s *stubAction) Perform(*testAgent) bool  { return true }
func (s *stubAction) Reset()                   { s.resets++ }

func newStub(name string, cost float32, pre Precondition, eff Effect) *stubAction {
	return &stubAction{
		Definition: Definition{Name: name, Cost: cost, Precondition: pre, Effect: eff},
		valid:      true,
	}
}

// 元の世界: 武器なし、他は全て良好、敵は死亡扱い
var baseState = WorldState{
	HasWeapon:    false,
	IsHealthy:    true,
	IsRested:     true,
	IsFed:        true,
	EnemyVisible: false,
	EnemyDead:    true,
}

func pickupWeapon() *stubAction {
	return newStub("PickupWeapon", 1,
		func(s WorldState) bool { return !s.HasWeapon },
		func(s WorldState) WorldState { return s.WithHasWeapon(true) })
}

func TestPlanner_GetWeapon(t *testing.T) {
	planner := NewPlanner[*testAgent]()
	goal := Goal[*testAgent]{Name: "Get Weapon", Satisfies: func(s WorldState) bool { return s.HasWeapon }}
	pickup := pickupWeapon()

	plan, ok := planner.Plan(context.Background(), &testAgent{}, []Action[*testAgent]{pickup}, baseState, goal)
	if !ok {
		t.Fatal("expected a plan")
	}
	if len(plan.Actions) != 1 || plan.Actions[0] != Action[*testAgent](pickup) {
		t.Fatalf("plan = %v, want [PickupWeapon]", Names(plan.Actions))
	}
	if plan.Cost != 1 {
		t.Errorf("Cost = %v, want 1", plan.Cost)
	}
}

func TestPlanner_AlreadySatisfied(t *testing.T) {
	planner := NewPlanner[*testAgent]()
	goal := Goal[*testAgent]{Name: "Kill Enemy", Satisfies: func(s WorldState) bool { return s.EnemyDead }}

	plan, ok := planner.Plan(context.Background(), &testAgent{}, []Action[*testAgent]{pickupWeapon()}, baseState, goal)
	if !ok {
		t.Fatal("expected an empty plan, got none")
	}
	if !plan.Empty() {
		t.Errorf("plan = %v, want []", Names(plan.Actions))
	}
	if plan.Cost != 0 {
		t.Errorf("Cost = %v, want 0", plan.Cost)
	}
}

func TestPlanner_NoApplicableAction(t *testing.T) {
	planner := NewPlanner[*testAgent]()
	goal := Goal[*testAgent]{Name: "Stay Fed", Satisfies: func(s WorldState) bool { return s.IsFed }}
	hungry := baseState.WithIsFed(false)

	_, ok := planner.Plan(context.Background(), &testAgent{}, []Action[*testAgent]{pickupWeapon()}, hungry.WithHasWeapon(true), goal)
	if ok {
		t.Error("expected no plan")
	}
}

func TestPlanner_CycleTerminates(t *testing.T) {
	planner := NewPlanner[*testAgent]()
	goal := Goal[*testAgent]{Name: "never", Satisfies: func(WorldState) bool { return false }}
	toB := newStub("AtoB",
		1,
		func(s WorldState) bool { return !s.IsFed },
		func(s WorldState) WorldState { return s.WithIsFed(true) })
	toA := newStub("BtoA",
		1,
		func(s WorldState) bool { return s.IsFed },
		func(s WorldState) WorldState { return s.WithIsFed(false) })

	plan, ok := planner.Plan(context.Background(), &testAgent{}, []Action[*testAgent]{toB, toA}, WorldState{}, goal)
	if ok {
		t.Fatal("expected no plan")
	}
	if plan.Expanded != 2 {
		t.Errorf("Expanded = %d, want 2", plan.Expanded)
	}
}

func TestPlanner_PrefersCheaperPath(t *testing.T) {
	planner := NewPlanner[*testAgent]()
	goal := Goal[*testAgent]{Name: "Stay Rested", Satisfies: func(s WorldState) bool { return s.IsRested }}
	tired := baseState.WithIsRested(false)
	rest := newStub("Rest", 3,
		func(s WorldState) bool { return !s.IsRested },
		func(s WorldState) WorldState { return s.WithIsRested(true) })
	consume := newStub("ConsumeStamina", 2,
		func(s WorldState) bool { return !s.IsRested },
		func(s WorldState) WorldState { return s.WithIsRested(true) })

	plan, ok := planner.Plan(context.Background(), &testAgent{}, []Action[*testAgent]{rest, consume}, tired, goal)
	if !ok {
		t.Fatal("expected a plan")
	}
	if got := Names(plan.Actions); len(got) != 1 || got[0] != "ConsumeStamina" {
		t.Errorf("plan = %v, want [ConsumeStamina]", got)
	}
}

func TestPlanner_MultiStep(t *testing.T) {
	planner := NewPlanner[*testAgent]()
	goal := Goal[*testAgent]{Name: "Kill Enemy", Satisfies: func(s WorldState) bool { return s.EnemyDead }}
	start := baseState.WithEnemyVisible(true).WithEnemyDead(false)
	attack := newStub("AttackEnemy", 1,
		func(s WorldState) bool { return s.HasWeapon && s.EnemyVisible },
		func(s WorldState) WorldState { return s.WithEnemyDead(true) })

	plan, ok := planner.Plan(context.Background(), &testAgent{}, []Action[*testAgent]{attack, pickupWeapon()}, start, goal)
	if !ok {
		t.Fatal("expected a plan")
	}
	got := Names(plan.Actions)
	if len(got) != 2 || got[0] != "PickupWeapon" || got[1] != "AttackEnemy" {
		t.Errorf("plan = %v, want [PickupWeapon AttackEnemy]", got)
	}
	if plan.Cost != 2 {
		t.Errorf("Cost = %v, want 2", plan.Cost)
	}
}

func TestPlanner_ExcludesInvalidActions(t *testing.T) {
	planner := NewPlanner[*testAgent]()
	goal := Goal[*testAgent]{Name: "Get Weapon", Satisfies: func(s WorldState) bool { return s.HasWeapon }}

	unusable := pickupWeapon()
	unusable.valid = false
	negative := pickupWeapon()
	negative.Cost = -1
	nan := pickupWeapon()
	nan.Cost = float32(math.NaN())

	_, ok := planner.Plan(context.Background(), &testAgent{}, []Action[*testAgent]{unusable, negative, nan}, baseState, goal)
	if ok {
		t.Error("expected no plan when every action is excluded")
	}
}

func TestPlanner_ResetsEveryAction(t *testing.T) {
	planner := NewPlanner[*testAgent]()
	goal := Goal[*testAgent]{Name: "Get Weapon", Satisfies: func(s WorldState) bool { return s.HasWeapon }}
	valid := pickupWeapon()
	invalid := pickupWeapon()
	invalid.valid = false

	planner.Plan(context.Background(), &testAgent{}, []Action[*testAgent]{valid, invalid}, baseState, goal)

	if valid.resets != 1 || invalid.resets != 1 {
		t.Errorf("resets = (%d, %d), want (1, 1)", valid.resets, invalid.resets)
	}
}

func TestPlanner_MaxExpansions(t *testing.T) {
	planner := NewPlanner[*testAgent](WithMaxExpansions(1))
	goal := Goal[*testAgent]{Name: "Kill Enemy", Satisfies: func(s WorldState) bool { return s.EnemyDead }}
	start := baseState.WithEnemyVisible(true).WithEnemyDead(false)
	attack := newStub("AttackEnemy", 1,
		func(s WorldState) bool { return s.HasWeapon && s.EnemyVisible },
		func(s WorldState) WorldState { return s.WithEnemyDead(true) })

	plan, ok := planner.Plan(context.Background(), &testAgent{}, []Action[*testAgent]{attack, pickupWeapon()}, start, goal)
	if ok {
		t.Fatalf("expected no plan with expansion cap, got %v", Names(plan.Actions))
	}
	if plan.Expanded != 1 {
		t.Errorf("Expanded = %d, want 1", plan.Expanded)
	}
}

func TestPlanner_EqualCostTiesAreStable(t *testing.T) {
	planner := NewPlanner[*testAgent]()
	goal := Goal[*testAgent]{Name: "Stay Rested", Satisfies: func(s WorldState) bool { return s.IsRested }}
	tired := baseState.WithIsRested(false)
	first := newStub("First", 2, nil, func(s WorldState) WorldState { return s.WithIsRested(true) })
	second := newStub("Second", 2, nil, func(s WorldState) WorldState { return s.WithIsRested(true) })
	actions := []Action[*testAgent]{first, second}

	for range 5 {
		plan, ok := planner.Plan(context.Background(), &testAgent{}, actions, tired, goal)
		if !ok {
			t.Fatal("expected a plan")
		}
		if got := Names(plan.Actions); len(got) != 1 || got[0] != "First" {
			t.Fatalf("plan = %v, want [First]", got)
		}
	}
}
