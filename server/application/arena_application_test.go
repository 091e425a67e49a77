package application

import (
	"context"
	"testing"

	"goapworld/server/domain"
)

func TestField_Snapshot(t *testing.T) {
	f := NewField(testTuning())
	a := f.SpawnAgent(domain.Position2D{X: 100, Y: 100})
	a.Weapon = &Weapon{Ammo: 300}
	a.Fleeing = true
	a.Health = 49.6
	dead := f.SpawnAgent(domain.Position2D{X: 900, Y: 100})
	dead.TakeDamage(MaxStat)
	f.SpawnObject(ResourceFood, domain.Position2D{X: 10, Y: 20})

	s := f.Snapshot()

	if len(s.Agents) != 2 || len(s.Objects) != 1 || len(s.Projectiles) != 0 {
		t.Fatalf("counts = (%d, %d, %d), want (2, 1, 0)", len(s.Agents), len(s.Objects), len(s.Projectiles))
	}
	got := s.Agents[0]
	if got.ID != a.ID {
		t.Errorf("ID = %x, want %v", got.ID, a.ID)
	}
	if got.Health != 50 {
		t.Errorf("Health = %d, want 50", got.Health)
	}
	if got.Ammo != 255 {
		t.Errorf("Ammo = %d, want 255", got.Ammo)
	}
	want := domain.AgentFlagAlive | domain.AgentFlagFleeing | domain.AgentFlagArmed
	if got.Flags != want {
		t.Errorf("Flags = %08b, want %08b", got.Flags, want)
	}
	if s.Agents[1].Flags&domain.AgentFlagAlive != 0 {
		t.Error("dead agent should not carry the alive flag")
	}
	if s.Objects[0].Kind != uint8(ResourceFood) {
		t.Errorf("object Kind = %d, want %d", s.Objects[0].Kind, ResourceFood)
	}
}

func TestArenaApplication_Tick(t *testing.T) {
	ctx := context.Background()
	f := NewField(testTuning())
	f.SpawnAgent(domain.Position2D{X: 100, Y: 100})
	f.SpawnAgent(domain.Position2D{X: 150, Y: 100})
	app := NewArenaApplication(f)

	app.Tick(ctx)
	frame := app.Tick(ctx)

	header, payload, body, err := domain.ParseFrame(frame)
	if err != nil {
		t.Fatalf("ParseFrame error = %v", err)
	}
	if payload.DataType != domain.DataTypeSnapshot {
		t.Errorf("DataType = %d, want %d", payload.DataType, domain.DataTypeSnapshot)
	}
	if header.Seq != 2 {
		t.Errorf("Seq = %d, want 2", header.Seq)
	}
	s, err := domain.ParseSnapshot(body)
	if err != nil {
		t.Fatalf("ParseSnapshot error = %v", err)
	}
	if s.Tick != 2 {
		t.Errorf("Tick = %d, want 2", s.Tick)
	}
	if len(s.Agents) != 2 {
		t.Fatalf("Agents length = %d, want 2", len(s.Agents))
	}
	for _, a := range s.Agents {
		if a.Action == "" {
			t.Errorf("agent %x has no action after two ticks", a.ID)
		}
	}
	if app.Field() != f {
		t.Error("Field should return the simulated field")
	}
}
