package application

import (
	"math"

	"goapworld/server/domain"
)

// Snapshot は現在のフィールドを配信用の形に写します。
func (f *Field) Snapshot() *domain.Snapshot {
	s := &domain.Snapshot{
		Tick:        uint32(f.tick),
		Agents:      make([]domain.AgentSnapshot, 0, len(f.agents)),
		Objects:     make([]domain.ObjectSnapshot, 0, len(f.objects)),
		Projectiles: make([]domain.ProjectileSnapshot, 0, len(f.projectiles)),
	}
	for _, a := range f.agents {
		s.Agents = append(s.Agents, agentSnapshot(a))
	}
	for _, o := range f.objects {
		s.Objects = append(s.Objects, domain.ObjectSnapshot{Kind: uint8(o.Kind), Position: o.Position})
	}
	for _, p := range f.projectiles {
		s.Projectiles = append(s.Projectiles, domain.ProjectileSnapshot{Position: p.Position, Velocity: p.Velocity})
	}
	return s
}

func agentSnapshot(a *Agent) domain.AgentSnapshot {
	var flags domain.AgentFlags
	if !a.IsDead() {
		flags |= domain.AgentFlagAlive
	}
	if a.Fleeing {
		flags |= domain.AgentFlagFleeing
	}
	if a.Weapon.Loaded() {
		flags |= domain.AgentFlagArmed
	}
	if a.TargetEnemy != nil {
		flags |= domain.AgentFlagHunting
	}

	var ammo uint8
	if a.Weapon != nil {
		ammo = uint8(min(a.Weapon.Ammo, math.MaxUint8))
	}

	return domain.AgentSnapshot{
		ID:       a.ID,
		Position: a.Position,
		Health:   statByte(a.Health),
		Food:     statByte(a.Food),
		Stamina:  statByte(a.Stamina),
		Ammo:     ammo,
		Flags:    flags,
		Goal:     a.Goal(),
		Action:   a.CurrentAction(),
	}
}

func statByte(v float32) uint8 {
	return uint8(math.Round(float64(clamp(v, 0, MaxStat))))
}
