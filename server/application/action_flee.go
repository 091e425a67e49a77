package application

import (
	"goapworld/server/goap"
)

// FleeAction は敵から離れる方向に走ります。十分離れたら敵を見失ったことにして完了します。
type FleeAction struct {
	goap.Definition
	mover
}

func NewFleeAction() *FleeAction {
	return &FleeAction{
		Definition: goap.Definition{
			Name:         ActionFlee,
			Cost:         1,
			Precondition: func(s goap.WorldState) bool { return s.EnemyVisible },
			Effect:       func(s goap.WorldState) goap.WorldState { return s.WithEnemyVisible(false) },
		},
	}
}

func (f *FleeAction) Validate(agent *Agent) bool {
	if agent.Health > LowHealth || agent.TargetEnemy == nil {
		return false
	}
	return agent.TargetEnemy.Weapon.Loaded()
}

func (f *FleeAction) Perform(agent *Agent) bool {
	enemy := agent.TargetEnemy
	if enemy == nil {
		return true
	}
	agent.Fleeing = true

	if f.target == nil {
		away := agent.Position.Sub(enemy.Position).Normalize().Scale(FleeDistance)
		f.setTarget(agent.Position.Add(away))
	}

	if agent.Position.Dst(enemy.Position) > FleeSafeDistance {
		agent.Fleeing = false
		agent.TargetEnemy = nil
		return true
	}
	return f.moveTo(agent)
}
