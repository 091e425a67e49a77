package application

import (
	"goapworld/server/goap"
)

// AttackEnemyAction は射程まで近づき、一定間隔で敵を撃ちます。
// 敵が倒れるか弾が尽きたら完了します。
type AttackEnemyAction struct {
	goap.Definition
	mover

	shootTimer float32
}

func NewAttackEnemyAction() *AttackEnemyAction {
	return &AttackEnemyAction{
		Definition: goap.Definition{
			Name:         ActionAttackEnemy,
			Cost:         1,
			Precondition: func(s goap.WorldState) bool { return s.HasWeapon && s.EnemyVisible },
			Effect:       func(s goap.WorldState) goap.WorldState { return s.WithEnemyDead(true) },
		},
	}
}

func (a *AttackEnemyAction) Validate(agent *Agent) bool {
	return agent.TargetEnemy != nil && agent.Weapon.Loaded() && agent.Health > LowHealth
}

func (a *AttackEnemyAction) Perform(agent *Agent) bool {
	enemy := agent.TargetEnemy
	if enemy == nil || enemy.IsDead() {
		return true
	}

	if agent.Position.Dst(enemy.Position) > AttackRange {
		a.setTarget(enemy.Position)
		a.moveTo(agent)
		return false
	}

	agent.TargetPosition = nil
	if !agent.Weapon.Loaded() {
		return true
	}
	a.shootTimer += agent.world.Delta()
	if a.shootTimer >= ShootInterval {
		a.shootTimer = 0
		if err := agent.world.Fire(agent, enemy.Position); err != nil {
			return true
		}
		if !agent.Weapon.Loaded() {
			return true
		}
	}
	return false
}

func (a *AttackEnemyAction) Reset() {
	a.mover.Reset()
	a.shootTimer = 0
}
