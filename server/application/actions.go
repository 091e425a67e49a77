package application

import (
	"goapworld/server/domain"
	"goapworld/server/goap"
)

const (
	ArrivalRadius    float32 = 5
	AttackRange      float32 = 150
	ShootInterval    float32 = 1 // 秒
	FleeDistance     float32 = 200
	FleeSafeDistance float32 = 250
	LowHealth        float32 = 40
	WanderOffset             = 100
)

const (
	ActionPickupWeapon   = "PickupWeapon"
	ActionEatFood        = "EatFood"
	ActionConsumeStamina = "ConsumeStamina"
	ActionHeal           = "Heal"
	ActionRest           = "Rest"
	ActionAttackEnemy    = "AttackEnemy"
	ActionFlee           = "Flee"
	ActionWander         = "Wander"
)

// NewDefaultActions はアリーナのNPCが使うアクション一式を新しく作ります。
// アクションは実行中の状態を持つので、エージェントごとに呼び出してください。
func NewDefaultActions() []goap.Action[*Agent] {
	return []goap.Action[*Agent]{
		NewPickupWeaponAction(),
		NewEatFoodAction(),
		NewConsumeStaminaAction(),
		NewHealAction(),
		NewRestAction(),
		NewAttackEnemyAction(),
		NewWanderAction(),
		NewFleeAction(),
	}
}

// mover は目標地点まで歩く処理です。到着するか目標がなければ完了です。
type mover struct {
	target *domain.Position2D
}

func (m *mover) moveTo(agent *Agent) bool {
	if m.target == nil {
		return true
	}
	if agent.Position.Dst(*m.target) < ArrivalRadius {
		m.target = nil
		return true
	}
	agent.MoveTowards(*m.target)
	if agent.Position.Dst(*m.target) < ArrivalRadius {
		m.target = nil
		return true
	}
	return false
}

func (m *mover) setTarget(p domain.Position2D) {
	m.target = &p
}

func (m *mover) Reset() {
	m.target = nil
}
