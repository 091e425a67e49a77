package application

import "goapworld/server/goap"

const (
	GoalFlee        = "Flee"
	GoalKillEnemy   = "Kill Enemy"
	GoalGetWeapon   = "Get Weapon"
	GoalStayHealthy = "Stay Healthy"
	GoalStayFed     = "Stay Fed"
	GoalStayRested  = "Stay Rested"
)

// DefaultGoals はNPCの目標を優先順に返します。同じ優先度なら先頭に近い目標が選ばれます。
func DefaultGoals() []goap.Goal[*Agent] {
	return []goap.Goal[*Agent]{
		{
			Name: GoalFlee,
			Priority: func(a *Agent) float32 {
				if a.TargetEnemy != nil && a.Health <= LowHealth {
					return 100
				}
				return 0
			},
			Satisfies: func(s goap.WorldState) bool { return !s.EnemyVisible },
		},
		{
			Name: GoalKillEnemy,
			Priority: func(a *Agent) float32 {
				if a.TargetEnemy != nil {
					return 90
				}
				return 0
			},
			Satisfies: func(s goap.WorldState) bool { return s.EnemyDead },
		},
		{
			Name: GoalGetWeapon,
			Priority: func(a *Agent) float32 {
				if a.Weapon == nil {
					return 50
				}
				return 0
			},
			Satisfies: func(s goap.WorldState) bool { return s.HasWeapon },
		},
		{
			Name:      GoalStayHealthy,
			Priority:  func(a *Agent) float32 { return need(a.Health, 80) },
			Satisfies: func(s goap.WorldState) bool { return s.IsHealthy },
		},
		{
			Name:      GoalStayFed,
			Priority:  func(a *Agent) float32 { return need(a.Food, 60) },
			Satisfies: func(s goap.WorldState) bool { return s.IsFed },
		},
		{
			Name:      GoalStayRested,
			Priority:  func(a *Agent) float32 { return need(a.Stamina, 40) },
			Satisfies: func(s goap.WorldState) bool { return s.IsRested },
		},
	}
}

// need は不足分に比例した優先度です。
func need(stat, weight float32) float32 {
	return (MaxStat - stat) / MaxStat * weight
}
