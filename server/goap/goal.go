package goap

import "math"

// Goal はエージェントが達成したい目標です。
// 状態を持たないので複数のエージェントで共有できます。
type Goal[A any] struct {
	Name string
	// Priority は意思決定のたびにエージェントの現在値から再計算されます。
	Priority func(agent A) float32
	// Satisfies は状態が目標を満たしているかを判定します。
	Satisfies func(WorldState) bool
}

// SatisfiedBy は状態 s が目標を満たすかを返します。判定関数がない目標は満たされません。
func (g Goal[A]) SatisfiedBy(s WorldState) bool {
	if g.Satisfies == nil {
		return false
	}
	return g.Satisfies(s)
}

// SelectGoal は優先度が最大の目標を返します。
// 同じ優先度の場合は先に定義された目標を選びます。goals が空なら ok は false です。
func SelectGoal[A any](agent A, goals []Goal[A]) (best Goal[A], priority float32, ok bool) {
	for _, g := range goals {
		var p float32
		if g.Priority != nil {
			p = g.Priority(agent)
		}
		if math.IsNaN(float64(p)) {
			p = float32(math.Inf(-1))
		}
		if !ok || p > priority {
			best, priority, ok = g, p, true
		}
	}
	return best, priority, ok
}
