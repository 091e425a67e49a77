package goap

import "strings"

// WorldState はエージェントが知覚している世界を真偽値ファクトで表す値型です。
// 比較可能な構造体なので、同じファクトを持つ状態は到達経路に関わらず同一ノードになります。
type WorldState struct {
	HasWeapon    bool
	IsHealthy    bool
	IsRested     bool
	IsFed        bool
	EnemyVisible bool
	EnemyDead    bool
}

// Precondition はアクションを適用できるかを判定する述語です。
type Precondition func(WorldState) bool

// Effect は状態から新しい状態を作る純粋な変換です。
type Effect func(WorldState) WorldState

func (s WorldState) WithHasWeapon(v bool) WorldState {
	s.HasWeapon = v
	return s
}

func (s WorldState) WithIsHealthy(v bool) WorldState {
	s.IsHealthy = v
	return s
}

func (s WorldState) WithIsRested(v bool) WorldState {
	s.IsRested = v
	return s
}

func (s WorldState) WithIsFed(v bool) WorldState {
	s.IsFed = v
	return s
}

func (s WorldState) WithEnemyVisible(v bool) WorldState {
	s.EnemyVisible = v
	return s
}

func (s WorldState) WithEnemyDead(v bool) WorldState {
	s.EnemyDead = v
	return s
}

// String はログ用の短い表現を返します。例: "weapon|healthy|rested"
func (s WorldState) String() string {
	facts := make([]string, 0, 6)
	add := func(ok bool, name string) {
		if ok {
			facts = append(facts, name)
		}
	}
	add(s.HasWeapon, "weapon")
	add(s.IsHealthy, "healthy")
	add(s.IsRested, "rested")
	add(s.IsFed, "fed")
	add(s.EnemyVisible, "enemyVisible")
	add(s.EnemyDead, "enemyDead")
	if len(facts) == 0 {
		return "none"
	}
	return strings.Join(facts, "|")
}
