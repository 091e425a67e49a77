package goap

import "math"

// Definition はプランナーだけが参照するアクションの静的な定義です。
// 具体的なアクションはこれを埋め込み、Def() を満たします。
type Definition struct {
	Name         string
	Cost         float32
	Precondition Precondition // nil の場合は常に適用可能
	Effect       Effect       // nil の場合は状態を変えない
}

// Action はエージェントが実行できる行動です。
// A はエージェントのハンドル型で、実行時の状態(目標地点やタイマー)はインスタンスごとに持ちます。
type Action[A any] interface {
	Def() *Definition

	// Validate は計画に含める前にエージェント固有の実行可否を判定します。
	Validate(agent A) bool

	// Perform は1tick分の処理を行い、完了または続行不能になったら true を返します。
	Perform(agent A) bool

	// Reset は前回の実行で残った状態を破棄します。
	Reset()
}

func (d *Definition) Def() *Definition { return d }

// Applicable は状態 s で前提条件が満たされるかを返します。
func (d *Definition) Applicable(s WorldState) bool {
	if d.Precondition == nil {
		return true
	}
	return d.Precondition(s)
}

// Apply は状態 s に効果を適用した新しい状態を返します。
func (d *Definition) Apply(s WorldState) WorldState {
	if d.Effect == nil {
		return s
	}
	return d.Effect(s)
}

// Valid は探索の辺として使える定義かどうかを返します。コストは有限かつ非負である必要があります。
func (d *Definition) Valid() bool {
	if d.Name == "" {
		return false
	}
	c := float64(d.Cost)
	return !math.IsNaN(c) && !math.IsInf(c, 0) && c >= 0
}

// Names はアクション名の一覧を返します。
func Names[A any](actions []Action[A]) []string {
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, a.Def().Name)
	}
	return names
}
