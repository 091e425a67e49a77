package goap

import (
	"container/heap"
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "goapworld/server/goap"

// Plan はプランナーが返す行動列です。Actions は開始状態から目標に向かう順に並びます。
type Plan[A any] struct {
	Actions  []Action[A]
	Cost     float32
	Expanded int // 展開した状態の数
}

// Empty は実行すべき行動がないかを返します。
func (p Plan[A]) Empty() bool {
	return len(p.Actions) == 0
}

// Option はプランナーの設定を変更します。
type Option func(*plannerConfig)

type plannerConfig struct {
	maxExpansions int
	tracer        trace.Tracer
}

// WithMaxExpansions は1回の探索で展開する状態数の上限を設定します。0以下は無制限です。
// 上限に達した場合は計画なしとして扱います。
func WithMaxExpansions(n int) Option {
	return func(c *plannerConfig) {
		c.maxExpansions = n
	}
}

// WithTracer は探索のスパンを記録するトレーサーを差し替えます。
func WithTracer(t trace.Tracer) Option {
	return func(c *plannerConfig) {
		if t != nil {
			c.tracer = t
		}
	}
}

// Planner はコスト一様探索で目標を満たす最小コストの行動列を求めます。
type Planner[A any] struct {
	maxExpansions int
	tracer        trace.Tracer
}

func NewPlanner[A any](opts ...Option) *Planner[A] {
	cfg := plannerConfig{
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Planner[A]{
		maxExpansions: cfg.maxExpansions,
		tracer:        cfg.tracer,
	}
}

// Plan は state から goal を満たす行動列を探索します。
// 計画が見つからない場合は ok が false になります。エラーではありません。
// Validate の結果は呼び出し時点で固定され、探索中に再評価はしません。
func (p *Planner[A]) Plan(ctx context.Context, agent A, actions []Action[A], state WorldState, goal Goal[A]) (plan Plan[A], ok bool) {
	_, span := p.tracer.Start(ctx, "goap.Plan", trace.WithAttributes(
		attribute.String("goap.goal", goal.Name),
		attribute.String("goap.state", state.String()),
	))
	defer span.End()

	for _, a := range actions {
		a.Reset()
	}

	usable := make([]Action[A], 0, len(actions))
	for _, a := range actions {
		if a.Def().Valid() && a.Validate(agent) {
			usable = append(usable, a)
		}
	}

	plan, ok = p.search(usable, state, goal)

	span.SetAttributes(
		attribute.Int("goap.usable", len(usable)),
		attribute.Int("goap.expanded", plan.Expanded),
		attribute.Bool("goap.found", ok),
	)
	if ok {
		span.SetAttributes(
			attribute.Int("goap.plan.length", len(plan.Actions)),
			attribute.Float64("goap.plan.cost", float64(plan.Cost)),
		)
	}
	return plan, ok
}

func (p *Planner[A]) search(usable []Action[A], start WorldState, goal Goal[A]) (Plan[A], bool) {
	open := &frontier[A]{}
	closed := make(map[WorldState]struct{})
	var seq uint64

	heap.Push(open, &node[A]{state: start, seq: seq})

	expanded := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*node[A])
		if _, done := closed[current.state]; done {
			continue
		}

		if goal.SatisfiedBy(current.state) {
			return Plan[A]{
				Actions:  reconstruct(current),
				Cost:     current.cost,
				Expanded: expanded,
			}, true
		}

		if p.maxExpansions > 0 && expanded >= p.maxExpansions {
			return Plan[A]{Expanded: expanded}, false
		}

		closed[current.state] = struct{}{}
		expanded++

		for _, a := range usable {
			def := a.Def()
			if !def.Applicable(current.state) {
				continue
			}
			next := def.Apply(current.state)
			if _, done := closed[next]; done {
				continue
			}
			seq++
			heap.Push(open, &node[A]{
				parent: current,
				cost:   current.cost + def.Cost,
				state:  next,
				action: a,
				seq:    seq,
			})
		}
	}

	return Plan[A]{Expanded: expanded}, false
}

// reconstruct は親リンクを辿って開始状態から順の行動列を作ります。
func reconstruct[A any](goalNode *node[A]) []Action[A] {
	depth := 0
	for n := goalNode; n.parent != nil; n = n.parent {
		depth++
	}
	actions := make([]Action[A], depth)
	for n := goalNode; n.parent != nil; n = n.parent {
		depth--
		actions[depth] = n.action
	}
	return actions
}

// node は探索グラフのノードです。状態と、その状態に至った行動を持ちます。
type node[A any] struct {
	parent *node[A]
	cost   float32
	state  WorldState
	action Action[A]
	seq    uint64 // 同コスト時の順序を固定する
}

// frontier は累積コストの昇順で取り出す優先度付きキューです。
type frontier[A any] []*node[A]

func (f frontier[A]) Len() int { return len(f) }

func (f frontier[A]) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}

func (f frontier[A]) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier[A]) Push(x any) { *f = append(*f, x.(*node[A])) }

func (f *frontier[A]) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}
