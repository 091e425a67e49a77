package application

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"goapworld/server/goap"
)

// Decision は再計画1回分の記録です。
type Decision struct {
	Tick     uint64    `json:"tick"`
	AgentID  uuid.UUID `json:"agent"`
	Goal     string    `json:"goal,omitempty"`
	Priority float32   `json:"priority"`
	State    string    `json:"state"`
	Actions  []string  `json:"actions"`
	Cost     float32   `json:"cost"`
	Fallback bool      `json:"fallback"`
}

// DecisionRecorder は再計画の結果を受け取ります。
type DecisionRecorder interface {
	Record(ctx context.Context, d Decision) error
}

// perceive は周囲を観測して TargetEnemy を更新し、プランナー用の状態を作ります。
func (a *Agent) perceive() goap.WorldState {
	a.TargetEnemy = a.nearestEnemy()
	return goap.WorldState{
		HasWeapon:    a.Weapon.Loaded(),
		IsHealthy:    a.Health > WellThreshold,
		IsRested:     a.Stamina > WellThreshold,
		IsFed:        a.Food > WellThreshold,
		EnemyVisible: a.TargetEnemy != nil,
		EnemyDead:    a.TargetEnemy == nil || a.TargetEnemy.IsDead(),
	}
}

// nearestEnemy は視界内で最も近い生存中の他エージェントを返します。
func (a *Agent) nearestEnemy() *Agent {
	var (
		nearest *Agent
		best    = SightRange
	)
	for _, other := range a.world.Agents() {
		if other == a || other.ID == a.ID || other.IsDead() {
			continue
		}
		if d := a.Position.Dst(other.Position); d < best {
			nearest, best = other, d
		}
	}
	return nearest
}

// replan は目標を選び直して新しい計画を立てます。
// 計画が立たない・空・目標がない場合は近くの地点へ徘徊します。
func (a *Agent) replan(ctx context.Context) {
	state := a.perceive()
	d := Decision{
		Tick:    a.world.Tick(),
		AgentID: a.ID,
		State:   state.String(),
	}

	goal, priority, ok := goap.SelectGoal(a, a.goals)
	a.goal = ""
	if ok {
		a.goal = goal.Name
		d.Goal, d.Priority = goal.Name, priority

		plan, found := a.planner.Plan(ctx, a, a.actions, state, goal)
		if found && !plan.Empty() {
			a.queue = plan.Actions[1:]
			a.activate(plan.Actions[0])
			d.Actions = goap.Names(plan.Actions)
			d.Cost = plan.Cost
			a.record(ctx, d)
			return
		}
	}

	target := a.world.WanderPoint(a.Position)
	a.TargetPosition = &target
	a.queue = nil
	a.activate(a.fallback)

	d.Fallback = true
	d.Actions = []string{a.fallback.Def().Name}
	d.Cost = a.fallback.Def().Cost
	a.record(ctx, d)
}

func (a *Agent) record(ctx context.Context, d Decision) {
	slog.DebugContext(ctx, "agent decided",
		"agent", a.ID,
		"goal", d.Goal,
		"priority", d.Priority,
		"state", d.State,
		"plan", d.Actions,
		"fallback", d.Fallback,
	)
	if a.recorder == nil {
		return
	}
	if err := a.recorder.Record(ctx, d); err != nil {
		slog.WarnContext(ctx, "failed to record decision", "agent", a.ID, "err", err)
	}
}
