package application

import (
	"context"

	"github.com/google/uuid"

	"goapworld/server/domain"
	"goapworld/server/goap"
)

const (
	MaxStat float32 = 100

	BaseSpeed        float32 = 75
	FleeSpeedFactor  float32 = 1.2
	TiredSpeedFactor float32 = 0.5
	TiredThreshold   float32 = 20

	AgentRadius   float32 = 16
	SightRange    float32 = 200
	WellThreshold float32 = 80 // これを超えると healthy / rested / fed

	FoodDecayPerSecond     float32 = 2
	StarveDamagePerSecond  float32 = 2
	StarveStaminaPerSecond float32 = 5
)

// Agent はGOAPで行動を決めるNPCです。
type Agent struct {
	ID       uuid.UUID
	Position domain.Position2D
	Health   float32
	Stamina  float32
	Food     float32
	Weapon   *Weapon

	TargetEnemy    *Agent
	TargetPosition *domain.Position2D
	Fleeing        bool

	world    World
	planner  *goap.Planner[*Agent]
	recorder DecisionRecorder

	actions  []goap.Action[*Agent]
	goals    []goap.Goal[*Agent]
	fallback goap.Action[*Agent]

	queue   []goap.Action[*Agent]
	current goap.Action[*Agent]
	goal    string
}

// AgentOption はエージェント生成時の設定です。
type AgentOption func(*Agent)

func WithID(id uuid.UUID) AgentOption {
	return func(a *Agent) { a.ID = id }
}

// WithActions は使えるアクションを差し替えます。インスタンスはこのエージェント専用である必要があります。
func WithActions(actions ...goap.Action[*Agent]) AgentOption {
	return func(a *Agent) { a.actions = actions }
}

func WithGoals(goals ...goap.Goal[*Agent]) AgentOption {
	return func(a *Agent) { a.goals = goals }
}

func WithPlanner(p *goap.Planner[*Agent]) AgentOption {
	return func(a *Agent) {
		if p != nil {
			a.planner = p
		}
	}
}

func WithRecorder(r DecisionRecorder) AgentOption {
	return func(a *Agent) { a.recorder = r }
}

func NewAgent(world World, pos domain.Position2D, opts ...AgentOption) *Agent {
	a := &Agent{
		ID:       uuid.New(),
		Position: pos,
		Health:   MaxStat,
		Stamina:  MaxStat,
		Food:     MaxStat,
		world:    world,
		planner:  goap.NewPlanner[*Agent](),
		actions:  NewDefaultActions(),
		goals:    DefaultGoals(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.fallback = findWander(a.actions)
	return a
}

// findWander はアクション一覧にある徘徊アクションを返します。なければ新しく作ります。
func findWander(actions []goap.Action[*Agent]) goap.Action[*Agent] {
	for _, act := range actions {
		if w, ok := act.(*WanderAction); ok {
			return w
		}
	}
	return NewWanderAction()
}

func (a *Agent) IsDead() bool {
	return a.Health <= 0
}

// Speed は現在の移動速度です。逃走中は速く、スタミナ切れでは遅くなります。
func (a *Agent) Speed() float32 {
	switch {
	case a.Fleeing:
		return BaseSpeed * FleeSpeedFactor
	case a.Stamina < TiredThreshold:
		return BaseSpeed * TiredSpeedFactor
	default:
		return BaseSpeed
	}
}

// MoveTowards は target に向かって1tick分移動します。
func (a *Agent) MoveTowards(target domain.Position2D) {
	a.world.MoveTowards(a, target.Sub(a.Position), a.Speed())
}

func (a *Agent) TakeDamage(v float32) {
	a.Health = clamp(a.Health-v, 0, MaxStat)
}

func (a *Agent) Heal(v float32) {
	a.Health = clamp(a.Health+v, 0, MaxStat)
}

func (a *Agent) Eat(v float32) {
	a.Food = clamp(a.Food+v, 0, MaxStat)
}

func (a *Agent) GainStamina(v float32) {
	a.Stamina = clamp(a.Stamina+v, 0, MaxStat)
}

// decayNeeds は時間経過で空腹になり、飢えている間は体力とスタミナを失います。
func (a *Agent) decayNeeds(dt float32) {
	a.Food = clamp(a.Food-FoodDecayPerSecond*dt, 0, MaxStat)
	if a.Food <= 0 {
		a.TakeDamage(StarveDamagePerSecond * dt)
		a.Stamina = clamp(a.Stamina-StarveStaminaPerSecond*dt, 0, MaxStat)
	}
}

// Goal は最後に選んだ目標の名前です。
func (a *Agent) Goal() string {
	return a.goal
}

// CurrentAction は実行中のアクション名です。
func (a *Agent) CurrentAction() string {
	if a.current == nil {
		return ""
	}
	return a.current.Def().Name
}

// Pending は実行待ちのアクション名です。
func (a *Agent) Pending() []string {
	return goap.Names(a.queue)
}

// Update は1tick分の意思決定と行動を行います。
func (a *Agent) Update(ctx context.Context) {
	if a.IsDead() {
		return
	}
	if a.current != nil && !a.current.Perform(a) {
		return
	}

	a.current = nil
	a.Fleeing = false

	if len(a.queue) > 0 {
		next := a.queue[0]
		a.queue = a.queue[1:]
		a.activate(next)
		return
	}
	a.replan(ctx)
}

func (a *Agent) activate(action goap.Action[*Agent]) {
	action.Reset()
	a.current = action
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
