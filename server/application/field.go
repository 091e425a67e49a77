package application

import (
	"context"
	"encoding/binary"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"goapworld/server/config"
	"goapworld/server/domain"
	"goapworld/server/goap"
)

// Field はエージェント・オブジェクト・弾を持つアリーナです。World を実装します。
// 1つのゴルーチンから Step を呼ぶ前提で、ロックは持ちません。
type Field struct {
	tuning config.Tuning
	delta  float32
	tick   uint64

	source *rand.ChaCha8
	rng    *rand.Rand

	agents      []*Agent
	objects     []*WorldObject
	projectiles []*Projectile
	respawns    []pendingRespawn

	agentOpts []AgentOption
}

type pendingRespawn struct {
	agent *Agent
	at    uint64
}

// NewField は tuning の seed で乱数を初期化したフィールドを作ります。
// opts は生成する全エージェントに適用されます。
func NewField(t config.Tuning, opts ...AgentOption) *Field {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:8], t.Seed)
	source := rand.NewChaCha8(seed)

	planner := goap.NewPlanner[*Agent](goap.WithMaxExpansions(t.MaxPlanExpansions))
	return &Field{
		tuning:    t,
		delta:     t.Delta(),
		source:    source,
		rng:       rand.New(source),
		agentOpts: append([]AgentOption{WithPlanner(planner)}, opts...),
	}
}

// Populate は設定に従ってNPCとオブジェクトを配置します。
func (f *Field) Populate(ctx context.Context) {
	for range f.tuning.NPCs {
		f.SpawnAgent(f.randomPosition())
	}
	for _, kind := range resourceKinds {
		for range f.spawnLimit(kind) {
			f.SpawnObject(kind, f.randomPosition())
		}
	}
	slog.InfoContext(ctx, "field populated",
		"agents", len(f.agents),
		"objects", len(f.objects),
		"seed", f.tuning.Seed,
	)
}

// SpawnAgent は pos にエージェントを追加します。
func (f *Field) SpawnAgent(pos domain.Position2D, opts ...AgentOption) *Agent {
	all := make([]AgentOption, 0, len(f.agentOpts)+len(opts)+1)
	all = append(all, WithID(f.newID()))
	all = append(all, f.agentOpts...)
	all = append(all, opts...)
	agent := NewAgent(f, pos, all...)
	f.agents = append(f.agents, agent)
	return agent
}

// SpawnObject は pos に既定値のオブジェクトを置きます。
func (f *Field) SpawnObject(kind ResourceKind, pos domain.Position2D) *WorldObject {
	obj := NewWorldObject(kind, pos)
	f.objects = append(f.objects, obj)
	return obj
}

func (f *Field) newID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(f.source)
	if err != nil {
		return uuid.New()
	}
	return id
}

func (f *Field) Tick() uint64 { return f.tick }

func (f *Field) Delta() float32 { return f.delta }

func (f *Field) Agents() []*Agent { return f.agents }

func (f *Field) Objects() []*WorldObject { return f.objects }

func (f *Field) Projectiles() []*Projectile { return f.projectiles }

func (f *Field) Width() float32 { return f.tuning.WorldWidth }

func (f *Field) Height() float32 { return f.tuning.WorldHeight }

func (f *Field) FindNearestOfKind(pos domain.Position2D, kind ResourceKind) (*WorldObject, bool) {
	var nearest *WorldObject
	var best float32
	for _, obj := range f.objects {
		if obj.Kind != kind {
			continue
		}
		if d := pos.Dst(obj.Position); nearest == nil || d < best {
			nearest, best = obj, d
		}
	}
	return nearest, nearest != nil
}

func (f *Field) Contains(obj *WorldObject) bool {
	for _, o := range f.objects {
		if o == obj {
			return true
		}
	}
	return false
}

// MoveTowards はエージェントを移動させます。目標を通り過ぎず、境界を超えないようにクランプします。
func (f *Field) MoveTowards(agent *Agent, direction domain.Position2D, speed float32) {
	l := direction.Len()
	if l == 0 || speed <= 0 {
		return
	}
	step := min(speed*f.delta, l)
	next := agent.Position.Add(direction.Scale(step / l))
	agent.Position = f.clampToBounds(next)
}

func (f *Field) Fire(agent *Agent, target domain.Position2D) error {
	if agent.Weapon == nil {
		return ErrNoWeapon
	}
	if agent.Weapon.Ammo <= 0 {
		return ErrNoAmmo
	}
	agent.Weapon.Ammo--
	if agent.Weapon.Ammo == 0 {
		agent.Weapon = nil
	}
	dir := target.Sub(agent.Position).Normalize()
	f.projectiles = append(f.projectiles, &Projectile{
		OwnerID:  agent.ID,
		Position: agent.Position,
		Velocity: dir.Scale(ProjectileSpeed),
		TTL:      ProjectileLifetime,
	})
	return nil
}

// WanderPoint は from から各軸 ±WanderOffset 以内の地点を返します。境界内に収まるので必ず到達できます。
func (f *Field) WanderPoint(from domain.Position2D) domain.Position2D {
	return f.clampToBounds(domain.Position2D{
		X: from.X + float32(f.rng.IntN(2*WanderOffset+1)-WanderOffset),
		Y: from.Y + float32(f.rng.IntN(2*WanderOffset+1)-WanderOffset),
	})
}

func (f *Field) clampToBounds(p domain.Position2D) domain.Position2D {
	return domain.Position2D{
		X: clamp(p.X, AgentRadius, f.tuning.WorldWidth-AgentRadius),
		Y: clamp(p.Y, AgentRadius, f.tuning.WorldHeight-AgentRadius),
	}
}

func (f *Field) randomPosition() domain.Position2D {
	return domain.Position2D{
		X: f.rng.Float32()*(f.tuning.WorldWidth-50) + 25,
		Y: f.rng.Float32()*(f.tuning.WorldHeight-50) + 25,
	}
}

// Step はシミュレーションを1tick進めます。
func (f *Field) Step(ctx context.Context) {
	f.tick++

	for _, a := range f.agents {
		if !a.IsDead() {
			a.decayNeeds(f.delta)
		}
	}
	for _, a := range f.agents {
		if !a.IsDead() {
			a.Update(ctx)
		}
	}

	f.moveProjectiles()
	for _, hit := range f.resolveHits() {
		slog.DebugContext(ctx, "projectile hit", "victim", hit.VictimID, "attacker", hit.AttackerID)
	}
	f.resolvePickups(ctx)
	f.resolveDeaths(ctx)
	f.respawnAgents(ctx)
	f.replenish(ctx)
}

func (f *Field) moveProjectiles() {
	alive := f.projectiles[:0]
	for _, p := range f.projectiles {
		p.Position = p.Position.Add(p.Velocity.Scale(f.delta))
		p.TTL -= f.delta
		if p.TTL > 0 {
			alive = append(alive, p)
		}
	}
	clear(f.projectiles[len(alive):])
	f.projectiles = alive
}

// resolveHits は弾と撃った本人以外の生存エージェントの接触を処理します。
func (f *Field) resolveHits() []HitEvent {
	var hits []HitEvent
	remaining := f.projectiles[:0]
	for _, p := range f.projectiles {
		victim := f.touching(p.Position, p.OwnerID)
		if victim == nil {
			remaining = append(remaining, p)
			continue
		}
		victim.TakeDamage(ProjectileDamage)
		hits = append(hits, HitEvent{VictimID: victim.ID, AttackerID: p.OwnerID})
	}
	clear(f.projectiles[len(remaining):])
	f.projectiles = remaining
	return hits
}

// resolvePickups は生存エージェントが触れたオブジェクトを拾わせます。
func (f *Field) resolvePickups(ctx context.Context) {
	remaining := f.objects[:0]
	for _, obj := range f.objects {
		agent := f.touching(obj.Position, uuid.Nil)
		if agent == nil {
			remaining = append(remaining, obj)
			continue
		}
		switch obj.Kind {
		case ResourceWeapon:
			agent.Weapon = &Weapon{Ammo: obj.Ammo}
		case ResourceHealth:
			agent.Heal(obj.Value)
		case ResourceFood:
			agent.Eat(obj.Value)
		case ResourceStamina:
			agent.GainStamina(obj.Value)
		}
		slog.DebugContext(ctx, "object picked up", "agent", agent.ID, "kind", obj.Kind)
	}
	clear(f.objects[len(remaining):])
	f.objects = remaining
}

// touching は pos に触れている最初の生存エージェントを返します。exclude のエージェントは除きます。
func (f *Field) touching(pos domain.Position2D, exclude uuid.UUID) *Agent {
	for _, a := range f.agents {
		if a.IsDead() || (exclude != uuid.Nil && a.ID == exclude) {
			continue
		}
		if a.Position.Dst(pos) < AgentRadius {
			return a
		}
	}
	return nil
}

// resolveDeaths は倒れたエージェントの持ち物を落とし、復活を予約します。
func (f *Field) resolveDeaths(ctx context.Context) {
	for _, a := range f.agents {
		if !a.IsDead() || f.pendingRespawn(a) {
			continue
		}
		stamina := NewWorldObject(ResourceStamina, a.Position)
		stamina.Value = a.Stamina
		f.objects = append(f.objects, stamina)
		if a.Weapon.Loaded() {
			weapon := NewWorldObject(ResourceWeapon, a.Position)
			weapon.Ammo = a.Weapon.Ammo
			f.objects = append(f.objects, weapon)
			a.Weapon = nil
		}
		a.current = nil
		a.queue = nil

		f.respawns = append(f.respawns, pendingRespawn{agent: a, at: f.tick + uint64(f.tuning.RespawnTicks)})
		slog.InfoContext(ctx, "agent died", "agent", a.ID, "tick", f.tick)
	}
}

func (f *Field) pendingRespawn(a *Agent) bool {
	for _, r := range f.respawns {
		if r.agent == a {
			return true
		}
	}
	return false
}

// respawnAgents は復活時刻を過ぎたエージェントを新しいエージェントに置き換えます。
// respawn_ticks が0の場合は復活しません。
func (f *Field) respawnAgents(ctx context.Context) {
	if f.tuning.RespawnTicks <= 0 {
		return
	}
	waiting := f.respawns[:0]
	for _, r := range f.respawns {
		if f.tick < r.at {
			waiting = append(waiting, r)
			continue
		}
		for i, a := range f.agents {
			if a != r.agent {
				continue
			}
			all := make([]AgentOption, 0, len(f.agentOpts)+1)
			all = append(all, WithID(f.newID()))
			all = append(all, f.agentOpts...)
			fresh := NewAgent(f, f.randomPosition(), all...)
			f.agents[i] = fresh
			slog.InfoContext(ctx, "agent respawned", "agent", fresh.ID, "replaces", a.ID, "tick", f.tick)
			break
		}
	}
	clear(f.respawns[len(waiting):])
	f.respawns = waiting
}

// replenish は一定間隔で足りない種類のオブジェクトを1つずつ補充します。
func (f *Field) replenish(ctx context.Context) {
	every := uint64(f.tuning.ReplenishEveryTicks)
	if every == 0 || f.tick%every != 0 {
		return
	}
	counts := make(map[ResourceKind]int, len(resourceKinds))
	for _, obj := range f.objects {
		counts[obj.Kind]++
	}
	for _, kind := range resourceKinds {
		if counts[kind] < f.spawnLimit(kind) {
			obj := f.SpawnObject(kind, f.randomPosition())
			slog.DebugContext(ctx, "object replenished", "kind", kind, "position", obj.Position)
		}
	}
}

func (f *Field) spawnLimit(kind ResourceKind) int {
	switch kind {
	case ResourceFood:
		return f.tuning.Spawn.Food
	case ResourceHealth:
		return f.tuning.Spawn.Health
	case ResourceStamina:
		return f.tuning.Spawn.Stamina
	case ResourceWeapon:
		return f.tuning.Spawn.Weapon
	default:
		return 0
	}
}
