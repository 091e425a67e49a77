package goap

import (
	"context"
	"fmt"
	"math"
	"testing"

	"pgregory.net/rapid"
)

const factCount = 6

func toMask(s WorldState) uint8 {
	var m uint8
	for i, v := range []bool{s.HasWeapon, s.IsHealthy, s.IsRested, s.IsFed, s.EnemyVisible, s.EnemyDead} {
		if v {
			m |= 1 << i
		}
	}
	return m
}

func fromMask(m uint8) WorldState {
	return WorldState{
		HasWeapon:    m&(1<<0) != 0,
		IsHealthy:    m&(1<<1) != 0,
		IsRested:     m&(1<<2) != 0,
		IsFed:        m&(1<<3) != 0,
		EnemyVisible: m&(1<<4) != 0,
		EnemyDead:    m&(1<<5) != 0,
	}
}

// maskAction はビットマスクで前提条件と効果を表すテスト用アクションです。
type maskAction struct {
	stubAction
	reqMask, reqVal uint8
	setMask, setVal uint8
}

func newMaskAction(name string, cost float32, reqMask, reqVal, setMask, setVal uint8) *maskAction {
	a := &maskAction{reqMask: reqMask, reqVal: reqVal, setMask: setMask, setVal: setVal}
	a.stubAction = stubAction{
		Definition: Definition{
			Name: name,
			Cost: cost,
			Precondition: func(s WorldState) bool {
				return toMask(s)&a.reqMask == a.reqVal&a.reqMask
			},
			Effect: func(s WorldState) WorldState {
				return fromMask(toMask(s)&^a.setMask | a.setVal&a.setMask)
			},
		},
		valid: true,
	}
	return a
}

// cheapest は全状態に対する緩和で目標を満たす最小コストを求めます。
func cheapest(actions []Action[*testAgent], start WorldState, goal Goal[*testAgent]) (float32, bool) {
	const states = 1 << factCount
	inf := float32(math.Inf(1))
	dist := make([]float32, states)
	for i := range dist {
		dist[i] = inf
	}
	dist[toMask(start)] = 0
	for range states {
		changed := false
		for m := range states {
			if dist[m] == inf {
				continue
			}
			s := fromMask(uint8(m))
			for _, a := range actions {
				def := a.Def()
				if !def.Applicable(s) {
					continue
				}
				next := toMask(def.Apply(s))
				if c := dist[m] + def.Cost; c < dist[next] {
					dist[next] = c
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	best := inf
	for m := range states {
		if goal.SatisfiedBy(fromMask(uint8(m))) && dist[m] < best {
			best = dist[m]
		}
	}
	return best, best != inf
}

func TestPlanner_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "actionCount")
		actions := make([]Action[*testAgent], 0, n)
		for i := range n {
			actions = append(actions, newMaskAction(
				fmt.Sprintf("a%d", i),
				float32(rapid.IntRange(0, 10).Draw(t, "cost")),
				rapid.Uint8Range(0, 1<<factCount-1).Draw(t, "reqMask"),
				rapid.Uint8Range(0, 1<<factCount-1).Draw(t, "reqVal"),
				rapid.Uint8Range(0, 1<<factCount-1).Draw(t, "setMask"),
				rapid.Uint8Range(0, 1<<factCount-1).Draw(t, "setVal"),
			))
		}
		start := fromMask(rapid.Uint8Range(0, 1<<factCount-1).Draw(t, "start"))
		bit := rapid.IntRange(0, factCount-1).Draw(t, "goalBit")
		goal := Goal[*testAgent]{
			Name:      "bit",
			Satisfies: func(s WorldState) bool { return toMask(s)&(1<<bit) != 0 },
		}

		planner := NewPlanner[*testAgent]()
		agent := &testAgent{name: "prop"}
		plan, ok := planner.Plan(context.Background(), agent, actions, start, goal)

		want, reachable := cheapest(actions, start, goal)
		if ok != reachable {
			t.Fatalf("found = %v, want %v", ok, reachable)
		}
		if !ok {
			return
		}

		s := start
		var total float32
		for _, a := range plan.Actions {
			if !a.Def().Applicable(s) {
				t.Fatalf("%s is not applicable in %v", a.Def().Name, s)
			}
			s = a.Def().Apply(s)
			total += a.Def().Cost
		}
		if !goal.SatisfiedBy(s) {
			t.Fatalf("replayed state %v does not satisfy the goal", s)
		}
		if total != plan.Cost {
			t.Fatalf("Cost = %v, replayed cost %v", plan.Cost, total)
		}
		if plan.Cost != want {
			t.Fatalf("Cost = %v, want minimum %v", plan.Cost, want)
		}
		if goal.SatisfiedBy(start) && !plan.Empty() {
			t.Fatalf("plan = %v, want [] for satisfied start", Names(plan.Actions))
		}

		again, ok := planner.Plan(context.Background(), agent, actions, start, goal)
		if !ok || again.Cost != plan.Cost {
			t.Fatalf("second call cost = %v (found %v), want %v", again.Cost, ok, plan.Cost)
		}
	})
}
