package application

import (
	"goapworld/server/goap"
)

// WanderAction は計画が立たないときの代替行動です。エージェントの TargetPosition まで歩きます。
type WanderAction struct {
	goap.Definition
	mover
}

func NewWanderAction() *WanderAction {
	return &WanderAction{
		Definition: goap.Definition{Name: ActionWander, Cost: 10},
	}
}

func (w *WanderAction) Validate(*Agent) bool { return true }

func (w *WanderAction) Perform(agent *Agent) bool {
	if w.target == nil {
		if agent.TargetPosition == nil {
			return true
		}
		w.setTarget(*agent.TargetPosition)
	}
	return w.moveTo(agent)
}
