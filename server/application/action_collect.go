package application

import (
	"goapworld/server/goap"
)

// CollectAction は最寄りのオブジェクトまで歩いて拾います。拾う処理自体は接触時にワールドが行います。
type CollectAction struct {
	goap.Definition
	mover

	kind   ResourceKind
	object *WorldObject
}

func newCollectAction(name string, cost float32, kind ResourceKind, pre goap.Precondition, eff goap.Effect) *CollectAction {
	return &CollectAction{
		Definition: goap.Definition{Name: name, Cost: cost, Precondition: pre, Effect: eff},
		kind:       kind,
	}
}

func NewPickupWeaponAction() *CollectAction {
	return newCollectAction(ActionPickupWeapon, 1, ResourceWeapon,
		func(s goap.WorldState) bool { return !s.HasWeapon },
		func(s goap.WorldState) goap.WorldState { return s.WithHasWeapon(true) })
}

func NewEatFoodAction() *CollectAction {
	return newCollectAction(ActionEatFood, 2, ResourceFood,
		func(s goap.WorldState) bool { return !s.IsFed },
		func(s goap.WorldState) goap.WorldState { return s.WithIsFed(true) })
}

func NewConsumeStaminaAction() *CollectAction {
	return newCollectAction(ActionConsumeStamina, 2, ResourceStamina,
		func(s goap.WorldState) bool { return !s.IsRested },
		func(s goap.WorldState) goap.WorldState { return s.WithIsRested(true) })
}

func NewHealAction() *CollectAction {
	return newCollectAction(ActionHeal, 2, ResourceHealth,
		func(s goap.WorldState) bool { return !s.IsHealthy },
		func(s goap.WorldState) goap.WorldState { return s.WithIsHealthy(true) })
}

func NewRestAction() *CollectAction {
	return newCollectAction(ActionRest, 3, ResourceStamina,
		func(s goap.WorldState) bool { return !s.IsRested },
		func(s goap.WorldState) goap.WorldState { return s.WithIsRested(true) })
}

// Kind は拾う対象の種類です。
func (c *CollectAction) Kind() ResourceKind {
	return c.kind
}

func (c *CollectAction) Validate(agent *Agent) bool {
	_, ok := agent.world.FindNearestOfKind(agent.Position, c.kind)
	return ok
}

func (c *CollectAction) Perform(agent *Agent) bool {
	if c.object == nil {
		obj, ok := agent.world.FindNearestOfKind(agent.Position, c.kind)
		if !ok {
			return true
		}
		c.object = obj
		c.setTarget(obj.Position)
	}
	// 先に誰かに拾われた
	if !agent.world.Contains(c.object) {
		return true
	}
	return c.moveTo(agent)
}

func (c *CollectAction) Reset() {
	c.mover.Reset()
	c.object = nil
}
