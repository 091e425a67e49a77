package application

import "goapworld/server/domain"

// ResourceKind はワールドに落ちているオブジェクトの種類です。
type ResourceKind uint8

const (
	ResourceFood ResourceKind = iota + 1
	ResourceHealth
	ResourceStamina
	ResourceWeapon
)

var resourceKinds = []ResourceKind{ResourceFood, ResourceHealth, ResourceStamina, ResourceWeapon}

func (k ResourceKind) String() string {
	switch k {
	case ResourceFood:
		return "food"
	case ResourceHealth:
		return "health"
	case ResourceStamina:
		return "stamina"
	case ResourceWeapon:
		return "weapon"
	default:
		return "unknown"
	}
}

const (
	DefaultResourceValue float32 = 100
	WeaponAmmo                   = 10
)

// WorldObject は拾うことで効果があるオブジェクトです。
// Value は食料・体力・スタミナの回復量、Ammo は武器の弾数です。
type WorldObject struct {
	Kind     ResourceKind
	Position domain.Position2D
	Value    float32
	Ammo     int
}

// NewWorldObject は種類ごとの既定値でオブジェクトを作ります。
func NewWorldObject(kind ResourceKind, pos domain.Position2D) *WorldObject {
	obj := &WorldObject{Kind: kind, Position: pos}
	if kind == ResourceWeapon {
		obj.Ammo = WeaponAmmo
	} else {
		obj.Value = DefaultResourceValue
	}
	return obj
}

// Weapon はエージェントが持っている武器です。
type Weapon struct {
	Ammo int
}

// Loaded は弾が残っているかを返します。nil の武器は撃てません。
func (w *Weapon) Loaded() bool {
	return w != nil && w.Ammo > 0
}
