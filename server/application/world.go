package application

import (
	"errors"

	"goapworld/server/domain"
)

var (
	ErrNoWeapon = errors.New("agent has no weapon")
	ErrNoAmmo   = errors.New("weapon has no ammo")
)

//go:generate go tool mockgen -destination=./mocks/world_mock.go -package=mocks . World

// World はエージェントとアクションから見たシミュレーションです。
type World interface {
	// Tick は現在のtick番号です。
	Tick() uint64
	// Delta は1tickの秒数です。
	Delta() float32
	Agents() []*Agent
	FindNearestOfKind(pos domain.Position2D, kind ResourceKind) (*WorldObject, bool)
	// Contains は obj がまだワールドに残っているかを返します。
	Contains(obj *WorldObject) bool
	// MoveTowards は direction の方向へ最大 speed*Delta だけ動かします。移動後はワールドの境界内に収まります。
	MoveTowards(agent *Agent, direction domain.Position2D, speed float32)
	// Fire は target に向けて弾を1発撃ちます。
	Fire(agent *Agent, target domain.Position2D) error
	// WanderPoint は from の近くで到達可能な地点を返します。
	WanderPoint(from domain.Position2D) domain.Position2D
}
