package application

import (
	"github.com/google/uuid"

	"goapworld/server/domain"
)

const (
	ProjectileSpeed    float32 = 300
	ProjectileLifetime float32 = 2 // 秒
	ProjectileDamage   float32 = 25
)

// Projectile はフィールド上の弾丸を表す構造体です。
type Projectile struct {
	OwnerID  uuid.UUID
	Position domain.Position2D
	Velocity domain.Position2D
	TTL      float32 // 残り秒数
}

// HitEvent は弾丸がエージェントに命中したイベントを表します。
type HitEvent struct {
	VictimID   uuid.UUID
	AttackerID uuid.UUID
}
