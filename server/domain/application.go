package domain

import "context"

// Application はRoomのtickごとに呼ばれるシミュレーションです。
// 戻り値は観戦者全員に配信するフレームで、nil の場合は何も送りません。
type Application interface {
	Tick(ctx context.Context) []byte
}
