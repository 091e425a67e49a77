package domain

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var ErrHeartbeatTimeout = errors.New("heartbeat: no pong within timeout")

// HeartbeatService は定期的にpingを送り、pongが途絶えたセッションを検出する死活監視サービスです。
type HeartbeatService struct {
	pingInterval time.Duration
	timeout      time.Duration
	session      *Session
	writeCh      chan<- []byte
}

// NewHeartbeatService は新しいHeartbeatServiceを生成します。timeout が0以下の場合はタイムアウト判定をしません。
func NewHeartbeatService(pingInterval, timeout time.Duration, session *Session, writeCh chan<- []byte) *HeartbeatService {
	return &HeartbeatService{
		pingInterval: pingInterval,
		timeout:      timeout,
		session:      session,
		writeCh:      writeCh,
	}
}

// Run はpingInterval間隔でpingメッセージをwriteChに送信します。
// ctxがキャンセルされると nil を返し、pongが timeout を超えて途絶えると ErrHeartbeatTimeout を返します。
func (h *HeartbeatService) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if h.timeout > 0 && h.session.IsIdle(h.timeout) {
				slog.WarnContext(ctx, "heartbeat: session idle", "sessionID", h.session.ID(), "timeout", h.timeout)
				return ErrHeartbeatTimeout
			}
			select {
			case h.writeCh <- EncodePingMessage(h.session.ID()):
				slog.DebugContext(ctx, "heartbeat: ping sent", "sessionID", h.session.ID())
			default:
				slog.WarnContext(ctx, "heartbeat: writeCh full, ping dropped", "sessionID", h.session.ID())
			}
		}
	}
}
