package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"

	"goapworld/server/domain"
	"goapworld/utils"
)

// watch はアリーナに観戦者として接続し、1秒ごとに状況を出力します。
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := utils.GetEnvDefault("ADDR", "localhost")
	port := utils.GetEnvDefault("PORT", "9090")
	serverURL := fmt.Sprintf("ws://%s:%s/ws", addr, port)
	slog.Info("starting watcher", "server", serverURL)

	for {
		err := watch(ctx, serverURL)
		if ctx.Err() != nil {
			break
		}
		slog.Warn("watch session ended, reconnecting", "err", err)
		select {
		case <-ctx.Done():
		case <-time.After(2 * time.Second):
		}
	}
	slog.Info("watcher stopped")
}

func watch(ctx context.Context, serverURL string) error {
	conn, _, err := websocket.Dial(ctx, serverURL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.CloseNow()
	// エージェントやオブジェクトが多いとスナップショットが既定の上限を超える
	conn.SetReadLimit(1 << 20)

	slog.InfoContext(ctx, "connected")

	var (
		sessionID domain.SessionID
		latest    *domain.Snapshot
		frames    int
	)
	report := time.NewTicker(time.Second)
	defer report.Stop()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				leave := domain.EncodeControlMessage(sessionID, domain.ControlSubTypeLeave)
				_ = conn.Write(context.Background(), websocket.MessageBinary, leave)
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		header, payload, body, err := domain.ParseFrame(data)
		if err != nil {
			slog.WarnContext(ctx, "malformed frame", "err", err)
			continue
		}

		switch payload.DataType {
		case domain.DataTypeControl:
			switch domain.ControlSubType(payload.SubType) {
			case domain.ControlSubTypeAssign:
				sessionID = domain.SessionIDFromBytes(header.SessionID)
				slog.InfoContext(ctx, "session assigned", "sessionID", sessionID)
			case domain.ControlSubTypePing:
				if err := conn.Write(ctx, websocket.MessageBinary, domain.EncodePongMessage(sessionID)); err != nil {
					return fmt.Errorf("write pong: %w", err)
				}
			}
		case domain.DataTypeSnapshot:
			s, err := domain.ParseSnapshot(body)
			if err != nil {
				slog.WarnContext(ctx, "malformed snapshot", "err", err)
				continue
			}
			latest = s
			frames++
		}

		select {
		case <-report.C:
			summarize(ctx, latest, frames)
			frames = 0
		default:
		}
	}
}

func summarize(ctx context.Context, s *domain.Snapshot, frames int) {
	if s == nil {
		return
	}
	alive := 0
	for _, a := range s.Agents {
		if a.Flags&domain.AgentFlagAlive != 0 {
			alive++
		}
	}
	slog.InfoContext(ctx, "arena",
		"tick", s.Tick,
		"fps", frames,
		"alive", alive,
		"objects", len(s.Objects),
		"projectiles", len(s.Projectiles),
	)
	for _, a := range s.Agents {
		slog.DebugContext(ctx, "agent",
			"id", fmt.Sprintf("%x", a.ID[:4]),
			"hp", a.Health,
			"food", a.Food,
			"stamina", a.Stamina,
			"ammo", a.Ammo,
			"goal", a.Goal,
			"action", a.Action,
		)
	}
}
