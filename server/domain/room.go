package domain

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type RoomID string

var ErrRoomBusy = errors.New("room control channel is full")

// Subscriber はRoomの配信を受け取る観戦者です。Send はブロックしてはいけません。
type Subscriber interface {
	Send(data []byte) error
}

type roomCtrlKind uint8

const (
	roomJoin roomCtrlKind = iota + 1
	roomLeave
)

type roomCtrl struct {
	kind       roomCtrlKind
	sessionID  SessionID
	subscriber Subscriber
}

// Room は1つのシミュレーションを固定周期で進め、結果を観戦者全員に配信します。
// subscribers は Run のゴルーチンだけが触ります。
type Room struct {
	ID          RoomID
	application Application

	subscribers map[SessionID]Subscriber
	ctrlCh      chan roomCtrl

	tickInterval time.Duration
}

func NewRoom(id RoomID, application Application, tickInterval time.Duration) *Room {
	if tickInterval <= 0 {
		tickInterval = time.Second / 60
	}
	return &Room{
		ID:           id,
		application:  application,
		subscribers:  make(map[SessionID]Subscriber),
		ctrlCh:       make(chan roomCtrl, 64),
		tickInterval: tickInterval,
	}
}

// Join は次のtickから sub に配信を始めます。
func (r *Room) Join(ctx context.Context, sessionID SessionID, sub Subscriber) error {
	return r.enqueueCtrl(ctx, roomCtrl{kind: roomJoin, sessionID: sessionID, subscriber: sub})
}

// Leave は sessionID への配信を止めます。
func (r *Room) Leave(ctx context.Context, sessionID SessionID) error {
	return r.enqueueCtrl(ctx, roomCtrl{kind: roomLeave, sessionID: sessionID})
}

func (r *Room) enqueueCtrl(ctx context.Context, msg roomCtrl) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case r.ctrlCh <- msg:
		return nil
	default:
		return ErrRoomBusy
	}
}

func (r *Room) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "room started", "roomID", r.ID, "tickInterval", r.tickInterval)
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "room stopped", "roomID", r.ID)
			return nil
		case <-ticker.C:
			r.step(ctx)
		}
	}
}

// step は1tick分の処理です。制御メッセージを反映してからアプリケーションを進めます。
func (r *Room) step(ctx context.Context) {
CTRL_LOOP:
	for {
		select {
		case ctrl := <-r.ctrlCh:
			r.handleCtrl(ctx, ctrl)
		default:
			break CTRL_LOOP
		}
	}

	if data := r.application.Tick(ctx); data != nil {
		r.Broadcast(ctx, data)
	}
}

func (r *Room) handleCtrl(ctx context.Context, ctrl roomCtrl) {
	switch ctrl.kind {
	case roomJoin:
		r.subscribers[ctrl.sessionID] = ctrl.subscriber
		slog.InfoContext(ctx, "spectator joined", "roomID", r.ID, "sessionID", ctrl.sessionID, "spectators", len(r.subscribers))
	case roomLeave:
		delete(r.subscribers, ctrl.sessionID)
		slog.InfoContext(ctx, "spectator left", "roomID", r.ID, "sessionID", ctrl.sessionID, "spectators", len(r.subscribers))
	default:
		slog.WarnContext(ctx, "unknown room control", "kind", ctrl.kind)
	}
}

// Broadcast は全観戦者に data を送ります。詰まっている観戦者の分は捨てます。
func (r *Room) Broadcast(ctx context.Context, data []byte) {
	for sessionID, sub := range r.subscribers {
		if err := sub.Send(data); err != nil {
			slog.WarnContext(ctx, "broadcast dropped", "sessionID", sessionID, "err", err)
		}
	}
}
