package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultPingInterval     = 5 * time.Second
	DefaultHeartbeatTimeout = 30 * time.Second
)

var (
	// ErrBackpressure は書き込みチャネルが満杯の場合に返されるエラーです。
	ErrBackpressure = errors.New("write channel is full, apply backpressure")
	// ErrInitializationFailed はセッションエンドポイントの初期化に失敗した場合に返されるエラーです。
	ErrInitializationFailed = errors.New("failed to initialize session endpoint")
	// ErrSessionLeft は観戦者が自分からleaveを送った場合に読み込みループが返すエラーです。
	ErrSessionLeft = errors.New("session left")
)

//go:generate go tool mockgen -destination=./mocks/membership_mock.go -package=mocks . Membership

// Membership は観戦者の参加・離脱を受け付けるルームです。
type Membership interface {
	Join(ctx context.Context, sessionID SessionID, sub Subscriber) error
	Leave(ctx context.Context, sessionID SessionID) error
}

// SessionEndpoint は観戦者1人分の接続を管理します。
// 読み込み・書き込み・死活監視のループを errgroup で束ね、どれかが終われば全体を閉じます。
type SessionEndpoint struct {
	session    *Session
	connection *Connection
	room       Membership

	writeCh chan []byte

	pingInterval     time.Duration
	heartbeatTimeout time.Duration

	closed atomic.Bool
}

// EndpointOption はSessionEndpointの設定を変更します。
type EndpointOption func(*SessionEndpoint)

// WithHeartbeat はpingの間隔とpong待ちのタイムアウトを設定します。
func WithHeartbeat(pingInterval, timeout time.Duration) EndpointOption {
	return func(se *SessionEndpoint) {
		se.pingInterval = pingInterval
		se.heartbeatTimeout = timeout
	}
}

func NewSessionEndpoint(session *Session, connection *Connection, room Membership, opts ...EndpointOption) (*SessionEndpoint, error) {
	if session == nil || connection == nil || room == nil {
		return nil, ErrInitializationFailed
	}
	se := &SessionEndpoint{
		session:          session,
		connection:       connection,
		room:             room,
		writeCh:          make(chan []byte, 256),
		pingInterval:     DefaultPingInterval,
		heartbeatTimeout: DefaultHeartbeatTimeout,
	}
	for _, opt := range opts {
		opt(se)
	}
	return se, nil
}

// Run はセッションIDを通知し、ルームに参加して接続が終わるまでブロックします。
// 観戦者の切断やleaveは正常終了として nil を返します。
func (se *SessionEndpoint) Run(ctx context.Context) error {
	sessionID := se.session.ID()

	if err := se.Send(EncodeAssignMessage(sessionID)); err != nil {
		return err
	}
	if err := se.room.Join(ctx, sessionID, se); err != nil {
		se.close("join failed")
		return fmt.Errorf("join room: %w", err)
	}
	defer func() {
		// ctx は既に終わっていることが多いので切り離す
		if err := se.room.Leave(context.WithoutCancel(ctx), sessionID); err != nil {
			slog.WarnContext(ctx, "failed to leave room", "sessionID", sessionID, "err", err)
		}
	}()

	heartbeat := NewHeartbeatService(se.pingInterval, se.heartbeatTimeout, se.session, se.writeCh)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return se.readLoop(egCtx)
	})
	eg.Go(func() error {
		return se.writeLoop(egCtx)
	})
	eg.Go(func() error {
		if err := heartbeat.Run(egCtx); err != nil {
			return err
		}
		return egCtx.Err()
	})

	err := eg.Wait()
	se.close("session closed")

	switch {
	case errors.Is(err, ErrSessionLeft), errors.Is(err, context.Canceled):
		return nil
	default:
		return err
	}
}

// Send は書き込みキューに data を積みます。満杯なら ErrBackpressure を返します。
func (se *SessionEndpoint) Send(data []byte) error {
	if se.closed.Load() {
		return nil
	}
	select {
	case se.writeCh <- data:
		return nil
	default:
		return ErrBackpressure
	}
}

func (se *SessionEndpoint) readLoop(ctx context.Context) error {
	for {
		data, err := se.connection.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read: %w", err)
		}
		if err := se.handleData(ctx, data); err != nil {
			return err
		}
	}
}

func (se *SessionEndpoint) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case data := <-se.writeCh:
			if err := se.connection.Write(ctx, data); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
	}
}

func (se *SessionEndpoint) handleData(ctx context.Context, data []byte) error {
	header, payloadHeader, _, err := ParseFrame(data)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse frame", "err", err)
		return nil
	}
	if SessionIDFromBytes(header.SessionID) != se.session.ID() {
		slog.WarnContext(ctx, "session ID mismatch", "expected", se.session.ID(), "got", SessionIDFromBytes(header.SessionID))
		return nil
	}
	if payloadHeader.DataType != DataTypeControl {
		slog.WarnContext(ctx, "unexpected data type from spectator", "dataType", payloadHeader.DataType)
		return nil
	}

	switch ControlSubType(payloadHeader.SubType) {
	case ControlSubTypePong:
		se.session.TouchPong()
	case ControlSubTypeLeave:
		slog.InfoContext(ctx, "spectator requested leave", "sessionID", se.session.ID())
		return ErrSessionLeft
	default:
		slog.WarnContext(ctx, "unknown control subtype", "subType", payloadHeader.SubType)
	}
	return nil
}

func (se *SessionEndpoint) close(reason string) {
	if !se.closed.CompareAndSwap(false, true) {
		return
	}
	se.session.Close()
	se.connection.Close(reason)
}
