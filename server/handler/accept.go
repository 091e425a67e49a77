package handler

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	adapterwebsocket "goapworld/server/adapter/websocket"
	"goapworld/server/domain"
)

// AcceptHandler は観戦者のWebSocket接続を受け付け、ルームに参加させます。
type AcceptHandler struct {
	room domain.Membership
	opts []domain.EndpointOption
}

func NewAcceptHandler(room domain.Membership, opts ...domain.EndpointOption) *AcceptHandler {
	return &AcceptHandler{room: room, opts: opts}
}

func (h *AcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // 開発用: Origin チェックをスキップ
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to accept", "err", err)
		return
	}

	session := domain.NewSession()
	transport := adapterwebsocket.NewTransportFrom(conn)
	connection := domain.NewConnection(session.ID(), transport)
	endpoint, err := domain.NewSessionEndpoint(session, connection, h.room, h.opts...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create session endpoint", "err", err)
		connection.Close("initialization failed")
		return
	}
	slog.DebugContext(ctx, "accepted new spectator", "session_id", session.ID())
	if err := endpoint.Run(ctx); err != nil {
		slog.WarnContext(ctx, "spectator session ended", "session_id", session.ID(), "err", err)
		return
	}
	slog.DebugContext(ctx, "spectator left", "session_id", session.ID())
}
