package domain

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// SessionID は観戦セッションの識別子です。
type SessionID uuid.UUID

func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

// SessionIDFromBytes はヘッダーのバイト列からSessionIDを復元します。
func SessionIDFromBytes(b [16]byte) SessionID {
	return SessionID(b)
}

func (id SessionID) Bytes() [16]byte {
	return [16]byte(id)
}

func (id SessionID) String() string {
	return uuid.UUID(id).String()
}

func (id SessionID) IsZero() bool {
	return id == SessionID{}
}

// Session は観戦者1人分の論理セッションです。
type Session struct {
	id       SessionID
	lastPong atomic.Int64 // unix nano
	closed   atomic.Bool
}

func NewSession() *Session {
	s := &Session{id: NewSessionID()}
	s.lastPong.Store(time.Now().UnixNano())
	return s
}

func (s *Session) ID() SessionID {
	return s.id
}

// TouchPong は最後にpongを受信した時刻を更新します。
func (s *Session) TouchPong() {
	s.lastPong.Store(time.Now().UnixNano())
}

// IsIdle は timeout 以上pongがないかを返します。
func (s *Session) IsIdle(timeout time.Duration) bool {
	last := time.Unix(0, s.lastPong.Load())
	return time.Since(last) > timeout
}

func (s *Session) Close() {
	s.closed.Store(true)
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}
