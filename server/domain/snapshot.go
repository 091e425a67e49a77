package domain

import (
	"errors"
	"math"
)

// AgentFlags はスナップショット上のエージェント状態のビットマスクです。
type AgentFlags uint8

const (
	AgentFlagAlive   AgentFlags = 0x01
	AgentFlagFleeing AgentFlags = 0x02
	AgentFlagArmed   AgentFlags = 0x04
	AgentFlagHunting AgentFlags = 0x08 // 敵を捕捉している
)

const (
	agentFixedSize      = 16 + Position2DSize + 5
	objectSize          = 1 + Position2DSize
	projectileSize      = 2 * Position2DSize
	maxLabelLen         = math.MaxUint8
	snapshotHeadingSize = 4
)

var ErrInvalidSnapshot = errors.New("invalid snapshot payload")

// AgentSnapshot は1エージェントの配信用データ
//
//	id       [16]byte
//	position Position2D (8)
//	health, food, stamina, ammo u8 (4)
//	flags    u8
//	goal     u8 length + bytes
//	action   u8 length + bytes
type AgentSnapshot struct {
	ID       [16]byte
	Position Position2D
	Health   uint8
	Food     uint8
	Stamina  uint8
	Ammo     uint8
	Flags    AgentFlags
	Goal     string
	Action   string
}

// ObjectSnapshot はワールドに落ちているオブジェクト (9バイト)
type ObjectSnapshot struct {
	Kind     uint8
	Position Position2D
}

// ProjectileSnapshot は飛翔中の弾 (16バイト)
type ProjectileSnapshot struct {
	Position Position2D
	Velocity Position2D
}

// Snapshot は1tick分のワールドの状態です。
//
//	tick        u32
//	agents      u16 count + AgentSnapshot...
//	objects     u16 count + ObjectSnapshot...
//	projectiles u16 count + ProjectileSnapshot...
type Snapshot struct {
	Tick        uint32
	Agents      []AgentSnapshot
	Objects     []ObjectSnapshot
	Projectiles []ProjectileSnapshot
}

// Encode はSnapshotをバイト列にエンコードする。長すぎるラベルは255バイトで切り詰める
func (s *Snapshot) Encode() []byte {
	size := snapshotHeadingSize + 6 + len(s.Objects)*objectSize + len(s.Projectiles)*projectileSize
	for i := range s.Agents {
		size += agentFixedSize + 2 + labelLen(s.Agents[i].Goal) + labelLen(s.Agents[i].Action)
	}

	buf := make([]byte, 0, size)
	buf = byteOrder.AppendUint32(buf, s.Tick)

	buf = byteOrder.AppendUint16(buf, uint16(len(s.Agents)))
	for _, a := range s.Agents {
		buf = append(buf, a.ID[:]...)
		buf = appendPosition(buf, a.Position)
		buf = append(buf, a.Health, a.Food, a.Stamina, a.Ammo, byte(a.Flags))
		buf = appendLabel(buf, a.Goal)
		buf = appendLabel(buf, a.Action)
	}

	buf = byteOrder.AppendUint16(buf, uint16(len(s.Objects)))
	for _, o := range s.Objects {
		buf = append(buf, o.Kind)
		buf = appendPosition(buf, o.Position)
	}

	buf = byteOrder.AppendUint16(buf, uint16(len(s.Projectiles)))
	for _, p := range s.Projectiles {
		buf = appendPosition(buf, p.Position)
		buf = appendPosition(buf, p.Velocity)
	}
	return buf
}

// ParseSnapshot はバイト列からSnapshotをパースする
func ParseSnapshot(data []byte) (*Snapshot, error) {
	r := reader{data: data}
	s := &Snapshot{Tick: r.u32()}

	n := int(r.u16())
	s.Agents = make([]AgentSnapshot, 0, min(n, len(data)/agentFixedSize))
	for range n {
		var a AgentSnapshot
		copy(a.ID[:], r.bytes(16))
		a.Position = r.position()
		a.Health, a.Food, a.Stamina, a.Ammo = r.u8(), r.u8(), r.u8(), r.u8()
		a.Flags = AgentFlags(r.u8())
		a.Goal = r.label()
		a.Action = r.label()
		if r.err != nil {
			return nil, r.err
		}
		s.Agents = append(s.Agents, a)
	}

	n = int(r.u16())
	s.Objects = make([]ObjectSnapshot, 0, min(n, len(data)/objectSize))
	for range n {
		o := ObjectSnapshot{Kind: r.u8(), Position: r.position()}
		if r.err != nil {
			return nil, r.err
		}
		s.Objects = append(s.Objects, o)
	}

	n = int(r.u16())
	s.Projectiles = make([]ProjectileSnapshot, 0, min(n, len(data)/projectileSize))
	for range n {
		p := ProjectileSnapshot{Position: r.position(), Velocity: r.position()}
		if r.err != nil {
			return nil, r.err
		}
		s.Projectiles = append(s.Projectiles, p)
	}

	if r.err != nil {
		return nil, r.err
	}
	return s, nil
}

// EncodeSnapshotFrame はSnapshotを配信用のフレームにする
func EncodeSnapshotFrame(s *Snapshot) ([]byte, error) {
	return EncodeFrame(SessionID{}, uint16(s.Tick), DataTypeSnapshot, 0, s.Encode())
}

func labelLen(s string) int {
	return min(len(s), maxLabelLen)
}

func appendLabel(buf []byte, s string) []byte {
	n := labelLen(s)
	buf = append(buf, byte(n))
	return append(buf, s[:n]...)
}

func appendPosition(buf []byte, p Position2D) []byte {
	buf = byteOrder.AppendUint32(buf, math.Float32bits(p.X))
	return byteOrder.AppendUint32(buf, math.Float32bits(p.Y))
}

// reader は最初のエラーを保持する逐次デコーダーです。
type reader struct {
	data []byte
	off  int
	err  error
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.data) {
		r.err = ErrInvalidSnapshot
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() uint8 {
	b := r.bytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) u16() uint16 {
	b := r.bytes(2)
	if b == nil {
		return 0
	}
	return byteOrder.Uint16(b)
}

func (r *reader) u32() uint32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return byteOrder.Uint32(b)
}

func (r *reader) position() Position2D {
	b := r.bytes(Position2DSize)
	if b == nil {
		return Position2D{}
	}
	p, _ := ParsePosition2D(b)
	return *p
}

func (r *reader) label() string {
	n := int(r.u8())
	return string(r.bytes(n))
}
