package domain

import (
	"errors"
	"math"
)

const Position2DSize = 8 // 2 * float32

// Position2D はワールド座標上の2D位置です。方向ベクトルとしても使います。
type Position2D struct {
	X, Y float32
}

var ErrInvalidPosition2DData = errors.New("invalid position2d data: expected 8 bytes")

func (p Position2D) Add(o Position2D) Position2D {
	return Position2D{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Position2D) Sub(o Position2D) Position2D {
	return Position2D{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Position2D) Scale(s float32) Position2D {
	return Position2D{X: p.X * s, Y: p.Y * s}
}

// Len はベクトルの長さを返します。
func (p Position2D) Len() float32 {
	return float32(math.Hypot(float64(p.X), float64(p.Y)))
}

// Normalize は単位ベクトルを返します。長さ0のベクトルはそのまま返します。
func (p Position2D) Normalize() Position2D {
	l := p.Len()
	if l == 0 {
		return p
	}
	return Position2D{X: p.X / l, Y: p.Y / l}
}

// Dst は2点間の距離を返します。
func (p Position2D) Dst(o Position2D) float32 {
	return p.Sub(o).Len()
}

// ParsePosition2D はバイト列からPosition2Dをパースする
func ParsePosition2D(data []byte) (*Position2D, error) {
	if len(data) < Position2DSize {
		return nil, ErrInvalidPosition2DData
	}

	return &Position2D{
		X: math.Float32frombits(byteOrder.Uint32(data[0:4])),
		Y: math.Float32frombits(byteOrder.Uint32(data[4:8])),
	}, nil
}

// Encode はPosition2Dをバイト列にエンコードする
func (p *Position2D) Encode() []byte {
	buf := make([]byte, Position2DSize)
	byteOrder.PutUint32(buf[0:4], math.Float32bits(p.X))
	byteOrder.PutUint32(buf[4:8], math.Float32bits(p.Y))
	return buf
}
