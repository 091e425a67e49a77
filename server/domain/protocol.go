package domain

import (
	"encoding/binary"
	"errors"
	"math"
	"time"
)

// バイトオーダー: リトルエンディアン
var byteOrder = binary.LittleEndian

const (
	HeaderSize        = 25
	PayloadHeaderSize = 2
	ProtocolVersion   = 1

	// MaxPayloadSize はHeader.Lengthで表現できるペイロードの最大長です。
	MaxPayloadSize = math.MaxUint16
)

// Header はメッセージヘッダー (25バイト)
//
//	version    u8      (1)
//	sessionID  [16]byte (16)
//	seq        u16     (2)
//	length     u16     (2)  - ペイロード長 (ペイロードヘッダー含む)
//	timestamp  u32     (4)
type Header struct {
	Version   uint8
	SessionID [16]byte
	Seq       uint16
	Length    uint16
	Timestamp uint32
}

// DataType はメッセージの種別
type DataType uint8

const (
	DataTypeControl  DataType = 4
	DataTypeSnapshot DataType = 6
)

// ControlSubType はcontrolメッセージのサブタイプ
type ControlSubType uint8

const (
	ControlSubTypeLeave  ControlSubType = 2
	ControlSubTypePing   ControlSubType = 4
	ControlSubTypePong   ControlSubType = 5
	ControlSubTypeAssign ControlSubType = 7
)

// PayloadHeader はペイロードヘッダー (2バイト)
//
//	datatype  u8 (1)
//	subtype   u8 (1)
type PayloadHeader struct {
	DataType DataType
	SubType  uint8
}

var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidPayloadSize = errors.New("invalid payload size")
	ErrPayloadTooLarge    = errors.New("payload exceeds u16 length field")
)

// ParseHeader はバイト列からHeaderをパースする
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, ErrInvalidHeaderSize
	}

	var sessionID [16]byte
	copy(sessionID[:], data[1:17])

	return &Header{
		Version:   data[0],
		SessionID: sessionID,
		Seq:       byteOrder.Uint16(data[17:19]),
		Length:    byteOrder.Uint16(data[19:21]),
		Timestamp: byteOrder.Uint32(data[21:25]),
	}, nil
}

// Encode はHeaderをバイト列にエンコードする
func (h *Header) Encode() []byte {
	data := make([]byte, HeaderSize)
	h.encodeTo(data)
	return data
}

func (h *Header) encodeTo(data []byte) {
	data[0] = h.Version
	copy(data[1:17], h.SessionID[:])
	byteOrder.PutUint16(data[17:19], h.Seq)
	byteOrder.PutUint16(data[19:21], h.Length)
	byteOrder.PutUint32(data[21:25], h.Timestamp)
}

// ParsePayloadHeader はバイト列からPayloadHeaderをパースする
func ParsePayloadHeader(data []byte) (*PayloadHeader, error) {
	if len(data) < PayloadHeaderSize {
		return nil, ErrInvalidPayloadSize
	}

	return &PayloadHeader{
		DataType: DataType(data[0]),
		SubType:  data[1],
	}, nil
}

// Encode はPayloadHeaderをバイト列にエンコードする
func (p *PayloadHeader) Encode() []byte {
	return []byte{byte(p.DataType), p.SubType}
}

// EncodeFrame はヘッダー・ペイロードヘッダー・本体を1つのフレームにまとめる
func EncodeFrame(sessionID SessionID, seq uint16, dataType DataType, subType uint8, body []byte) ([]byte, error) {
	length := PayloadHeaderSize + len(body)
	if length > MaxPayloadSize {
		return nil, ErrPayloadTooLarge
	}

	header := Header{
		Version:   ProtocolVersion,
		SessionID: sessionID.Bytes(),
		Seq:       seq,
		Length:    uint16(length),
		Timestamp: timestamp(),
	}

	data := make([]byte, HeaderSize+length)
	header.encodeTo(data)
	data[HeaderSize] = byte(dataType)
	data[HeaderSize+1] = subType
	copy(data[HeaderSize+PayloadHeaderSize:], body)
	return data, nil
}

// ParseFrame はフレームを分解し、ペイロードヘッダー以降の本体を返す
func ParseFrame(data []byte) (*Header, *PayloadHeader, []byte, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, nil, nil, err
	}
	rest := data[HeaderSize:]
	if int(header.Length) > len(rest) {
		return nil, nil, nil, ErrInvalidPayloadSize
	}
	payloadHeader, err := ParsePayloadHeader(rest[:header.Length])
	if err != nil {
		return nil, nil, nil, err
	}
	return header, payloadHeader, rest[PayloadHeaderSize:header.Length], nil
}

// EncodeControlMessage は本体を持たないcontrolメッセージをエンコードする
func EncodeControlMessage(sessionID SessionID, subType ControlSubType) []byte {
	// 本体が空なので長さ超過は起きない
	data, _ := EncodeFrame(sessionID, 0, DataTypeControl, uint8(subType), nil)
	return data
}

// EncodeAssignMessage は観戦者に自分のセッションIDを通知する
func EncodeAssignMessage(sessionID SessionID) []byte {
	return EncodeControlMessage(sessionID, ControlSubTypeAssign)
}

// EncodePingMessage は死活確認のpingを送る
func EncodePingMessage(sessionID SessionID) []byte {
	return EncodeControlMessage(sessionID, ControlSubTypePing)
}

// EncodePongMessage はpingへの応答
func EncodePongMessage(sessionID SessionID) []byte {
	return EncodeControlMessage(sessionID, ControlSubTypePong)
}

func timestamp() uint32 {
	return uint32(time.Now().UnixMilli() & 0xFFFFFFFF)
}
