// Package frameserial implements the wire protocol for driving an external
// LED strip controller over a serial line: small typed packets with a
// trailing CRC32.
package frameserial

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"taillight-go/errcode"
)

// Endianness defines the endianness of the protocol.
var Endianness = binary.LittleEndian

// PacketType is a type of packet.
type PacketType uint8

const (
	TypeInit PacketType = iota
	TypeClear
	TypeFrame
)

// String returns a string representation of the packet type.
func (t PacketType) String() string {
	switch t {
	case TypeInit:
		return "init"
	case TypeClear:
		return "clear"
	case TypeFrame:
		return "frame"
	default:
		return fmt.Sprintf("PacketType(%d)", t)
	}
}

// Packet is a unit sent over the wire.
type Packet interface {
	Type() PacketType
}

// InitPacket announces the strip length to the controller.
type InitPacket struct {
	NumLEDs uint8
}

// ClearPacket blanks the strip.
type ClearPacket struct{}

// FramePacket sets the strip to the given bit pattern, on=1 per LED.
type FramePacket struct {
	Bits uint8
}

func (p InitPacket) Type() PacketType  { return TypeInit }
func (p ClearPacket) Type() PacketType { return TypeClear }
func (p FramePacket) Type() PacketType { return TypeFrame }

func payloadLen(t PacketType) (int, bool) {
	switch t {
	case TypeInit, TypeFrame:
		return 1, true
	case TypeClear:
		return 0, true
	default:
		return 0, false
	}
}

// WritePacket encodes p as [type][payload][crc32(type+payload)].
func WritePacket(w io.Writer, p Packet) error {
	buf := []byte{byte(p.Type())}
	switch v := p.(type) {
	case InitPacket:
		buf = append(buf, v.NumLEDs)
	case ClearPacket:
	case FramePacket:
		buf = append(buf, v.Bits)
	default:
		return &errcode.E{C: errcode.Unsupported, Op: "frameserial.WritePacket"}
	}
	buf = Endianness.AppendUint32(buf, crc32.ChecksumIEEE(buf))
	_, err := w.Write(buf)
	return err
}

// ReadPacket decodes one packet from r.
func ReadPacket(r io.Reader) (Packet, error) {
	var head [1]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, err
	}
	t := PacketType(head[0])
	n, ok := payloadLen(t)
	if !ok {
		return nil, &errcode.E{C: errcode.BadFrame, Op: "frameserial.ReadPacket", Msg: t.String()}
	}

	body := make([]byte, n+4)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	payload, sum := body[:n], Endianness.Uint32(body[n:])

	check := crc32.NewIEEE()
	check.Write(head[:])
	check.Write(payload)
	if check.Sum32() != sum {
		return nil, &errcode.E{C: errcode.BadCRC, Op: "frameserial.ReadPacket", Msg: t.String()}
	}

	switch t {
	case TypeInit:
		return InitPacket{NumLEDs: payload[0]}, nil
	case TypeClear:
		return ClearPacket{}, nil
	case TypeFrame:
		return FramePacket{Bits: payload[0]}, nil
	}
	return nil, &errcode.E{C: errcode.BadFrame, Op: "frameserial.ReadPacket"}
}
