package frameserial

import (
	"bytes"
	"testing"

	"taillight-go/errcode"
)

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	for _, p := range []Packet{
		InitPacket{NumLEDs: 8},
		ClearPacket{},
		FramePacket{Bits: 0xA5},
	} {
		if err := WritePacket(&buf, p); err != nil {
			t.Fatalf("write %v: %v", p.Type(), err)
		}
	}

	got, err := ReadPacket(&buf)
	if err != nil {
		t.Fatalf("read init: %v", err)
	}
	if ip, ok := got.(InitPacket); !ok || ip.NumLEDs != 8 {
		t.Fatalf("init round trip: %#v", got)
	}

	if got, err = ReadPacket(&buf); err != nil {
		t.Fatalf("read clear: %v", err)
	}
	if _, ok := got.(ClearPacket); !ok {
		t.Fatalf("clear round trip: %#v", got)
	}

	if got, err = ReadPacket(&buf); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if fp, ok := got.(FramePacket); !ok || fp.Bits != 0xA5 {
		t.Fatalf("frame round trip: %#v", got)
	}
}

func TestCorruptedCRCRejected(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePacket(&buf, FramePacket{Bits: 0x01}); err != nil {
		t.Fatal(err)
	}
	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xFF

	_, err := ReadPacket(bytes.NewReader(raw))
	if errcode.Of(err) != errcode.BadCRC {
		t.Fatalf("expected bad_crc, got %v", err)
	}
}

func TestUnknownTypeRejected(t *testing.T) {
	_, err := ReadPacket(bytes.NewReader([]byte{0x7F, 0, 0, 0, 0}))
	if errcode.Of(err) != errcode.BadFrame {
		t.Fatalf("expected bad_frame, got %v", err)
	}
}

func TestShortReadSurfaces(t *testing.T) {
	var buf bytes.Buffer
	_ = WritePacket(&buf, InitPacket{NumLEDs: 8})
	raw := buf.Bytes()[:3]

	if _, err := ReadPacket(bytes.NewReader(raw)); err == nil {
		t.Fatal("expected error on truncated packet")
	}
}
