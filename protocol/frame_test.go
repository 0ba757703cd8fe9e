package protocol

import (
	"bytes"
	"testing"
)

func TestFrameEncoding(t *testing.T) {
	tests := []struct {
		name     string
		frame    *Frame
		wantSize int
	}{
		{
			name:     "empty payload",
			frame:    &Frame{Payload: []byte{}},
			wantSize: FrameHeaderSize,
		},
		{
			name:     "single byte",
			frame:    &Frame{Payload: []byte{0x20}},
			wantSize: FrameHeaderSize + 1,
		},
		{
			name:     "full default snapshot",
			frame:    &Frame{Payload: bytes.Repeat([]byte{0xAA}, DefaultSnapshotSize)},
			wantSize: FrameHeaderSize + DefaultSnapshotSize,
		},
		{
			name:     "maximum payload",
			frame:    &Frame{Payload: bytes.Repeat([]byte{0x01}, MaxPayloadSize)},
			wantSize: FrameHeaderSize + MaxPayloadSize,
		},
		{
			name:     "too large payload gets truncated",
			frame:    &Frame{Payload: bytes.Repeat([]byte{0x01}, MaxPayloadSize+50)},
			wantSize: FrameHeaderSize + MaxPayloadSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeFrame(tt.frame)

			if len(encoded) != tt.wantSize {
				t.Errorf("EncodeFrame() size = %v, want %v", len(encoded), tt.wantSize)
			}
			if encoded[0] != FramingSymbol {
				t.Errorf("start symbol = %#02x, want %#02x", encoded[0], FramingSymbol)
			}
			if int(encoded[1]) != tt.wantSize-FrameHeaderSize {
				t.Errorf("length byte = %v, want %v", encoded[1], tt.wantSize-FrameHeaderSize)
			}
			if tt.frame.Length != encoded[1] {
				t.Errorf("Frame.Length = %v, want %v", tt.frame.Length, encoded[1])
			}
		})
	}
}

// A snapshot with only position 5 pressed must serialise to the exact wire
// bytes {0x55, 0x10, 0x20, 0x00 x15}.
func TestFrameWireLayout(t *testing.T) {
	state := NewSnapshot(DefaultSnapshotSize)
	state.Set(5)

	encoded := EncodeFrame(&Frame{Payload: state})

	want := append([]byte{0x55, 0x10, 0x20}, bytes.Repeat([]byte{0x00}, 15)...)
	if !bytes.Equal(encoded, want) {
		t.Errorf("EncodeFrame() = %#v, want %#v", encoded, want)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{
			name:    "empty payload",
			payload: []byte{},
		},
		{
			name:    "short payload",
			payload: []byte{0x01, 0x80, 0x55},
		},
		{
			name:    "full default snapshot",
			payload: bytes.Repeat([]byte{0x5A}, DefaultSnapshotSize),
		},
		{
			name:    "maximum payload",
			payload: bytes.Repeat([]byte{0xFF}, MaxPayloadSize),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeFrame(&Frame{Payload: tt.payload})
			decoded := DecodeFrame(encoded)

			if decoded == nil {
				t.Fatal("DecodeFrame() returned nil, want successful decode")
			}
			if int(decoded.Length) != len(tt.payload) {
				t.Errorf("Length = %v, want %v", decoded.Length, len(tt.payload))
			}
			if !bytes.Equal(decoded.Payload, tt.payload) {
				t.Errorf("Payload = %#v, want %#v", decoded.Payload, tt.payload)
			}
		})
	}
}

func TestDecodeInvalidFrames(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "nil data",
			data: nil,
		},
		{
			name: "too short",
			data: []byte{FramingSymbol},
		},
		{
			name: "wrong start symbol",
			data: []byte{0xAA, 0x01, 0x20},
		},
		{
			name: "truncated payload",
			data: []byte{FramingSymbol, 0x10, 0x20, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if decoded := DecodeFrame(tt.data); decoded != nil {
				t.Errorf("DecodeFrame() = %v, want nil for invalid frame", decoded)
			}
		})
	}
}
