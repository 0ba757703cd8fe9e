package protocol

// Frame represents one transaction's worth of data transferred over the line.
// Layout: FramingSymbol(1) | Length(1) | Payload(0-255)
// Length counts payload bytes only.
//
// A frame is a value type, built fresh per transmission and never retained.

type Frame struct {
	Length  byte
	Payload []byte
}

// EncodeFrame serialises a Frame into its on-wire byte sequence. The length
// byte is derived from the payload; oversized payloads are truncated to
// MaxPayloadSize.
func EncodeFrame(f *Frame) []byte {
	if f == nil {
		return make([]byte, 0)
	}

	payloadLen := len(f.Payload)
	if payloadLen > MaxPayloadSize {
		payloadLen = MaxPayloadSize
	}

	data := make([]byte, FrameHeaderSize+payloadLen)
	data[0] = FramingSymbol
	data[1] = byte(payloadLen)
	copy(data[FrameHeaderSize:], f.Payload[:payloadLen])

	f.Length = byte(payloadLen)

	return data
}

// DecodeFrame parses an on-wire byte sequence back into a Frame. It returns
// nil when the input is truncated or does not begin with the framing symbol.
func DecodeFrame(data []byte) *Frame {
	if len(data) < FrameHeaderSize {
		return nil
	}
	if data[0] != FramingSymbol {
		return nil
	}

	payloadLen := int(data[1])
	if FrameHeaderSize+payloadLen > len(data) {
		return nil
	}

	f := &Frame{
		Length:  byte(payloadLen),
		Payload: make([]byte, payloadLen),
	}
	copy(f.Payload, data[FrameHeaderSize:FrameHeaderSize+payloadLen])

	return f
}
