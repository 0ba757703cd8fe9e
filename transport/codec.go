package transport

import (
	"github.com/careyk007/splitwire/protocol"
	"github.com/rs/zerolog"
)

// LineCodec encodes and decodes single bytes as timed line levels. It is
// stateless given a line handle and is shared by both roles so that bit
// order and timing can never diverge between them.
//
// Bits travel least significant first; there are no clock transitions, each
// level is simply held for one bit period.
type LineCodec struct {
	line LineDriver
	log  zerolog.Logger
}

func NewLineCodec(line LineDriver) *LineCodec {
	return &LineCodec{line: line, log: zerolog.Nop()}
}

// SetLogger configures diagnostic logging for this codec.
func (c *LineCodec) SetLogger(logger zerolog.Logger) {
	c.log = logger
}

// SendByte drives one byte onto the line, holding each bit's level for one
// bit period. Drive faults are silent at this layer; a line that cannot be
// driven must fail during configuration instead.
func (c *LineCodec) SendByte(b byte) {
	for i := 0; i < 8; i++ {
		_ = c.line.SetLevel(b&0x01 != 0)
		b >>= 1
		c.line.Wait(protocol.BitPeriod)
	}
}

// ReadByte samples the line once per bit period, accumulating eight bits
// least significant first. A failed sample is logged and the bit taken as
// 0; decoding continues, so a read fault silently corrupts the byte rather
// than aborting the frame.
func (c *LineCodec) ReadByte() byte {
	var b byte
	for i := 0; i < 8; i++ {
		level, err := c.line.ReadLevel()
		if err != nil {
			c.log.Warn().Err(err).Int("bit", i).Msg("line read fault, sampling bit as 0")
		} else if level {
			b |= 1 << i
		}
		c.line.Wait(protocol.BitPeriod)
	}
	return b
}
