package protocol

import "time"

// Generic line & protocol constants (platform independent). All higher layers should depend on this file.
const (
	// BitPeriod is the time window during which the line level represents
	// one bit. Both ends are built around the same fixed period; there is
	// no clock line and no auto-detection.
	BitPeriod = 50 * time.Microsecond

	// HalfBitPeriod is used by the receiver to align its sampling to the
	// middle of each bit window.
	HalfBitPeriod = BitPeriod / 2

	// FramingSymbol is the fixed sentinel byte marking the start of a frame.
	FramingSymbol = 0x55

	// FrameHeaderSize covers the framing symbol and the length byte.
	FrameHeaderSize = 2

	// MaxPayloadSize is the largest payload the single length byte can describe.
	MaxPayloadSize = 255

	// DefaultSnapshotSize is the default snapshot capacity in bytes. Each
	// byte carries eight key positions, so the default covers 128 positions.
	DefaultSnapshotSize = 16
)
