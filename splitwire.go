// Package splitwire provides a façade to access the one-wire split
// keyboard transport layer: a half-duplex, bit-banged protocol that carries
// a key-position bitmap from the peripheral half to the central half over a
// single shared data line with no clock.
package splitwire

import (
	"github.com/careyk007/splitwire/protocol"
	"github.com/careyk007/splitwire/transport"
)

// The concrete line drivers live in build-tag specific packages:
// - driver/mcu - for embedded targets (//go:build tinygo || baremetal)
// - driver/rpio - for Linux single-board computers
// - driver/sim - for development/testing (//go:build !tinygo && !baremetal)

// Re-export types for convenient single-import use
type (
	Snapshot      = protocol.Snapshot
	Frame         = protocol.Frame
	PositionEvent = protocol.PositionEvent
	Config        = transport.Config
	LineDriver    = transport.LineDriver
	LineCodec     = transport.LineCodec
	Transmitter   = transport.Transmitter
	Receiver      = transport.Receiver
)

// Error constants exposed in the public API
var (
	ErrPositionOutOfRange = protocol.ErrPositionOutOfRange
	ErrLengthOverflow     = protocol.ErrLengthOverflow
	ErrInvalidCapacity    = protocol.ErrInvalidCapacity
)

// Constants exposed in the public API
const (
	BitPeriod           = protocol.BitPeriod
	HalfBitPeriod       = protocol.HalfBitPeriod
	FramingSymbol       = protocol.FramingSymbol
	DefaultSnapshotSize = protocol.DefaultSnapshotSize
)

// DefaultConfig returns the standard wire parameters shared by both roles.
func DefaultConfig() Config { return transport.DefaultConfig() }
