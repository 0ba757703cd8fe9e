package transport

import (
	"fmt"
	"sync"

	"github.com/careyk007/splitwire/protocol"
	"github.com/rs/zerolog"
)

// Transmitter is the peripheral role: it owns the local position snapshot
// and emits a full-snapshot frame on every key transition. It only ever
// drives the line.
type Transmitter struct {
	mu           sync.Mutex
	line         LineDriver
	codec        *LineCodec
	state        protocol.Snapshot
	numPositions int
	log          zerolog.Logger
}

// NewTransmitterWithLine creates a transmitter with the default
// configuration on the given line.
func NewTransmitterWithLine(line LineDriver) *Transmitter {
	t, _ := NewTransmitterWithConfig(line, DefaultConfig())
	return t
}

func NewTransmitterWithConfig(line LineDriver, cfg Config) (*Transmitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.normalise()

	codec := NewLineCodec(line)
	codec.SetLogger(cfg.Logger)

	return &Transmitter{
		line:         line,
		codec:        codec,
		state:        protocol.NewSnapshot(cfg.Capacity),
		numPositions: cfg.NumPositions,
		log:          cfg.Logger,
	}, nil
}

// Initialise configures the line as an output and releases it to its idle
// high level. It must succeed before any transmission is attempted; this is
// the only point at which a broken line surfaces as an error.
func (t *Transmitter) Initialise() error {
	if err := t.line.Configure(LineModeOutput); err != nil {
		return fmt.Errorf("configure line: %w", err)
	}
	if err := t.line.SetLevel(true); err != nil {
		return fmt.Errorf("drive idle level: %w", err)
	}
	t.log.Debug().Int("capacity", len(t.state)).Msg("transmitter line configured")
	return nil
}

// PositionPressed sets the bit for position in the local snapshot, then
// transmits the full snapshot. The call blocks for the whole transmission.
func (t *Transmitter) PositionPressed(position int) error {
	return t.update(position, true)
}

// PositionReleased clears the bit for position in the local snapshot, then
// transmits the full snapshot. The call blocks for the whole transmission.
func (t *Transmitter) PositionReleased(position int) error {
	return t.update(position, false)
}

// Pressed reports the local snapshot state for position.
func (t *Transmitter) Pressed(position int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if position < 0 || position >= t.numPositions {
		return false
	}
	return t.state.Pressed(position)
}

// Snapshot returns a copy of the local snapshot.
func (t *Transmitter) Snapshot() protocol.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

func (t *Transmitter) update(position int, pressed bool) error {
	if position < 0 || position >= t.numPositions {
		return protocol.ErrPositionOutOfRange
	}

	// Concurrent callers serialize here for the full busy-wait duration of
	// the prior transmission; the line protocol has no abort mechanism, so
	// no partial frame can exist.
	t.mu.Lock()
	defer t.mu.Unlock()

	if pressed {
		t.state.Set(position)
	} else {
		t.state.Clear(position)
	}

	t.sendSnapshot()

	t.log.Debug().Int("position", position).Bool("pressed", pressed).Msg("snapshot transmitted")
	return nil
}

// sendSnapshot drives one complete transaction: the line is pulled low for
// one bit period to raise the central's falling-edge interrupt, then the
// framing symbol, the length byte (always the full capacity) and every
// snapshot byte follow, and the line is finally released to idle high. The
// idle level is held for one further bit period; the receiver's sampling
// loop overruns the last bit by half a period, so a start bit driven any
// sooner would raise no edge at the central.
//
// The whole sequence busy-waits, occupying the caller for about
// (2 + 8*(2+capacity)) bit periods (~7.3 ms at the default 16 bytes).
func (t *Transmitter) sendSnapshot() {
	frame := protocol.Frame{Payload: t.state}

	_ = t.line.SetLevel(false)
	t.line.Wait(protocol.BitPeriod)

	for _, b := range protocol.EncodeFrame(&frame) {
		t.codec.SendByte(b)
	}

	_ = t.line.SetLevel(true)
	t.line.Wait(protocol.BitPeriod)
}
