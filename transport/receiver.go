package transport

import (
	"fmt"
	"time"

	"github.com/careyk007/splitwire/protocol"
	"github.com/rs/zerolog"
)

// Receiver is the central role: an edge-triggered sampling state machine
// that decodes one frame per falling edge, diffs it against the previously
// known snapshot and reports one event per changed position. It only ever
// samples the line.
//
// The stored snapshot is mutated exclusively from the edge-handling
// context. A caller reading it from elsewhere must add its own
// synchronisation; the receiver provides none.
type Receiver struct {
	line         LineDriver
	codec        *LineCodec
	state        protocol.Snapshot
	numPositions int
	onEvent      func(protocol.PositionEvent)
	now          func() time.Time
	log          zerolog.Logger
}

// NewReceiverWithLine creates a receiver with the default configuration on
// the given line.
func NewReceiverWithLine(line LineDriver) *Receiver {
	r, _ := NewReceiverWithConfig(line, DefaultConfig())
	return r
}

func NewReceiverWithConfig(line LineDriver, cfg Config) (*Receiver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.normalise()

	codec := NewLineCodec(line)
	codec.SetLogger(cfg.Logger)

	return &Receiver{
		line:         line,
		codec:        codec,
		state:        protocol.NewSnapshot(cfg.Capacity),
		numPositions: cfg.NumPositions,
		now:          time.Now,
		log:          cfg.Logger,
	}, nil
}

// SetEventCallback registers the sink invoked once per changed position.
// The callback runs inside the edge-handling context and should return
// quickly.
func (r *Receiver) SetEventCallback(fn func(protocol.PositionEvent)) {
	r.onEvent = fn
}

// Initialise configures the line as an input and arms the falling-edge
// interrupt with HandleFallingEdge.
func (r *Receiver) Initialise() error {
	if err := r.line.Configure(LineModeInput); err != nil {
		return fmt.Errorf("configure line: %w", err)
	}
	if err := r.line.SetEdgeCallback(r.HandleFallingEdge); err != nil {
		return fmt.Errorf("register edge callback: %w", err)
	}
	if err := r.line.EnableEdgeInterrupt(); err != nil {
		return fmt.Errorf("arm edge interrupt: %w", err)
	}
	r.log.Debug().Int("capacity", len(r.state)).Msg("receiver line armed")
	return nil
}

// HandleFallingEdge runs one complete receive transaction. It executes
// synchronously in whatever context delivers the edge (on hardware, the
// GPIO interrupt context) and busy-waits for every bit period, so the edge
// interrupt stays disabled and the context stays occupied for up to
// (1.5 + 8*(2+capacity)) bit periods. Sampling alignment requires that
// nothing preempts the sequence.
//
// There is no timeout and no resynchronisation. A rejected frame leaves its
// unread payload bits on the line; the receiver recovers only when a later
// falling edge lines up with a clean start bit.
func (r *Receiver) HandleFallingEdge() {
	_ = r.line.DisableEdgeInterrupt()
	defer func() { _ = r.line.EnableEdgeInterrupt() }()

	// The start bit occupies one period, so one and a half periods from
	// its leading edge lands mid-way through the first framing-symbol bit.
	// Every subsequent sample then falls in the middle of a stable level.
	r.line.Wait(protocol.BitPeriod + protocol.HalfBitPeriod)

	if symbol := r.codec.ReadByte(); symbol != protocol.FramingSymbol {
		r.log.Debug().Uint8("symbol", symbol).Msg("framing symbol mismatch, dropping transaction")
		return
	}

	length := r.codec.ReadByte()
	if int(length) > len(r.state) {
		r.log.Warn().
			Err(protocol.ErrLengthOverflow).
			Uint8("length", length).
			Int("capacity", len(r.state)).
			Msg("rejecting frame")
		return
	}

	next := protocol.NewSnapshot(len(r.state))
	for i := 0; i < int(length); i++ {
		next[i] = r.codec.ReadByte()
	}

	r.apply(next)
}

// apply diffs the decoded snapshot against the stored one, emits one event
// per changed bit in byte-major, bit-minor order, and installs the decoded
// snapshot as the new baseline.
func (r *Receiver) apply(next protocol.Snapshot) {
	changed := r.state.Diff(next)
	ts := r.now()

	for i, c := range changed {
		for j := 0; j < 8; j++ {
			if c&(1<<j) == 0 {
				continue
			}
			position := i*8 + j
			if position >= r.numPositions {
				r.log.Debug().Int("position", position).Msg("changed position beyond configured range")
				continue
			}

			ev := protocol.PositionEvent{
				Position:  position,
				Pressed:   next.Pressed(position),
				Timestamp: ts,
			}
			r.log.Debug().Int("position", position).Bool("pressed", ev.Pressed).Msg("position state changed")
			if r.onEvent != nil {
				r.onEvent(ev)
			}
		}
	}

	r.state = next
}

// Pressed reports the last decoded state for position.
func (r *Receiver) Pressed(position int) bool {
	if position < 0 || position >= r.numPositions {
		return false
	}
	return r.state.Pressed(position)
}

// Snapshot returns a copy of the last decoded snapshot.
func (r *Receiver) Snapshot() protocol.Snapshot {
	return r.state.Clone()
}
