package transport

import "time"

// LineMode selects the direction a role uses the shared line in. The
// peripheral always drives, the central always samples; direction is fixed
// by role, never negotiated.
type LineMode int

const (
	LineModeOutput LineMode = iota
	LineModeInput
)

// LineDriver is the interface that wraps the basic digital line operations.
// Any concrete hardware backend (MCU GPIO, memory-mapped SBC GPIO, a
// simulated line) can be substituted.
//
// Wait must block without yielding for the full duration; bit timing on
// both sides depends on it having microsecond resolution.
type LineDriver interface {
	// Configure sets the pin direction and leaves the line in its idle
	// (pulled-high) state.
	Configure(mode LineMode) error

	// SetLevel drives the line high (true) or low (false).
	SetLevel(high bool) error

	// ReadLevel samples the current line level.
	ReadLevel() (bool, error)

	// SetEdgeCallback registers fn to run on every falling edge while the
	// edge interrupt is enabled. The callback runs in the driver's edge
	// delivery context and must not be invoked re-entrantly.
	SetEdgeCallback(fn func()) error

	EnableEdgeInterrupt() error
	DisableEdgeInterrupt() error

	// Wait blocks for d with microsecond resolution.
	Wait(d time.Duration)
}
