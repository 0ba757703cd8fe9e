//go:build tinygo || baremetal

package mcu

import (
	"time"

	"machine"

	"github.com/careyk007/splitwire/transport"
)

// Driver provides a LineDriver backed by a single machine.Pin. The pin is
// reconfigured per role: the peripheral configures it as an output, the
// central as a pulled-up input with a falling-edge interrupt.
type Driver struct {
	pin  machine.Pin
	edge func()
}

func New(pin machine.Pin) *Driver { return &Driver{pin: pin} }

func (d *Driver) Configure(mode transport.LineMode) error {
	switch mode {
	case transport.LineModeOutput:
		d.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	case transport.LineModeInput:
		d.pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	return nil
}

func (d *Driver) SetLevel(high bool) error {
	d.pin.Set(high)
	return nil
}

func (d *Driver) ReadLevel() (bool, error) {
	return d.pin.Get(), nil
}

func (d *Driver) SetEdgeCallback(fn func()) error {
	d.edge = fn
	return nil
}

func (d *Driver) EnableEdgeInterrupt() error {
	return d.pin.SetInterrupt(machine.PinFalling, d.handleInterrupt)
}

func (d *Driver) DisableEdgeInterrupt() error {
	return d.pin.SetInterrupt(machine.PinFalling, nil)
}

func (d *Driver) handleInterrupt(machine.Pin) {
	if d.edge != nil {
		d.edge()
	}
}

// Wait busy-waits without yielding to the scheduler. Bit timing depends on
// this staying busy: a time.Sleep would let other goroutines preempt the
// sampling sequence mid-bit.
func (d *Driver) Wait(dur time.Duration) {
	end := time.Now().Add(dur)
	for time.Now().Before(end) {
	}
}
