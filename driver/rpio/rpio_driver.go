//go:build linux && !tinygo && !baremetal

// Package rpio provides a LineDriver backed by the Raspberry Pi's
// memory-mapped BCM2835 GPIO registers.
package rpio

import (
	"context"
	"fmt"
	"time"

	"github.com/stianeikeland/go-rpio/v4"

	"github.com/careyk007/splitwire/transport"
)

// Driver drives or samples one BCM-numbered GPIO pin.
//
// go-rpio exposes edge detection as a latched status register rather than a
// real interrupt, so a central-role caller must run Watch on a dedicated
// goroutine to poll it. SetEdgeCallback/EnableEdgeInterrupt must be called
// before Watch starts; after that the edge state is only touched from the
// Watch goroutine itself (the protocol disables and re-arms the interrupt
// inside the callback, which Watch invokes).
type Driver struct {
	pin   rpio.Pin
	edge  func()
	armed bool
}

// Open maps the GPIO registers and returns a driver for the given BCM pin.
func Open(bcm uint8) (*Driver, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("map gpio registers: %w", err)
	}
	return &Driver{pin: rpio.Pin(bcm)}, nil
}

// Close releases the GPIO register mapping.
func (d *Driver) Close() error {
	d.pin.Detect(rpio.NoEdge)
	return rpio.Close()
}

func (d *Driver) Configure(mode transport.LineMode) error {
	switch mode {
	case transport.LineModeOutput:
		d.pin.Output()
		d.pin.High()
	case transport.LineModeInput:
		d.pin.Input()
		d.pin.PullUp()
	}
	return nil
}

func (d *Driver) SetLevel(high bool) error {
	if high {
		d.pin.High()
	} else {
		d.pin.Low()
	}
	return nil
}

func (d *Driver) ReadLevel() (bool, error) {
	return d.pin.Read() == rpio.High, nil
}

func (d *Driver) SetEdgeCallback(fn func()) error {
	d.edge = fn
	return nil
}

func (d *Driver) EnableEdgeInterrupt() error {
	d.pin.Detect(rpio.FallEdge)
	d.armed = true
	return nil
}

func (d *Driver) DisableEdgeInterrupt() error {
	d.pin.Detect(rpio.NoEdge)
	d.armed = false
	return nil
}

// Watch polls the falling-edge status register and dispatches the callback
// until ctx is cancelled. It stands in for the GPIO interrupt context: the
// whole receive transaction runs on this goroutine.
func (d *Driver) Watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if d.armed && d.edge != nil && d.pin.EdgeDetected() {
			d.edge()
		}
	}
}

// Wait busy-waits on the monotonic clock. time.Sleep on Linux is far too
// coarse below ~100µs to hold a 50µs bit period.
func (d *Driver) Wait(dur time.Duration) {
	end := time.Now().Add(dur)
	for time.Now().Before(end) {
	}
}
