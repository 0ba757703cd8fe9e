//go:build !tinygo && !baremetal

// This file is built only for non-embedded targets (host-based testing).
package splitwire

import (
	"github.com/careyk007/splitwire/driver/sim"
	"github.com/careyk007/splitwire/transport"
)

// NewLoopback wires a peripheral transmitter and a central receiver to the
// two ends of a simulated line. Transmit, then call the line's Deliver to
// replay the recorded waveform into the receiver's edge handler.
func NewLoopback() (*transport.Transmitter, *transport.Receiver, *sim.Line) {
	line := sim.NewLine()
	tx := transport.NewTransmitterWithLine(line.Peripheral())
	rx := transport.NewReceiverWithLine(line.Central())
	return tx, rx, line
}

// NewLoopbackWithConfig is NewLoopback with a shared role configuration.
func NewLoopbackWithConfig(cfg Config) (*transport.Transmitter, *transport.Receiver, *sim.Line, error) {
	line := sim.NewLine()
	tx, err := transport.NewTransmitterWithConfig(line.Peripheral(), cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	rx, err := transport.NewReceiverWithConfig(line.Central(), cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, rx, line, nil
}
