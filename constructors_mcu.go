//go:build tinygo || baremetal

// This file is built only for embedded targets (using a real GPIO pin).
package splitwire

import (
	"machine"

	"github.com/careyk007/splitwire/driver/mcu"
	"github.com/careyk007/splitwire/transport"
)

// NewPeripheral returns a transmitter bound to the given data pin.
func NewPeripheral(pin machine.Pin) *transport.Transmitter {
	return transport.NewTransmitterWithLine(mcu.New(pin))
}

// NewCentral returns a receiver bound to the given data pin.
func NewCentral(pin machine.Pin) *transport.Receiver {
	return transport.NewReceiverWithLine(mcu.New(pin))
}
