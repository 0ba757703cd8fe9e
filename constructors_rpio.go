//go:build linux && !tinygo && !baremetal

package splitwire

import (
	"github.com/careyk007/splitwire/driver/rpio"
	"github.com/careyk007/splitwire/transport"
)

// NewPeripheralGPIO returns a transmitter bound to a BCM-numbered GPIO pin
// on a Raspberry Pi, plus the driver handle for Close.
func NewPeripheralGPIO(bcm uint8, cfg Config) (*transport.Transmitter, *rpio.Driver, error) {
	drv, err := rpio.Open(bcm)
	if err != nil {
		return nil, nil, err
	}
	tx, err := transport.NewTransmitterWithConfig(drv, cfg)
	if err != nil {
		_ = drv.Close()
		return nil, nil, err
	}
	return tx, drv, nil
}

// NewCentralGPIO returns a receiver bound to a BCM-numbered GPIO pin on a
// Raspberry Pi. The caller must run the driver's Watch on its own goroutine
// for edges to be delivered, and Close it when done.
func NewCentralGPIO(bcm uint8, cfg Config) (*transport.Receiver, *rpio.Driver, error) {
	drv, err := rpio.Open(bcm)
	if err != nil {
		return nil, nil, err
	}
	rx, err := transport.NewReceiverWithConfig(drv, cfg)
	if err != nil {
		_ = drv.Close()
		return nil, nil, err
	}
	return rx, drv, nil
}
