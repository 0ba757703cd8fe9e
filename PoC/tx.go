//go:build tinygo || baremetal

package main

import (
	"machine"
	"time"
)

// Hand-rolled transmit side of the wire format, bypassing the library.
// Sends a one-byte frame once a second with an alternating payload.

const (
	pin       = machine.D2
	bitPeriod = 50 * time.Microsecond
)

var pattern byte = 0x20

func main() {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.High() // idle

	time.Sleep(3 * time.Second)

	for {
		sendFrame([]byte{0x55, 0x01, pattern})
		pattern ^= 0x20

		time.Sleep(1 * time.Second)
	}
}

func sendFrame(bytes []byte) {
	// start bit
	pin.Low()
	delayBit()

	for _, b := range bytes {
		for i := 0; i < 8; i++ {
			pin.Set(b&(1<<i) != 0)
			delayBit()
		}
	}

	pin.High()
}

// time.Sleep would let the scheduler stretch a bit mid-frame.
func delayBit() {
	deadline := time.Now().Add(bitPeriod)
	for time.Now().Before(deadline) {
	}
}
