//go:build tinygo || baremetal

package main

import (
	"machine"
	"time"
)

// Hand-rolled receive side of the wire format, bypassing the library.
// Busy-polls for the start bit instead of using a pin interrupt.

const (
	pin       = machine.D2
	bitPeriod = 50 * time.Microsecond
)

func main() {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	time.Sleep(3 * time.Second)
	println("Polling for frames...")

	for {
		// wait for the falling edge of the start bit
		for pin.Get() {
		}

		// align to the middle of the first data bit
		delay(bitPeriod + bitPeriod/2)

		symbol := readByte()
		if symbol != 0x55 {
			println("Bad framing symbol:", symbol)
			continue
		}

		length := readByte()
		println("Frame, length:", length)
		for i := byte(0); i < length; i++ {
			println("  payload byte:", readByte())
		}
	}
}

func readByte() byte {
	var b byte
	for i := 0; i < 8; i++ {
		if pin.Get() {
			b |= 1 << i
		}
		delay(bitPeriod)
	}
	return b
}

func delay(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}
