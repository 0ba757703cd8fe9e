//go:build !tinygo && !baremetal

package sim

import (
	"testing"
	"time"
)

func TestWaveformRecording(t *testing.T) {
	line := NewLine()
	per := line.Peripheral()

	if !line.LevelAt(0) {
		t.Fatal("line must idle high")
	}

	_ = per.SetLevel(false)
	per.Wait(100 * time.Microsecond)
	_ = per.SetLevel(true)
	per.Wait(50 * time.Microsecond)
	_ = per.SetLevel(false)

	tests := []struct {
		at   time.Duration
		want bool
	}{
		{at: 50 * time.Microsecond, want: false},
		{at: 120 * time.Microsecond, want: true},
		{at: 200 * time.Microsecond, want: false},
	}
	for _, tt := range tests {
		if got := line.LevelAt(tt.at); got != tt.want {
			t.Errorf("LevelAt(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestDeliverFiresPerFallingEdge(t *testing.T) {
	line := NewLine()
	per := line.Peripheral()
	cen := line.Central()

	fired := 0
	_ = cen.SetEdgeCallback(func() {
		fired++
		// Move past the edge, as a real handler's sampling would.
		cen.Wait(time.Millisecond)
	})
	_ = cen.EnableEdgeInterrupt()

	// Two separated low pulses.
	for i := 0; i < 2; i++ {
		_ = per.SetLevel(false)
		per.Wait(100 * time.Microsecond)
		_ = per.SetLevel(true)
		per.Wait(2 * time.Millisecond)
	}

	if n := line.Deliver(); n != 2 || fired != 2 {
		t.Errorf("Deliver() = %d (callback fired %d), want 2", n, fired)
	}

	// No edges remain.
	if n := line.Deliver(); n != 0 {
		t.Errorf("second Deliver() = %d, want 0", n)
	}
}

func TestDeliverRespectsDisabledInterrupt(t *testing.T) {
	line := NewLine()
	per := line.Peripheral()
	cen := line.Central()

	fired := 0
	_ = cen.SetEdgeCallback(func() { fired++ })

	_ = per.SetLevel(false)
	per.Wait(100 * time.Microsecond)
	_ = per.SetLevel(true)

	if n := line.Deliver(); n != 0 || fired != 0 {
		t.Errorf("Deliver() with disarmed interrupt = %d (fired %d), want 0", n, fired)
	}
}

func TestSampleFaultInjection(t *testing.T) {
	line := NewLine()
	cen := line.Central()

	line.FailSample(1)

	if _, err := cen.ReadLevel(); err != nil {
		t.Errorf("sample 0: unexpected error %v", err)
	}
	if _, err := cen.ReadLevel(); err != ErrReadFault {
		t.Errorf("sample 1: error = %v, want ErrReadFault", err)
	}
	if _, err := cen.ReadLevel(); err != nil {
		t.Errorf("sample 2: unexpected error %v", err)
	}
	if got := line.Samples(); got != 3 {
		t.Errorf("Samples() = %d, want 3", got)
	}
}
