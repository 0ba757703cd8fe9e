package protocol

import (
	"bytes"
	"testing"
)

// The layout is byte-major, bit-minor, LSB-first: bit j of byte i is
// position i*8+j. Position 0 must land on bit 0 of byte 0, never bit 7.
func TestSnapshotBitLayout(t *testing.T) {
	tests := []struct {
		position  int
		wantByte  int
		wantValue byte
	}{
		{position: 0, wantByte: 0, wantValue: 0x01},
		{position: 5, wantByte: 0, wantValue: 0x20},
		{position: 7, wantByte: 0, wantValue: 0x80},
		{position: 8, wantByte: 1, wantValue: 0x01},
		{position: 9, wantByte: 1, wantValue: 0x02},
		{position: 127, wantByte: 15, wantValue: 0x80},
	}

	for _, tt := range tests {
		s := NewSnapshot(DefaultSnapshotSize)
		s.Set(tt.position)

		for i, b := range s {
			want := byte(0)
			if i == tt.wantByte {
				want = tt.wantValue
			}
			if b != want {
				t.Errorf("Set(%d): byte %d = %#02x, want %#02x", tt.position, i, b, want)
			}
		}
		if !s.Pressed(tt.position) {
			t.Errorf("Pressed(%d) = false after Set", tt.position)
		}
	}
}

func TestSnapshotSetClear(t *testing.T) {
	s := NewSnapshot(DefaultSnapshotSize)

	s.Set(42)
	s.Set(43)
	s.Clear(42)

	if s.Pressed(42) {
		t.Error("Pressed(42) = true after Clear")
	}
	if !s.Pressed(43) {
		t.Error("Pressed(43) = false, Clear(42) must not touch neighbouring bits")
	}
}

func TestSnapshotDiff(t *testing.T) {
	prev := NewSnapshot(DefaultSnapshotSize)
	prev.Set(5)
	prev.Set(100)

	next := NewSnapshot(DefaultSnapshotSize)
	next.Set(100)
	next.Set(101)

	changed := prev.Diff(next)

	wantChanged := []int{5, 101}
	for _, p := range wantChanged {
		if !changed.Pressed(p) {
			t.Errorf("Diff missing changed position %d", p)
		}
	}
	if changed.Pressed(100) {
		t.Error("Diff reports unchanged position 100")
	}

	if same := prev.Diff(prev.Clone()); !bytes.Equal(same, NewSnapshot(DefaultSnapshotSize)) {
		t.Errorf("Diff of identical snapshots = %#v, want all zero", same)
	}
}

func TestSnapshotClone(t *testing.T) {
	s := NewSnapshot(DefaultSnapshotSize)
	s.Set(3)

	c := s.Clone()
	c.Clear(3)
	c.Set(4)

	if !s.Pressed(3) || s.Pressed(4) {
		t.Error("mutating a clone must not affect the original")
	}
}

func TestSnapshotPositions(t *testing.T) {
	if got := NewSnapshot(DefaultSnapshotSize).Positions(); got != 128 {
		t.Errorf("Positions() = %d, want 128", got)
	}
	if got := NewSnapshot(4).Positions(); got != 32 {
		t.Errorf("Positions() = %d, want 32", got)
	}
}
