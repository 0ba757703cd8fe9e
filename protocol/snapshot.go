package protocol

// Snapshot is the full bitmap of key-position states at one role, at one
// point in time. Bit j of byte i represents position i*8+j; 1 means
// pressed. The byte-major, bit-minor, LSB-first layout is fixed protocol
// convention and identical on both sides of the line.
//
// Each role owns an independent snapshot; the two converge only via
// transmitted frames. Set, Clear and Pressed assume the position has been
// bounds-checked by the caller.
type Snapshot []byte

// NewSnapshot returns an all-released snapshot with the given capacity in bytes.
func NewSnapshot(capacity int) Snapshot {
	return make(Snapshot, capacity)
}

func (s Snapshot) Set(position int) {
	s[position/8] |= 1 << (position % 8)
}

func (s Snapshot) Clear(position int) {
	s[position/8] &^= 1 << (position % 8)
}

func (s Snapshot) Pressed(position int) bool {
	return s[position/8]&(1<<(position%8)) != 0
}

// Positions returns the number of logical positions the snapshot can carry.
func (s Snapshot) Positions() int {
	return len(s) * 8
}

func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// Diff returns the changed-position bitmap between s and next: the bitwise
// XOR of the two byte sequences. A set bit marks a position whose state
// differs. Both snapshots must share the same capacity.
func (s Snapshot) Diff(next Snapshot) Snapshot {
	changed := make(Snapshot, len(s))
	for i := range s {
		changed[i] = s[i] ^ next[i]
	}
	return changed
}
