package protocol

import "time"

// PositionEvent reports one key position changing state. A received frame
// produces zero or more events, one per changed bit, in byte-major,
// bit-minor order.
type PositionEvent struct {
	Position  int
	Pressed   bool
	Timestamp time.Time
}
