package transport

import (
	"fmt"

	"github.com/careyk007/splitwire/protocol"
	"github.com/rs/zerolog"
)

// Config holds the per-role protocol configuration. Use DefaultConfig() to
// get a Config with the standard values; both sides of a link must agree on
// Capacity.
type Config struct {
	// Capacity is the snapshot size in bytes. Each byte carries eight key
	// positions. Both roles on a link must use the same value.
	Capacity int

	// NumPositions bounds the valid position indices. Zero means the full
	// 8*Capacity range.
	NumPositions int

	// Logger receives diagnostic events. The protocol surfaces no errors
	// beyond configuration; read faults and rejected frames are visible
	// here only.
	Logger zerolog.Logger
}

// DefaultConfig returns a Config matching the standard wire parameters:
// 16 snapshot bytes, 128 positions, no logging.
func DefaultConfig() Config {
	return Config{
		Capacity: protocol.DefaultSnapshotSize,
		Logger:   zerolog.Nop(),
	}
}

func (c *Config) Validate() error {
	if c.Capacity < 1 || c.Capacity > protocol.MaxPayloadSize {
		return fmt.Errorf("%w: %d", protocol.ErrInvalidCapacity, c.Capacity)
	}
	if c.NumPositions < 0 || c.NumPositions > c.Capacity*8 {
		return fmt.Errorf("num positions %d does not fit %d snapshot bytes", c.NumPositions, c.Capacity)
	}
	return nil
}

// normalise fills zero values with their defaults. Validate first.
func (c *Config) normalise() {
	if c.NumPositions == 0 {
		c.NumPositions = c.Capacity * 8
	}
}
