package protocol

import "errors"

var (
	ErrPositionOutOfRange = errors.New("position out of range")
	ErrLengthOverflow     = errors.New("frame length exceeds snapshot capacity")
	ErrInvalidCapacity    = errors.New("invalid snapshot capacity (valid range: 1-255)")
)
