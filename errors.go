package pckp

import "errors"

var (
	// ErrLengthMismatch indicates that profit and weight differ in length.
	ErrLengthMismatch = errors.New("pckp: profit and weight lengths differ")

	// ErrInvalidWeight indicates a negative, NaN or infinite weight.
	ErrInvalidWeight = errors.New("pckp: weight must be finite and non-negative")

	// ErrInvalidProfit indicates a NaN or infinite profit.
	ErrInvalidProfit = errors.New("pckp: profit must be finite")

	// ErrInvalidCapacity indicates a NaN or infinite capacity.
	ErrInvalidCapacity = errors.New("pckp: capacity must be finite")

	// ErrInvalidOption indicates an option value out of range.
	ErrInvalidOption = errors.New("pckp: invalid option")
)
