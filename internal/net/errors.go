package net

import "github.com/pkg/errors"

var (
	// ErrInvalidDimension is returned by New when a layer size is not positive.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrDimensionMismatch is returned when a vector's length disagrees with
	// the network's fixed layer sizes.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrStalePass is returned by Backward when the pass no longer describes
	// the network's activation buffers.
	ErrStalePass = errors.New("stale forward pass")

	// ErrInvalidRate is returned for a learning rate that is not a positive
	// finite number.
	ErrInvalidRate = errors.New("invalid learning rate")
)
