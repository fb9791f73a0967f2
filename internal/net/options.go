package net

import (
	mathrand "math/rand/v2"

	"golang.org/x/exp/rand"
)

// Option configures a Network at construction.
type Option func(*options)

type options struct {
	src rand.Source
}

// WithSource sets the random source used to initialize weights and biases.
func WithSource(src rand.Source) Option {
	return func(o *options) {
		o.src = src
	}
}

// WithSeed initializes weights and biases from a PCG source with the given
// seed, making construction reproducible.
func WithSeed(seed uint64) Option {
	return WithSource(rand.NewSource(seed))
}

// entropySource seeds a PCG generator from the runtime's OS-seeded generator.
func entropySource() rand.Source {
	return rand.NewSource(mathrand.Uint64())
}
