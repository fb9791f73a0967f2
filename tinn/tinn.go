// Package tinn is the public entry point: a tiny three-layer sigmoid
// network trained by online gradient descent.
package tinn

import (
	"io"

	"golang.org/x/exp/rand"

	"github.com/FlavioCFOliveira/GoTinn/internal/net"
	"github.com/FlavioCFOliveira/GoTinn/internal/opt"
)

// Re-export common types for easier access
type (
	Network    = net.Network
	Pass       = net.Pass
	Option     = net.Option
	Dataset    = net.Dataset
	Trainer    = net.Trainer
	EpochStats = net.EpochStats
	Callback   = net.Callback
	Scheduler  = opt.Scheduler
)

// Errors
var (
	ErrInvalidDimension  = net.ErrInvalidDimension
	ErrDimensionMismatch = net.ErrDimensionMismatch
	ErrStalePass         = net.ErrStalePass
	ErrInvalidRate       = net.ErrInvalidRate
)

// New builds a network with nips inputs, nhid hidden units and nops outputs.
func New(nips, nhid, nops int, opts ...Option) (*Network, error) {
	return net.New(nips, nhid, nops, opts...)
}

func WithSeed(seed uint64) Option {
	return net.WithSeed(seed)
}

func WithSource(src rand.Source) Option {
	return net.WithSource(src)
}

// Data loading
func LoadSemeion(r io.Reader, nips, nops int) (*Dataset, error) {
	return net.LoadSemeion(r, nips, nops)
}

func LoadSemeionFile(path string, nips, nops int) (*Dataset, error) {
	return net.LoadSemeionFile(path, nips, nops)
}

// Anneal returns a schedule starting at rate and multiplied by gamma after
// every epoch.
func Anneal(rate, gamma float64) Scheduler {
	return opt.NewExponentialLR(rate, gamma)
}

// Evaluate returns the mean error and argmax accuracy of n over d.
func Evaluate(n *Network, d *Dataset) (meanError, accuracy float64, err error) {
	return net.Evaluate(n, d)
}
