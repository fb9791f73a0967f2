// Package net provides the single-hidden-layer network and the training
// machinery around it.
package net

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/FlavioCFOliveira/GoTinn/internal/activations"
	"github.com/FlavioCFOliveira/GoTinn/internal/loss"
	"github.com/FlavioCFOliveira/GoTinn/internal/opt"
)

// Initial weights and biases are drawn from [initLow, initHigh).
const (
	initLow  = -0.5
	initHigh = 0.5
)

// Network is a fully connected input -> hidden -> output network with
// sigmoid activations and one shared bias per layer.
//
// A Network is not safe for concurrent use.
type Network struct {
	nips, nhid, nops int

	// w[h][i] connects input i to hidden unit h.
	w *mat.Dense
	// x[o][h] connects hidden unit h to output o.
	x *mat.Dense
	// b[0] is added to every hidden pre-activation, b[1] to every output.
	b [2]float64

	// in holds a copy of the input of the last Forward call.
	in *mat.VecDense
	h  *mat.VecDense
	o  *mat.VecDense

	// Pre-allocated backward buffers
	delta  *mat.VecDense
	errSig *mat.VecDense
	gradW  *mat.Dense
	gradX  *mat.Dense

	// generation counts forward and backward passes; a Pass is only valid
	// while its generation matches.
	generation uint64

	act  activations.Sigmoid
	loss loss.HalfSSE
}

// New creates a network with nips inputs, nhid hidden units and nops outputs.
// Every weight and both biases are drawn independently from [-0.5, 0.5).
// Without WithSource or WithSeed the generator is seeded from OS entropy, so
// two networks built with the same sizes differ.
func New(nips, nhid, nops int, opts ...Option) (*Network, error) {
	if nips <= 0 || nhid <= 0 || nops <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension,
			"inputs=%d hidden=%d outputs=%d, all must be positive", nips, nhid, nops)
	}

	var o options
	for _, apply := range opts {
		apply(&o)
	}
	if o.src == nil {
		o.src = entropySource()
	}

	n := &Network{
		nips:   nips,
		nhid:   nhid,
		nops:   nops,
		w:      mat.NewDense(nhid, nips, nil),
		x:      mat.NewDense(nops, nhid, nil),
		in:     mat.NewVecDense(nips, nil),
		h:      mat.NewVecDense(nhid, nil),
		o:      mat.NewVecDense(nops, nil),
		delta:  mat.NewVecDense(nops, nil),
		errSig: mat.NewVecDense(nhid, nil),
		gradW:  mat.NewDense(nhid, nips, nil),
		gradX:  mat.NewDense(nops, nhid, nil),
	}
	n.randomize(distuv.Uniform{Min: initLow, Max: initHigh, Src: o.src})
	return n, nil
}

func (n *Network) randomize(u distuv.Uniform) {
	for _, m := range []*mat.Dense{n.w, n.x} {
		raw := m.RawMatrix().Data
		for i := range raw {
			raw[i] = u.Rand()
		}
	}
	for i := range n.b {
		n.b[i] = u.Rand()
	}
}

// Dims returns the input, hidden and output layer sizes.
func (n *Network) Dims() (nips, nhid, nops int) {
	return n.nips, n.nhid, n.nops
}

// Pass is the result of one Forward call. Backward consumes it, which ties
// the gradient step to the activations it was computed from.
type Pass struct {
	net        *Network
	generation uint64
}

// Valid reports whether the pass still describes its network's activation
// buffers.
func (p *Pass) Valid() bool {
	return p != nil && p.net != nil && p.generation == p.net.generation
}

// Hidden returns a copy of the hidden activations of this pass, or nil if
// the pass is no longer valid.
func (p *Pass) Hidden() []float64 {
	if !p.Valid() {
		return nil
	}
	return p.net.HiddenActivations()
}

// Output returns a copy of the output activations of this pass, or nil if
// the pass is no longer valid.
func (p *Pass) Output() []float64 {
	if !p.Valid() {
		return nil
	}
	return p.net.OutputActivations()
}

// Forward computes hidden = sigmoid(W·input + b0) and
// output = sigmoid(X·hidden + b1), storing both in the network's activation
// buffers. input is copied, so the caller may reuse it before Backward.
// Weights and biases are not modified.
func (n *Network) Forward(input []float64) (*Pass, error) {
	if err := n.checkInput(input); err != nil {
		return nil, err
	}

	copy(n.in.RawVector().Data, input)
	n.h.MulVec(n.w, n.in)
	n.activate(n.h, n.b[0])
	n.o.MulVec(n.x, n.h)
	n.activate(n.o, n.b[1])

	n.generation++
	return &Pass{net: n, generation: n.generation}, nil
}

func (n *Network) activate(v *mat.VecDense, bias float64) {
	raw := v.RawVector().Data
	for i := range raw {
		raw[i] += bias
	}
	n.act.ActivateInPlace(raw)
}

// Backward performs one gradient-descent step for target using the
// activations recorded by p. Every gradient term is computed from the
// weights as they were before this step. Biases are not learned.
//
// After a successful call p is consumed and cannot be used again.
func (n *Network) Backward(p *Pass, target []float64, rate float64) error {
	if p == nil || p.net != n || !p.Valid() {
		return errors.WithStack(ErrStalePass)
	}
	if err := n.checkTarget(target); err != nil {
		return err
	}
	if err := checkRate(rate); err != nil {
		return err
	}

	n.backward(target, rate)
	n.generation++
	return nil
}

func (n *Network) backward(target []float64, rate float64) {
	out := n.o.RawVector().Data
	hid := n.h.RawVector().Data

	// delta[o] = dE/d(pre-activation of output o)
	delta := n.delta.RawVector().Data
	n.loss.BackwardInPlace(out, target, delta)
	for o := range delta {
		delta[o] *= n.act.DerivativeFromOutput(out[o])
	}

	// errSig[h] = sum_o delta[o] * x[o][h], from the pre-update x.
	n.errSig.MulVec(n.x.T(), n.delta)
	sig := n.errSig.RawVector().Data
	for h := range sig {
		sig[h] *= n.act.DerivativeFromOutput(hid[h])
	}

	n.gradX.Outer(1, n.delta, n.h)
	n.gradW.Outer(1, n.errSig, n.in)

	sgd := opt.SGD{LearningRate: rate}
	sgd.StepInPlace(n.x.RawMatrix().Data, n.gradX.RawMatrix().Data)
	sgd.StepInPlace(n.w.RawMatrix().Data, n.gradW.RawMatrix().Data)
}

// Error returns 0.5 * sum((target - output)^2) over the current output
// activations.
func (n *Network) Error(target []float64) (float64, error) {
	if err := n.checkTarget(target); err != nil {
		return 0, err
	}
	return n.loss.Forward(n.o.RawVector().Data, target), nil
}

// Train runs Forward, Backward and Error for one sample and returns the
// error of the outputs computed before the update. Arguments are validated
// up front so a failed call changes nothing.
func (n *Network) Train(input, target []float64, rate float64) (float64, error) {
	if err := n.checkInput(input); err != nil {
		return 0, err
	}
	if err := n.checkTarget(target); err != nil {
		return 0, err
	}
	if err := checkRate(rate); err != nil {
		return 0, err
	}

	p, err := n.Forward(input)
	if err != nil {
		return 0, err
	}
	if err := n.Backward(p, target, rate); err != nil {
		return 0, err
	}
	return n.Error(target)
}

// Predict runs Forward and returns a copy of the output activations.
func (n *Network) Predict(input []float64) ([]float64, error) {
	if _, err := n.Forward(input); err != nil {
		return nil, err
	}
	return n.OutputActivations(), nil
}

// HiddenActivations returns a copy of the hidden activations of the last
// Forward call.
func (n *Network) HiddenActivations() []float64 {
	return append([]float64(nil), n.h.RawVector().Data...)
}

// OutputActivations returns a copy of the output activations of the last
// Forward call.
func (n *Network) OutputActivations() []float64 {
	return append([]float64(nil), n.o.RawVector().Data...)
}

// InputHiddenWeight returns the weight from input i to hidden unit h.
func (n *Network) InputHiddenWeight(h, i int) float64 {
	return n.w.At(h, i)
}

// SetInputHiddenWeight sets the weight from input i to hidden unit h.
func (n *Network) SetInputHiddenWeight(h, i int, v float64) {
	n.w.Set(h, i, v)
}

// HiddenOutputWeight returns the weight from hidden unit h to output o.
func (n *Network) HiddenOutputWeight(o, h int) float64 {
	return n.x.At(o, h)
}

// SetHiddenOutputWeight sets the weight from hidden unit h to output o.
func (n *Network) SetHiddenOutputWeight(o, h int, v float64) {
	n.x.Set(o, h, v)
}

// Bias returns the shared bias of layer 0 (hidden) or 1 (output).
func (n *Network) Bias(layer int) float64 {
	return n.b[layer]
}

// SetBias sets the shared bias of layer 0 (hidden) or 1 (output).
func (n *Network) SetBias(layer int, v float64) {
	n.b[layer] = v
}

// NumParams returns the number of values returned by Params.
func (n *Network) NumParams() int {
	return n.nhid*n.nips + n.nops*n.nhid + len(n.b)
}

// Params returns a copy of all parameters laid out as
// [input->hidden weights (row-major), hidden->output weights (row-major), b0, b1].
func (n *Network) Params() []float64 {
	params := make([]float64, 0, n.NumParams())
	params = append(params, n.w.RawMatrix().Data...)
	params = append(params, n.x.RawMatrix().Data...)
	params = append(params, n.b[:]...)
	return params
}

// SetParams replaces all parameters from a slice laid out as Params returns.
func (n *Network) SetParams(params []float64) error {
	if len(params) != n.NumParams() {
		return errors.Wrapf(ErrDimensionMismatch,
			"got %d parameters, network has %d", len(params), n.NumParams())
	}
	nw := n.nhid * n.nips
	nx := n.nops * n.nhid
	copy(n.w.RawMatrix().Data, params[:nw])
	copy(n.x.RawMatrix().Data, params[nw:nw+nx])
	copy(n.b[:], params[nw+nx:])
	return nil
}

func (n *Network) checkInput(input []float64) error {
	if len(input) != n.nips {
		return errors.Wrapf(ErrDimensionMismatch,
			"input has %d values, network expects %d", len(input), n.nips)
	}
	return nil
}

func (n *Network) checkTarget(target []float64) error {
	if len(target) != n.nops {
		return errors.Wrapf(ErrDimensionMismatch,
			"target has %d values, network expects %d", len(target), n.nops)
	}
	return nil
}

func checkRate(rate float64) error {
	if !(rate > 0) || math.IsInf(rate, 1) {
		return errors.Wrapf(ErrInvalidRate, "rate %v", rate)
	}
	return nil
}
