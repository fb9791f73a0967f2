// Package activations provides unit tests for the sigmoid activation.
package activations

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
)

// derivative is sigmoid'(x) evaluated through the activated value.
func derivative(x float64) float64 {
	s := Sigmoid{}
	return s.DerivativeFromOutput(s.Activate(x))
}

// TestSigmoid tests Sigmoid activation.
func TestSigmoid(t *testing.T) {
	sigmoid := Sigmoid{}

	tests := []struct {
		input    float64
		expected float64
	}{
		{math.Inf(-1), 0.0}, // -inf -> 0
		{-2.0, 1 / (1 + math.Exp(2))},
		{-1.0, 1 / (1 + math.Exp(1))},
		{0.0, 0.5}, // Zero -> 0.5
		{0.6, 0.645656306225795},
		{1.0, 1 / (1 + math.Exp(-1))},
		{2.0, 1 / (1 + math.Exp(-2))},
		{math.Inf(1), 1.0}, // +inf -> 1
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, sigmoid.Activate(tt.input), 1e-12, "Sigmoid(%v)", tt.input)
	}
}

// TestSigmoidDerivative tests Sigmoid derivative.
func TestSigmoidDerivative(t *testing.T) {
	// At zero: sigmoid(0) = 0.5, derivative = 0.25
	assert.InDelta(t, 0.25, derivative(0.0), 1e-12)

	// Saturated regions flatten out
	assert.Less(t, derivative(10.0), 1e-4)
	assert.Less(t, derivative(-10.0), 1e-4)
}

// TestDerivativeFromOutputMatchesNumeric checks the closed form against a
// central finite difference of Activate.
func TestDerivativeFromOutputMatchesNumeric(t *testing.T) {
	sigmoid := Sigmoid{}

	for _, x := range []float64{-5, -1.5, -0.1, 0, 0.3, 2, 7} {
		numeric := fd.Derivative(sigmoid.Activate, x, &fd.Settings{Formula: fd.Central})
		assert.InDelta(t, numeric, derivative(x), 1e-8, "x=%v", x)
	}
}

// TestDerivativeBounds checks the derivative never leaves [0, 0.25].
func TestDerivativeBounds(t *testing.T) {
	for x := -20.0; x <= 20.0; x += 0.5 {
		d := derivative(x)
		assert.GreaterOrEqual(t, d, 0.0)
		assert.LessOrEqual(t, d, 0.25)
	}
}

// TestActivateInPlace tests the slice form.
func TestActivateInPlace(t *testing.T) {
	sigmoid := Sigmoid{}
	x := []float64{-1, 0, 1}

	sigmoid.ActivateInPlace(x)

	assert.InDelta(t, sigmoid.Activate(-1), x[0], 1e-15)
	assert.Equal(t, 0.5, x[1])
	assert.InDelta(t, sigmoid.Activate(1), x[2], 1e-15)
}

// TestActivationRange checks outputs stay inside (0, 1) for moderate inputs.
func TestActivationRange(t *testing.T) {
	sigmoid := Sigmoid{}

	for x := -30.0; x <= 30.0; x += 0.25 {
		a := sigmoid.Activate(x)
		assert.Greater(t, a, 0.0)
		assert.Less(t, a, 1.0)
	}
}
