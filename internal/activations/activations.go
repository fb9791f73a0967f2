// Package activations provides the logistic activation used by both network layers.
package activations

import "math"

// Sigmoid is the logistic function 1 / (1 + e^-x).
type Sigmoid struct{}

// sigmoid computes the sigmoid function
// Inline for performance
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Activate computes sigmoid(x)
func (s Sigmoid) Activate(x float64) float64 {
	return sigmoid(x)
}

// DerivativeFromOutput computes sigmoid'(x) = a * (1 - a) given an already
// activated value a = sigmoid(x).
func (s Sigmoid) DerivativeFromOutput(a float64) float64 {
	return a * (1 - a)
}

// ActivateInPlace replaces every element of x with sigmoid(x).
func (s Sigmoid) ActivateInPlace(x []float64) {
	for i, v := range x {
		x[i] = s.Activate(v)
	}
}
