// Package activations provides benchmarks for activation functions.
package activations

import (
	"testing"

	"golang.org/x/exp/rand"
)

// fillRandom fills a slice with random values.
func fillRandom(slice []float64) {
	r := rand.New(rand.NewSource(1))
	for i := range slice {
		slice[i] = r.Float64()*2 - 1
	}
}

// BenchmarkSigmoidActivate benchmarks the Sigmoid activation function.
func BenchmarkSigmoidActivate(b *testing.B) {
	sigmoid := Sigmoid{}
	inputs := make([]float64, 1000)
	fillRandom(inputs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, x := range inputs {
			sigmoid.Activate(x)
		}
	}
}

// BenchmarkSigmoidDerivativeFromOutput benchmarks the derivative used in backprop.
func BenchmarkSigmoidDerivativeFromOutput(b *testing.B) {
	sigmoid := Sigmoid{}
	inputs := make([]float64, 1000)
	fillRandom(inputs)
	sigmoid.ActivateInPlace(inputs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, a := range inputs {
			sigmoid.DerivativeFromOutput(a)
		}
	}
}
