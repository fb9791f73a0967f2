// Package opt provides the gradient-descent update and learning-rate schedules.
package opt

// SGD (Stochastic Gradient Descent) optimizer.
type SGD struct {
	LearningRate float64
}

// StepInPlace updates params in-place: params = params - lr * gradients
// This avoids allocations for better performance
func (s SGD) StepInPlace(params, gradients []float64) {
	if len(params) != len(gradients) {
		panic("SGD: params and gradients must have same length")
	}
	for i := range params {
		params[i] -= s.LearningRate * gradients[i]
	}
}
