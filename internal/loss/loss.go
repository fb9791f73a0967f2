// Package loss provides the half sum-of-squared-error loss.
package loss

// HalfSSE is 0.5 * sum((y_true - y_pred)^2). Its gradient with respect to the
// prediction is exactly (y_pred - y_true), with no 2/n factor.
type HalfSSE struct{}

// Forward computes 0.5 * sum((y_true - y_pred)^2)
func (HalfSSE) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("HalfSSE: prediction and target must have same length")
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue[i] - yPred[i]
		sum += 0.5 * diff * diff
	}
	return sum
}

// BackwardInPlace stores the gradient dL/dy_pred = y_pred - y_true in grad.
func (HalfSSE) BackwardInPlace(yPred, yTrue, grad []float64) {
	n := len(yPred)
	if n != len(yTrue) || n != len(grad) {
		panic("HalfSSE: slices must have same length")
	}

	for i := 0; i < n; i++ {
		grad[i] = yPred[i] - yTrue[i]
	}
}
