package opt

// Scheduler produces the learning rate for the current epoch and advances
// once per epoch.
type Scheduler interface {
	Step()
	LR() float64
}

// Constant keeps the learning rate fixed.
type Constant struct {
	Rate float64
}

func (c Constant) Step() {}

func (c Constant) LR() float64 { return c.Rate }

// StepLR decays the learning rate by gamma every stepSize epochs.
type StepLR struct {
	lr        float64
	stepSize  int
	gamma     float64
	lastEpoch int
}

func NewStepLR(initialLR float64, stepSize int, gamma float64) *StepLR {
	if stepSize <= 0 {
		stepSize = 1
	}
	return &StepLR{
		lr:       initialLR,
		stepSize: stepSize,
		gamma:    gamma,
	}
}

func (s *StepLR) Step() {
	s.lastEpoch++
	if s.lastEpoch%s.stepSize == 0 {
		s.lr *= s.gamma
	}
}

func (s *StepLR) LR() float64 {
	return s.lr
}

// ExponentialLR anneals the learning rate by gamma every epoch.
type ExponentialLR struct {
	lr    float64
	gamma float64
}

// NewExponentialLR returns a schedule starting at initialLR. The classic
// Semeion trainer uses NewExponentialLR(1.0, 0.99).
func NewExponentialLR(initialLR, gamma float64) *ExponentialLR {
	return &ExponentialLR{
		lr:    initialLR,
		gamma: gamma,
	}
}

func (s *ExponentialLR) Step() {
	s.lr *= s.gamma
}

func (s *ExponentialLR) LR() float64 {
	return s.lr
}
