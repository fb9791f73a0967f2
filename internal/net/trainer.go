package net

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/FlavioCFOliveira/GoTinn/internal/opt"
)

// Default annealing used when a Trainer has no Scheduler.
const (
	DefaultRate   = 1.0
	DefaultAnneal = 0.99
)

// EpochStats summarizes one training epoch.
type EpochStats struct {
	Epoch int
	// MeanError and StdDevError are over the per-sample errors of the epoch.
	MeanError   float64
	StdDevError float64
	// Rate is the learning rate the epoch was trained with.
	Rate float64
}

// Trainer runs online gradient descent over a dataset for a number of
// epochs, one Network.Train call per sample.
type Trainer struct {
	Net       *Network
	Scheduler opt.Scheduler
	Epochs    int
	// Rand shuffles the dataset before every epoch. Nil keeps the order.
	Rand      *rand.Rand
	Callbacks []Callback
}

// Fit trains on d and returns the statistics of every completed epoch.
// d is shuffled in place when t.Rand is set.
func (t *Trainer) Fit(d *Dataset) ([]EpochStats, error) {
	if t.Net == nil {
		return nil, errors.New("trainer has no network")
	}
	if d == nil {
		return nil, errors.New("dataset is nil")
	}
	if t.Epochs <= 0 {
		return nil, errors.Errorf("epochs must be positive, got %d", t.Epochs)
	}
	if d.Len() == 0 {
		return nil, errors.New("dataset is empty")
	}
	nips, _, nops := t.Net.Dims()
	if err := d.Validate(nips, nops); err != nil {
		return nil, errors.Wrap(err, "validating dataset")
	}
	if t.Scheduler == nil {
		t.Scheduler = opt.NewExponentialLR(DefaultRate, DefaultAnneal)
	}

	for _, c := range t.Callbacks {
		c.OnTrainBegin(t.Net)
	}
	defer func() {
		for _, c := range t.Callbacks {
			c.OnTrainEnd(t.Net)
		}
	}()

	history := make([]EpochStats, 0, t.Epochs)
	errs := make([]float64, d.Len())
	for epoch := 0; epoch < t.Epochs; epoch++ {
		if t.Rand != nil {
			d.Shuffle(t.Rand)
		}

		rate := t.Scheduler.LR()
		for i := range d.Samples {
			e, err := t.Net.Train(d.Samples[i], d.Labels[i], rate)
			if err != nil {
				return history, errors.Wrapf(err, "epoch %d, sample %d", epoch, i)
			}
			errs[i] = e
		}

		mean, std := stat.MeanStdDev(errs, nil)
		if len(errs) == 1 {
			std = 0
		}
		stats := EpochStats{Epoch: epoch, MeanError: mean, StdDevError: std, Rate: rate}
		history = append(history, stats)

		for _, c := range t.Callbacks {
			c.OnEpochEnd(stats, t.Net)
		}
		t.Scheduler.Step()

		if t.stopped() {
			break
		}
	}
	return history, nil
}

func (t *Trainer) stopped() bool {
	for _, c := range t.Callbacks {
		if s, ok := c.(Stopper); ok && s.Stop() {
			return true
		}
	}
	return false
}

// Evaluate predicts every sample of d and returns the mean error and the
// fraction of samples whose largest output matches the largest target.
// Parameters are not modified.
func Evaluate(n *Network, d *Dataset) (meanError, accuracy float64, err error) {
	if d.Len() == 0 {
		return 0, 0, errors.New("dataset is empty")
	}

	correct := 0
	var total float64
	for i := range d.Samples {
		pred, err := n.Predict(d.Samples[i])
		if err != nil {
			return 0, 0, errors.Wrapf(err, "sample %d", i)
		}
		e, err := n.Error(d.Labels[i])
		if err != nil {
			return 0, 0, errors.Wrapf(err, "sample %d", i)
		}
		total += e
		if floats.MaxIdx(pred) == floats.MaxIdx(d.Labels[i]) {
			correct++
		}
	}
	count := float64(d.Len())
	return total / count, float64(correct) / count, nil
}
