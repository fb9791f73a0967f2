package net

import (
	"log"
	"math"
)

// Callback defines the interface for training callbacks.
type Callback interface {
	OnTrainBegin(n *Network)
	OnTrainEnd(n *Network)
	OnEpochEnd(stats EpochStats, n *Network)
}

// Stopper is implemented by callbacks that can end training early.
type Stopper interface {
	Stop() bool
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(n *Network) {}

func (c BaseCallback) OnTrainEnd(n *Network) {}

func (c BaseCallback) OnEpochEnd(stats EpochStats, n *Network) {}

// EarlyStopping stops training when the mean epoch error has stopped improving.
// A Patience of zero or less disables it.
type EarlyStopping struct {
	BaseCallback
	Patience  int
	Threshold float64

	bestLoss     float64
	numBadEpochs int
	Stopped      bool
	Out          *log.Logger
}

func NewEarlyStopping(patience int, threshold float64) *EarlyStopping {
	return &EarlyStopping{
		Patience:  patience,
		Threshold: threshold,
		bestLoss:  math.MaxFloat64,
		Out:       log.Default(),
	}
}

func (c *EarlyStopping) OnEpochEnd(stats EpochStats, n *Network) {
	if c.Patience <= 0 {
		return
	}
	if stats.MeanError < c.bestLoss-c.Threshold {
		c.bestLoss = stats.MeanError
		c.numBadEpochs = 0
	} else {
		c.numBadEpochs++
	}

	if c.numBadEpochs >= c.Patience {
		if !c.Stopped && c.Out != nil {
			c.Out.Printf("early stopping at epoch %d: error %.6f did not improve for %d epochs",
				stats.Epoch, stats.MeanError, c.Patience)
		}
		c.Stopped = true
	}
}

// Stop reports whether patience has run out.
func (c *EarlyStopping) Stop() bool {
	return c.Stopped
}

// Logger logs training progress.
type Logger struct {
	BaseCallback
	Interval int
	Out      *log.Logger
}

// NewLogger logs every interval epochs to l, or to the standard logger if
// l is nil.
func NewLogger(l *log.Logger, interval int) Logger {
	if l == nil {
		l = log.Default()
	}
	return Logger{Interval: interval, Out: l}
}

func (c Logger) OnEpochEnd(stats EpochStats, n *Network) {
	if c.Interval > 0 && stats.Epoch%c.Interval == 0 {
		c.Out.Printf("error %.12f :: learning rate %.6f", stats.MeanError, stats.Rate)
	}
}
