package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config holds the trainer configuration.
type Config struct {
	DataPath  string
	Format    string
	LabelCols []int
	Header    bool
	Normalize bool

	Inputs  int
	Hidden  int
	Outputs int

	Epochs   int
	Rate     float64
	Anneal   float64
	StepSize int
	Seed     uint64
	Holdout  float64
	Patience int
	LogEvery int

	Sample int
	CSV    string
	PNG    string
	ASCII  bool
}

// Validate checks the configuration before any data is read.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("data path must be set")
	}
	switch c.Format {
	case "semeion":
	case "csv":
		if len(c.LabelCols) != c.Outputs {
			return errors.Errorf("csv needs %d label columns, got %d", c.Outputs, len(c.LabelCols))
		}
	default:
		return errors.Errorf("unknown format %q, want semeion or csv", c.Format)
	}
	if c.Inputs <= 0 || c.Hidden <= 0 || c.Outputs <= 0 {
		return errors.Errorf("layer sizes must be positive, got %d-%d-%d", c.Inputs, c.Hidden, c.Outputs)
	}
	if c.Epochs <= 0 {
		return errors.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if !(c.Rate > 0) {
		return errors.Errorf("learning rate must be positive, got %v", c.Rate)
	}
	if !(c.Anneal > 0 && c.Anneal <= 1) {
		return errors.Errorf("anneal must be in (0, 1], got %v", c.Anneal)
	}
	if c.StepSize < 0 {
		return errors.Errorf("step size must not be negative, got %d", c.StepSize)
	}
	if c.Holdout < 0 || c.Holdout >= 1 {
		return errors.Errorf("holdout must be in [0, 1), got %v", c.Holdout)
	}
	if c.Patience < 0 {
		return errors.Errorf("patience must not be negative, got %d", c.Patience)
	}
	if c.Sample < 0 {
		return errors.Errorf("sample index must not be negative, got %d", c.Sample)
	}
	return nil
}

// parseColumns parses a comma separated list of column indices.
func parseColumns(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	cols := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "label column %d", i)
		}
		cols[i] = n
	}
	return cols, nil
}
