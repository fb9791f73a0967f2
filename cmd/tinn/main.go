// tinn: trains a single hidden layer network on the Semeion handwritten
// digit data set and predicts one sample.
//
// Usage:
//
//	tinn -data=semeion.data -epochs=100 -rate=1.0 -anneal=0.99
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	mathrand "math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/FlavioCFOliveira/GoTinn/internal/net"
	"github.com/FlavioCFOliveira/GoTinn/internal/opt"
	"github.com/FlavioCFOliveira/GoTinn/internal/viz"
)

var (
	dataPath  = flag.String("data", "semeion.data", "Training data file")
	format    = flag.String("format", "semeion", "Data format: semeion, csv")
	labelCols = flag.String("labels", "", "Comma separated label columns (csv only)")
	header    = flag.Bool("header", false, "Skip the first csv line")
	normalize = flag.Bool("normalize", false, "Min-max normalize inputs")
	inputs    = flag.Int("inputs", 256, "Number of inputs")
	hidden    = flag.Int("hidden", 28, "Number of hidden units")
	outputs   = flag.Int("outputs", 10, "Number of outputs")
	epochs    = flag.Int("epochs", 100, "Number of training epochs")
	rate      = flag.Float64("rate", 1.0, "Initial learning rate")
	anneal    = flag.Float64("anneal", 0.99, "Learning rate multiplier")
	stepSize  = flag.Int("step-size", 0, "Apply -anneal every n epochs, 0 anneals every epoch")
	seed      = flag.Uint64("seed", 0, "Random seed, 0 seeds from entropy")
	holdout   = flag.Float64("holdout", 0, "Fraction of samples held out for evaluation")
	patience  = flag.Int("patience", 0, "Stop after this many epochs without improvement, 0 disables")
	logEvery  = flag.Int("log-every", 1, "Log every n epochs")
	sample    = flag.Int("sample", 5, "Index of the sample to predict after training")
	csvPath   = flag.String("csv", "", "Per-epoch CSV log file")
	pngPath   = flag.String("png", "", "Write the predicted sample as PNG")
	ascii     = flag.Bool("ascii", false, "Print the predicted sample as text")
)

func main() {
	flag.Parse()

	cols, err := parseColumns(*labelCols)
	if err != nil {
		log.Fatalf("invalid -labels: %v", err)
	}
	cfg := &Config{
		DataPath:  *dataPath,
		Format:    *format,
		LabelCols: cols,
		Header:    *header,
		Normalize: *normalize,
		Inputs:    *inputs,
		Hidden:    *hidden,
		Outputs:   *outputs,
		Epochs:    *epochs,
		Rate:      *rate,
		Anneal:    *anneal,
		StepSize:  *stepSize,
		Seed:      *seed,
		Holdout:   *holdout,
		Patience:  *patience,
		LogEvery:  *logEvery,
		Sample:    *sample,
		CSV:       *csvPath,
		PNG:       *pngPath,
		ASCII:     *ascii,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(cfg *Config) error {
	data, err := load(cfg)
	if err != nil {
		return err
	}
	if cfg.Sample >= data.Len() {
		return errors.Errorf("sample %d out of range, data has %d samples", cfg.Sample, data.Len())
	}

	opts, r := randomness(cfg.Seed)
	n, err := net.New(cfg.Inputs, cfg.Hidden, cfg.Outputs, opts...)
	if err != nil {
		return err
	}

	// The sample index refers to the file order, so pick it before shuffling.
	input := append([]float64(nil), data.Samples[cfg.Sample]...)
	target := append([]float64(nil), data.Labels[cfg.Sample]...)

	train, test := data, &net.Dataset{}
	if cfg.Holdout > 0 {
		data.Shuffle(r)
		train, test = data.Split(1 - cfg.Holdout)
	}

	out := log.New(os.Stdout, "", 0)
	callbacks := []net.Callback{net.NewLogger(out, cfg.LogEvery)}
	if cfg.CSV != "" {
		csvLogger := net.NewCSVLogger(cfg.CSV, false)
		csvLogger.Out = out
		callbacks = append(callbacks, csvLogger)
	}
	if cfg.Patience > 0 {
		es := net.NewEarlyStopping(cfg.Patience, 0)
		es.Out = out
		callbacks = append(callbacks, es)
	}

	trainer := &net.Trainer{
		Net:       n,
		Scheduler: newScheduler(cfg),
		Epochs:    cfg.Epochs,
		Rand:      r,
		Callbacks: callbacks,
	}
	start := time.Now()
	if _, err := trainer.Fit(train); err != nil {
		return errors.Wrap(err, "training")
	}
	fmt.Println("Done training.")
	fmt.Printf("Training time: %.2fs\n", time.Since(start).Seconds())

	pred, err := n.Predict(input)
	if err != nil {
		return err
	}
	printPrediction(os.Stdout, target, pred)

	trainErr, trainAcc, err := net.Evaluate(n, train)
	if err != nil {
		return err
	}
	fmt.Printf("Train: error %.6f, accuracy %.2f%%\n", trainErr, trainAcc*100)
	if test.Len() > 0 {
		testErr, testAcc, err := net.Evaluate(n, test)
		if err != nil {
			return err
		}
		fmt.Printf("Holdout: error %.6f, accuracy %.2f%%\n", testErr, testAcc*100)
	}

	return render(cfg, input)
}

func load(cfg *Config) (*net.Dataset, error) {
	var (
		d   *net.Dataset
		err error
	)
	switch cfg.Format {
	case "csv":
		d, err = net.LoadCSV(cfg.DataPath, cfg.LabelCols, cfg.Header)
	default:
		d, err = net.LoadSemeionFile(cfg.DataPath, cfg.Inputs, cfg.Outputs)
	}
	if err != nil {
		return nil, err
	}
	if err := d.Validate(cfg.Inputs, cfg.Outputs); err != nil {
		return nil, err
	}
	if cfg.Normalize {
		d.Normalize()
	}
	return d, nil
}

func render(cfg *Config, input []float64) error {
	if cfg.PNG == "" && !cfg.ASCII {
		return nil
	}
	if len(input) != viz.Side*viz.Side {
		log.Printf("skipping rendering: sample has %d values, not %dx%d", len(input), viz.Side, viz.Side)
		return nil
	}

	if cfg.ASCII {
		s, err := viz.ASCII(input, viz.Side, viz.Side)
		if err != nil {
			return err
		}
		fmt.Print(s)
	}
	if cfg.PNG != "" {
		f, err := os.Create(cfg.PNG)
		if err != nil {
			return errors.Wrap(err, "creating png")
		}
		defer f.Close()
		if err := viz.WritePNG(f, input, viz.Side, viz.Side); err != nil {
			return err
		}
		fmt.Printf("Sample written to %s\n", cfg.PNG)
	}
	return nil
}

// randomness returns the network options and the shuffling generator for
// seed. Seed 0 leaves both to OS entropy.
func randomness(seed uint64) ([]net.Option, *rand.Rand) {
	if seed == 0 {
		return nil, rand.New(rand.NewSource(mathrand.Uint64()))
	}
	return []net.Option{net.WithSeed(seed)}, rand.New(rand.NewSource(seed + 1))
}

func newScheduler(cfg *Config) opt.Scheduler {
	if cfg.StepSize > 0 {
		return opt.NewStepLR(cfg.Rate, cfg.StepSize, cfg.Anneal)
	}
	return opt.NewExponentialLR(cfg.Rate, cfg.Anneal)
}

func printPrediction(w io.Writer, target, pred []float64) {
	fmt.Fprintf(w, "Expected:  %s\n", formatVector(target))
	fmt.Fprintf(w, "Predicted: %s\n", formatVector(pred))
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%f", x)
	}
	return strings.Join(parts, " ")
}
