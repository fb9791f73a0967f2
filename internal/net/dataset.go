package net

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Dataset represents a collection of samples and labels.
type Dataset struct {
	Samples [][]float64
	Labels  [][]float64
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Samples)
}

// Validate checks that every sample has nips values and every label nops.
func (d *Dataset) Validate(nips, nops int) error {
	if len(d.Samples) != len(d.Labels) {
		return errors.Errorf("dataset has %d samples but %d labels", len(d.Samples), len(d.Labels))
	}
	for i := range d.Samples {
		if len(d.Samples[i]) != nips {
			return errors.Wrapf(ErrDimensionMismatch, "sample %d has %d inputs, want %d", i, len(d.Samples[i]), nips)
		}
		if len(d.Labels[i]) != nops {
			return errors.Wrapf(ErrDimensionMismatch, "sample %d has %d targets, want %d", i, len(d.Labels[i]), nops)
		}
	}
	return nil
}

// Shuffle permutes samples and labels together (Fisher-Yates).
func (d *Dataset) Shuffle(r *rand.Rand) {
	r.Shuffle(len(d.Samples), func(i, j int) {
		d.Samples[i], d.Samples[j] = d.Samples[j], d.Samples[i]
		d.Labels[i], d.Labels[j] = d.Labels[j], d.Labels[i]
	})
}

// LoadSemeion reads the Semeion handwritten digit format: one sample per
// line, whitespace-separated numbers, the first nips are pixels and the
// next nops the one-hot digit. Blank lines are skipped.
func LoadSemeion(r io.Reader, nips, nops int) (*Dataset, error) {
	d := &Dataset{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != nips+nops {
			return nil, errInvalidLine{lineNum: lineNum, fields: len(fields), expected: nips + nops}
		}

		values := make([]float64, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d, column %d", lineNum, j+1)
			}
			values[j] = v
		}
		d.Samples = append(d.Samples, values[:nips:nips])
		d.Labels = append(d.Labels, values[nips:])
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading semeion data")
	}
	if d.Len() == 0 {
		return nil, errors.New("semeion data has no samples")
	}
	return d, nil
}

// LoadSemeionFile opens path and reads it with LoadSemeion.
func LoadSemeionFile(path string, nips, nops int) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer f.Close()

	d, err := LoadSemeion(f, nips, nops)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return d, nil
}

type errInvalidLine struct {
	lineNum  int
	fields   int
	expected int
}

func (e errInvalidLine) Error() string {
	return fmt.Sprintf("at line %d, expected %d values, got %d",
		e.lineNum, e.expected, e.fields)
}

// LoadCSV loads data from a CSV file.
// labelCols specifies the indices of columns to be used as labels.
// All other columns are used as features.
// hasHeader skips the first line if true.
func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}

	if len(records) == 0 {
		return nil, errors.New("csv file is empty")
	}

	startRow := 0
	if hasHeader {
		startRow = 1
	}

	if len(records) <= startRow {
		return nil, errors.New("csv file has no data rows")
	}

	numCols := len(records[0])
	isLabelCol := make(map[int]bool)
	for _, col := range labelCols {
		if col < 0 || col >= numCols {
			return nil, errors.Errorf("label column %d out of range for %d columns", col, numCols)
		}
		if isLabelCol[col] {
			return nil, errors.Errorf("duplicate label column %d", col)
		}
		isLabelCol[col] = true
	}

	numSamples := len(records) - startRow
	samples := make([][]float64, numSamples)
	labels := make([][]float64, numSamples)

	for i := startRow; i < len(records); i++ {
		record := records[i]
		if len(record) != numCols {
			return nil, errors.Errorf("inconsistent number of columns at row %d", i)
		}

		sampleRow := make([]float64, 0, numCols-len(labelCols))
		labelValues := make(map[int]float64, len(labelCols))

		for j, valStr := range record {
			val, err := strconv.ParseFloat(strings.TrimSpace(valStr), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse value at row %d, col %d", i, j)
			}

			if isLabelCol[j] {
				labelValues[j] = val
			} else {
				sampleRow = append(sampleRow, val)
			}
		}

		// Labels keep the order given in labelCols
		labelRow := make([]float64, 0, len(labelCols))
		for _, col := range labelCols {
			labelRow = append(labelRow, labelValues[col])
		}

		samples[i-startRow] = sampleRow
		labels[i-startRow] = labelRow
	}

	return &Dataset{
		Samples: samples,
		Labels:  labels,
	}, nil
}

// Normalize performs min-max normalization on the samples.
func (d *Dataset) Normalize() {
	if len(d.Samples) == 0 {
		return
	}

	numFeatures := len(d.Samples[0])
	min := make([]float64, numFeatures)
	max := make([]float64, numFeatures)

	copy(min, d.Samples[0])
	copy(max, d.Samples[0])

	for _, sample := range d.Samples {
		for i, val := range sample {
			if val < min[i] {
				min[i] = val
			}
			if val > max[i] {
				max[i] = val
			}
		}
	}

	for _, sample := range d.Samples {
		for i := range sample {
			diff := max[i] - min[i]
			if diff != 0 {
				sample[i] = (sample[i] - min[i]) / diff
			} else {
				sample[i] = 0
			}
		}
	}
}

// Split splits the dataset into two based on the given ratio (0.0 to 1.0).
// Returns two new Datasets (train, test).
func (d *Dataset) Split(ratio float64) (*Dataset, *Dataset) {
	if ratio <= 0 {
		return &Dataset{}, d
	}
	if ratio >= 1 {
		return d, &Dataset{}
	}

	splitIdx := int(float64(len(d.Samples)) * ratio)

	train := &Dataset{
		Samples: d.Samples[:splitIdx],
		Labels:  d.Labels[:splitIdx],
	}

	test := &Dataset{
		Samples: d.Samples[splitIdx:],
		Labels:  d.Labels[splitIdx:],
	}

	return train, test
}
