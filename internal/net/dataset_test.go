package net

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestLoadSemeion(t *testing.T) {
	data := "1.0000 0.0000 1.0000 0.0000 1 0\n" +
		"\n" +
		"0.0000 1.0000 0.0000 1.0000 0 1 \n" +
		"   \n"

	d, err := LoadSemeion(strings.NewReader(data), 4, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, [][]float64{{1, 0, 1, 0}, {0, 1, 0, 1}}, d.Samples)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, d.Labels)

	// Appending to a sample must not overwrite its label
	d.Samples[0] = append(d.Samples[0], 9)
	assert.Equal(t, []float64{1, 0}, d.Labels[0])
}

func TestLoadSemeionErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"short line", "1 0 1 0 1 0\n1 0 1\n", "at line 2, expected 6 values, got 3"},
		{"long line", "1 0 1 0 1 0 0\n", "at line 1, expected 6 values, got 7"},
		{"bad number", "1 0 x 0 1 0\n", "line 1, column 3"},
		{"empty", "\n\n", "semeion data has no samples"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := LoadSemeion(strings.NewReader(tt.data), 4, 2)
			assert.Nil(t, d)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadSemeionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semeion.data")
	require.NoError(t, os.WriteFile(path, []byte("0.5 0.25 1 0\n"), 0o644))

	d, err := LoadSemeionFile(path, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.5, 0.25}}, d.Samples)
	assert.Equal(t, [][]float64{{1, 0}}, d.Labels)

	_, err = LoadSemeionFile(filepath.Join(t.TempDir(), "missing.data"), 2, 2)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestDatasetValidate(t *testing.T) {
	d := &Dataset{
		Samples: [][]float64{{1, 2}, {3, 4}},
		Labels:  [][]float64{{1}, {0}},
	}
	assert.NoError(t, d.Validate(2, 1))
	assert.True(t, errors.Is(d.Validate(3, 1), ErrDimensionMismatch))
	assert.True(t, errors.Is(d.Validate(2, 2), ErrDimensionMismatch))

	d.Labels = d.Labels[:1]
	assert.Error(t, d.Validate(2, 1))
}

func TestDatasetShuffleKeepsPairs(t *testing.T) {
	d := &Dataset{}
	for i := 0; i < 50; i++ {
		d.Samples = append(d.Samples, []float64{float64(i)})
		d.Labels = append(d.Labels, []float64{float64(i) * 10})
	}

	d.Shuffle(rand.New(rand.NewSource(1)))

	moved := false
	seen := make(map[float64]bool)
	for i := range d.Samples {
		assert.Equal(t, d.Samples[i][0]*10, d.Labels[i][0])
		seen[d.Samples[i][0]] = true
		if d.Samples[i][0] != float64(i) {
			moved = true
		}
	}
	assert.True(t, moved)
	assert.Len(t, seen, 50)
}

func TestLoadCSV(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "loader.csv")
	file, err := os.Create(filename)
	require.NoError(t, err)

	writer := csv.NewWriter(file)
	require.NoError(t, writer.Write([]string{"f1", "f2", "l1", "f3", "l2"}))
	require.NoError(t, writer.Write([]string{"1.0", "2.0", "0.0", "3.0", "1.0"}))
	require.NoError(t, writer.Write([]string{"4.0", " 5.0", "1.0", "6.0", "0.0"}))
	writer.Flush()
	require.NoError(t, file.Close())

	dataset, err := LoadCSV(filename, []int{2, 4}, true)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, dataset.Samples)
	assert.Equal(t, [][]float64{{0, 1}, {1, 0}}, dataset.Labels)

	// Labels follow the order of labelCols
	dataset, err = LoadCSV(filename, []int{4, 2}, true)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, dataset.Labels)
}

func TestLoadCSVErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	_, err := LoadCSV(write("empty.csv", ""), []int{0}, false)
	assert.Error(t, err)

	_, err = LoadCSV(write("header.csv", "a,b\n"), []int{0}, true)
	assert.Error(t, err)

	_, err = LoadCSV(write("range.csv", "1,2\n"), []int{2}, false)
	assert.Error(t, err)

	_, err = LoadCSV(write("duplicate.csv", "1,2\n"), []int{0, 0, 0}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate label column 0")

	_, err = LoadCSV(write("parse.csv", "1,abc\n"), []int{0}, false)
	assert.Error(t, err)

	_, err = LoadCSV(filepath.Join(dir, "missing.csv"), []int{0}, false)
	assert.Error(t, err)
}

func TestDatasetNormalization(t *testing.T) {
	dataset := &Dataset{
		Samples: [][]float64{
			{10, 0, 7},
			{20, 5, 7},
			{30, 10, 7},
		},
	}

	dataset.Normalize()

	expected := [][]float64{
		{0.0, 0.0, 0},
		{0.5, 0.5, 0},
		{1.0, 1.0, 0},
	}
	assert.Equal(t, expected, dataset.Samples)
}

func TestDatasetSplit(t *testing.T) {
	d := &Dataset{}
	for i := 0; i < 10; i++ {
		d.Samples = append(d.Samples, []float64{float64(i)})
		d.Labels = append(d.Labels, []float64{1})
	}

	train, test := d.Split(0.8)
	assert.Equal(t, 8, train.Len())
	assert.Equal(t, 2, test.Len())
	assert.Equal(t, 8.0, test.Samples[0][0])

	train, test = d.Split(0)
	assert.Equal(t, 0, train.Len())
	assert.Equal(t, 10, test.Len())

	train, test = d.Split(1)
	assert.Equal(t, 10, train.Len())
	assert.Equal(t, 0, test.Len())
}
