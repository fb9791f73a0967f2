// Package viz renders sample vectors as images and text.
package viz

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Side is the width and height of a Semeion digit.
const Side = 16

// Bitmap maps sample onto a width x height grayscale image. Pixel (x, y) is
// sample[x+width*y]; a value of exactly 1 is white, anything else black.
func Bitmap(sample []float64, width, height int) (*image.Gray, error) {
	if err := checkSize(sample, width, height); err != nil {
		return nil, err
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.Gray{Y: 0}
			if sample[x+width*y] == 1 {
				c.Y = 255
			}
			img.SetGray(x, y, c)
		}
	}
	return img, nil
}

// WritePNG encodes the bitmap of sample as PNG.
func WritePNG(w io.Writer, sample []float64, width, height int) error {
	img, err := Bitmap(sample, width, height)
	if err != nil {
		return err
	}
	return errors.Wrap(png.Encode(w, img), "encoding png")
}

// ASCII draws the bitmap of sample with '#' for white and '.' for black,
// one line per row.
func ASCII(sample []float64, width, height int) (string, error) {
	if err := checkSize(sample, width, height); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow((width + 1) * height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if sample[x+width*y] == 1 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func checkSize(sample []float64, width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Errorf("invalid bitmap size %dx%d", width, height)
	}
	if len(sample) != width*height {
		return errors.Errorf("sample has %d values, a %dx%d bitmap needs %d",
			len(sample), width, height, width*height)
	}
	return nil
}
