package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// WritePPM writes the frame as a plain-text (P3) PPM image.
// Pixels are written row-major from the top-left corner, one "R G B" line each.
func WritePPM(w io.Writer, frame *core.Frame, gamma float64) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}

	for _, pixel := range frame.Pixels {
		if err := WriteColor(bw, pixel, gamma); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush ppm: %w", err)
	}
	return nil
}

// WriteColor writes one linear color as an "R G B" line
func WriteColor(w io.Writer, pixel core.Vec3, gamma float64) error {
	r, g, b := core.ToRGB(pixel, gamma)
	if _, err := fmt.Fprintf(w, "%d %d %d\n", r, g, b); err != nil {
		return fmt.Errorf("write ppm pixel: %w", err)
	}
	return nil
}
