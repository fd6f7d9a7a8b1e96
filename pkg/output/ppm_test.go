package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestWritePPM(t *testing.T) {
	frame := core.NewFrame(3, 2)
	frame.Set(0, 0, core.NewVec3(1, 0, 0))
	frame.Set(2, 1, core.NewVec3(0.5, 0.5, 2))

	var buf bytes.Buffer
	if err := WritePPM(&buf, frame, 1); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3+3*2 {
		t.Fatalf("Expected %d lines, got %d", 3+3*2, len(lines))
	}
	if lines[0] != "P3" || lines[1] != "3 2" || lines[2] != "255" {
		t.Errorf("Unexpected header %q", lines[:3])
	}
	if lines[3] != "255 0 0" {
		t.Errorf("Expected first pixel '255 0 0', got %q", lines[3])
	}
	if lines[8] != "128 128 255" {
		t.Errorf("Expected last pixel '128 128 255', got %q", lines[8])
	}
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errDiskFull
}

func TestWritePPM_PropagatesWriteErrors(t *testing.T) {
	frame := core.NewFrame(4, 4)
	err := WritePPM(failingWriter{}, frame, 1)
	if !errors.Is(err, errDiskFull) {
		t.Errorf("Expected disk full error, got %v", err)
	}
}
