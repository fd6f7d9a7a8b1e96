package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/output"
)

func TestCreateScene(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "custom.json")
	content := `{"name": "custom", "materials": {"m": {"type": "lambertian", "albedo": "tomato"}}, "spheres": [{"center": [0,0,-1], "radius": 0.5, "material": "m"}]}`
	if err := os.WriteFile(scenePath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"three-spheres scene", "three-spheres", false},
		{"calibration scene", "calibration", false},
		{"random-spheres scene", "random-spheres", false},
		{"single-sphere scene", "single-sphere", false},
		{"sky scene", "sky", false},

		// Scene files
		{"json scene path", scenePath, false},
		{"missing json path", filepath.Join(dir, "missing.json"), true},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, 42)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, scene)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene == nil {
				t.Fatalf("Expected scene for valid scene type '%s', got nil", tt.sceneType)
			}
			if scene.RenderConfig.ImageWidth <= 0 {
				t.Errorf("Scene image width should be positive, got %d", scene.RenderConfig.ImageWidth)
			}
			if scene.World == nil {
				t.Error("Scene world should not be nil")
			}
		})
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		path     string
		override string
		expected output.Format
		wantErr  bool
	}{
		{"", "", output.FormatPPM, false},
		{"-", "", output.FormatPPM, false},
		{"image.ppm", "", output.FormatPPM, false},
		{"out/image.PNG", "", output.FormatPNG, false},
		{"image.bmp", "", output.FormatBMP, false},
		{"image.tif", "", output.FormatTIFF, false},
		{"image.dat", "png", output.FormatPNG, false},
		{"", "tiff", output.FormatTIFF, false},
		{"image", "", "", true},
		{"image.jpg", "", "", true},
		{"image.png", "gif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path+"|"+tt.override, func(t *testing.T) {
			format, err := outputFormat(tt.path, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got format %q", format)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if format != tt.expected {
				t.Errorf("outputFormat(%q, %q) = %q, want %q", tt.path, tt.override, format, tt.expected)
			}
		})
	}
}

func TestRun_PPMToStdout(t *testing.T) {
	var stdout, logs bytes.Buffer
	err := run([]string{"-scene", "sky", "-width", "8", "-spp", "1", "-depth", "1", "-workers", "2"}, &stdout, core.NewWriterLogger(&logs))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	// Header plus 8x4 pixels at 16:9
	if lines[0] != "P3" || lines[1] != "8 4" || lines[2] != "255" {
		t.Errorf("Unexpected PPM header: %q", lines[:3])
	}
	if len(lines) != 3+8*4 {
		t.Errorf("Expected %d lines, got %d", 3+8*4, len(lines))
	}
	if !strings.Contains(logs.String(), "sky") {
		t.Errorf("Expected status output on the logger, got %q", logs.String())
	}
}

func TestRun_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renders", "sky.png")
	var stdout bytes.Buffer
	err := run([]string{"-scene", "sky", "-width", "8", "-spp", "1", "-out", path}, &stdout, core.NopLogger{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("Nothing should be written to stdout, got %d bytes", stdout.Len())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Output file missing: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("Output file is not a PNG")
	}
}

func TestRun_Errors(t *testing.T) {
	tests := [][]string{
		{"-scene", "nonexistent"},
		{"-format", "gif"},
		{"-scene", "sky", "-gamma", "-1"},
		{"-bogus"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if err := run(args, &bytes.Buffer{}, core.NopLogger{}); err == nil {
				t.Errorf("Expected error for %v", args)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	var logs bytes.Buffer
	err := run([]string{"-help"}, &bytes.Buffer{}, core.NewWriterLogger(&logs))
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("Expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(logs.String(), "random-spheres") {
		t.Errorf("Help should list scenes, got %q", logs.String())
	}
}
