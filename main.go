package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

func main() {
	logger := core.NewDefaultLogger()
	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, logger core.Logger) error {
	flags := flag.NewFlagSet("sphere-tracer", flag.ContinueOnError)
	sceneName := flags.String("scene", "three-spheres", "Built-in scene name or path to a .json scene file")
	outPath := flags.String("out", "", "Output file (default: PPM on stdout)")
	format := flags.String("format", "", "Output format overriding the file extension: ppm, png, bmp or tiff")
	width := flags.Int("width", 0, "Image width in pixels (default: scene setting)")
	spp := flags.Int("spp", 0, "Samples per pixel (default: scene setting)")
	depth := flags.Int("depth", 0, "Maximum ray bounces (default: scene setting)")
	workers := flags.Int("workers", 0, "Number of parallel workers (0 = use CPU count)")
	seed := flags.Int64("seed", 42, "Random seed for sampling and random scenes")
	gamma := flags.Float64("gamma", 0, "Output gamma (default: scene setting, 1 = linear)")
	help := flags.Bool("help", false, "Show help information")
	flags.SetOutput(io.Discard)

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *help {
		printHelp(flags, logger)
		return flag.ErrHelp
	}

	selectedScene, err := createScene(*sceneName, *seed)
	if err != nil {
		return err
	}

	outFormat, err := outputFormat(*outPath, *format)
	if err != nil {
		return err
	}

	raytracer, err := selectedScene.NewRaytracer(renderer.RenderConfig{
		ImageWidth:      *width,
		SamplesPerPixel: *spp,
		MaxBounces:      *depth,
		Gamma:           *gamma,
		Workers:         *workers,
		Seed:            *seed,
	}, logger)
	if err != nil {
		return err
	}

	logger.Printf("Using %s scene...\n", selectedScene.Name)

	w := stdout
	if *outPath != "" && *outPath != "-" {
		if dir := filepath.Dir(*outPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}
		file, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer file.Close()
		w = file
	}

	if _, err := raytracer.Render(w, outFormat); err != nil {
		return err
	}

	if f, ok := w.(*os.File); ok && f != os.Stdout {
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing output file: %w", err)
		}
		logger.Printf("Render saved as %s\n", *outPath)
	}
	return nil
}

func printHelp(flags *flag.FlagSet, logger core.Logger) {
	var usage strings.Builder
	flags.SetOutput(&usage)
	flags.PrintDefaults()

	logger.Printf("Sphere Tracer\n")
	logger.Printf("Usage: sphere-tracer [options] > image.ppm\n\n")
	logger.Printf("Options:\n%s\n", usage.String())
	logger.Printf("Available scenes:\n")
	for _, info := range scene.ListBuiltinScenes() {
		logger.Printf("  %-15s %s\n", info.Name, info.Description)
	}
	if files, err := scene.ListSceneFiles("scenes"); err == nil {
		for _, info := range files {
			logger.Printf("  %-15s %s\n", info.FilePath, info.Description)
		}
	}
}

// createScene resolves a built-in scene name or a JSON scene file path
func createScene(name string, seed int64) (*scene.Scene, error) {
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		return scene.Load(name)
	}
	return scene.Create(name, seed)
}

// outputFormat picks the image format from an explicit override or the output path.
// Standard output always defaults to PPM.
func outputFormat(path, override string) (output.Format, error) {
	if override != "" {
		return output.ParseFormat(override)
	}
	if path == "" || path == "-" {
		return output.FormatPPM, nil
	}
	return output.FormatFromPath(path)
}
