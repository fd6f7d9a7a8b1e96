package renderer

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/output"
)

// shadowAcneEpsilon keeps scattered rays from re-hitting the surface they left
const shadowAcneEpsilon = 0.001

// Background is the sky seen by rays that escape the scene
type Background struct {
	Top    core.Vec3 // Color straight up
	Bottom core.Vec3 // Color straight down
}

// DefaultBackground returns the white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Color returns the gradient color based on ray direction
func (b Background) Color(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	a := 0.5 * (unitDirection.Y + 1.0)

	return b.Bottom.Multiply(1.0 - a).Add(b.Top.Multiply(a))
}

// Raytracer handles the rendering process
type Raytracer struct {
	camera     *Camera
	world      geometry.Hittable
	background Background
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. The world is read-only for the whole render.
func NewRaytracer(camera *Camera, world geometry.Hittable, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		camera:     camera,
		world:      world,
		background: DefaultBackground(),
		config:     config,
		logger:     logger,
	}
}

// SetBackground replaces the sky gradient
func (rt *Raytracer) SetBackground(background Background) {
	rt.background = background
}

// Camera returns the camera used for primary rays
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Config returns the render settings in effect
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// RayColor returns the radiance carried back along r with at most depth bounces
func (rt *Raytracer) RayColor(r core.Ray, depth int, random *rand.Rand) core.Vec3 {
	// Bounce budget exhausted: no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := rt.world.Hit(r, core.NewInterval(shadowAcneEpsilon, math.Inf(1)))
	if !isHit {
		return rt.background.Color(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, random)
	if !didScatter {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth-1, random))
}

// samplePixel averages SamplesPerPixel primary rays through pixel (i, j)
func (rt *Raytracer) samplePixel(i, j int, random *rand.Rand) PixelStats {
	var ps PixelStats
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		ray := rt.camera.GetRay(i, j, random)
		ps.AddSample(rt.RayColor(ray, rt.config.MaxBounces, random))
	}
	return ps
}

// RenderRow renders scan-line j into pixels and returns the number of samples taken
func (rt *Raytracer) RenderRow(j int, pixels []core.Vec3, random *rand.Rand) int {
	samples := 0
	for i := range pixels {
		ps := rt.samplePixel(i, j, random)
		pixels[i] = ps.GetColor()
		samples += ps.SampleCount
	}
	return samples
}

// RenderPass renders every pixel and returns the linear frame
func (rt *Raytracer) RenderPass() (*core.Frame, RenderStats) {
	startTime := time.Now()
	width, height := rt.camera.Width(), rt.camera.Height()
	frame := core.NewFrame(width, height)

	workerPool := NewWorkerPool(rt, rt.config.Workers, height)
	workerPool.Start()

	rt.logger.Printf("Rendering %dx%d, %d samples per pixel, %d max bounces (using %d workers)\n",
		width, height, rt.config.SamplesPerPixel, rt.config.MaxBounces, workerPool.GetNumWorkers())

	for j := 0; j < height; j++ {
		workerPool.SubmitTask(RowTask{Row: j, Pixels: frame.Row(j)})
	}

	stats := newRenderStats(width, height)
	progressStep := max(1, height/10)
	for remaining := height; remaining > 0; {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}
		remaining--
		stats.addRow(result.Samples)
		if remaining%progressStep == 0 {
			rt.logger.Printf("Scanlines remaining: %d\n", remaining)
		}
	}
	workerPool.Stop()

	stats.finalize(time.Since(startTime))
	return frame, stats
}

// Render renders the scene and encodes the result to w.
// Write errors are returned to the caller and are never retried.
func (rt *Raytracer) Render(w io.Writer, format output.Format) (RenderStats, error) {
	frame, stats := rt.RenderPass()
	if err := output.Encode(w, frame, format, rt.config.Gamma); err != nil {
		return stats, fmt.Errorf("write image: %w", err)
	}
	rt.logger.Printf("Done in %v (%.1f samples per pixel)\n", stats.Elapsed, stats.AverageSamples)
	return stats, nil
}
