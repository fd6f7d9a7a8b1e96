package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// CameraConfig contains the placement and lens settings of the camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // World up direction (defaults to +Y)
	VFov          float64   // Vertical field of view in degrees
	FocusDistance float64   // Distance from LookFrom to the plane of perfect focus
	DefocusAngle  float64   // Cone angle in degrees of rays through each pixel (0 = pinhole)
}

// RenderConfig contains image and sampling configuration
type RenderConfig struct {
	ImageWidth      int     // Image width in pixels
	AspectRatio     float64 // Width over height
	SamplesPerPixel int     // Number of rays per pixel
	MaxBounces      int     // Maximum ray bounce depth
	Gamma           float64 // Output gamma (0 or 1 = linear)
	Workers         int     // Number of parallel workers (0 = use CPU count)
	Seed            int64   // Seed for all random sampling
}

// DefaultCameraConfig returns a pinhole camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90.0,
		FocusDistance: 10.0,
		DefocusAngle:  0.0,
	}
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		ImageWidth:      400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxBounces:      50,
		Gamma:           1.0,
		Workers:         0,
		Seed:            42,
	}
}

// MergeCameraConfig applies non-zero override fields on top of base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.LookFrom != zero {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	return result
}

// MergeRenderConfig applies non-zero override fields on top of base
func MergeRenderConfig(base, override RenderConfig) RenderConfig {
	result := base
	if override.ImageWidth != 0 {
		result.ImageWidth = override.ImageWidth
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxBounces != 0 {
		result.MaxBounces = override.MaxBounces
	}
	if override.Gamma != 0 {
		result.Gamma = override.Gamma
	}
	if override.Workers != 0 {
		result.Workers = override.Workers
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	return result
}

// Validate checks that the camera can build a view basis
func (c CameraConfig) Validate() error {
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("vertical field of view must be in (0, 180) degrees, got %g", c.VFov)
	}
	if c.FocusDistance <= 0 {
		return fmt.Errorf("focus distance must be positive, got %g", c.FocusDistance)
	}
	if c.DefocusAngle < 0 {
		return fmt.Errorf("defocus angle must not be negative, got %g", c.DefocusAngle)
	}
	if c.LookFrom.Subtract(c.LookAt).NearZero() {
		return errors.New("look-from and look-at must differ")
	}
	up := c.Up
	if up == (core.Vec3{}) {
		up = core.NewVec3(0, 1, 0)
	}
	if up.Cross(c.LookFrom.Subtract(c.LookAt)).NearZero() {
		return errors.New("up direction must not be parallel to the view direction")
	}
	return nil
}

// Validate checks image and sampling settings
func (r RenderConfig) Validate() error {
	if r.ImageWidth <= 0 {
		return fmt.Errorf("image width must be positive, got %d", r.ImageWidth)
	}
	if r.AspectRatio <= 0 {
		return fmt.Errorf("aspect ratio must be positive, got %g", r.AspectRatio)
	}
	if r.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", r.SamplesPerPixel)
	}
	if r.MaxBounces <= 0 {
		return fmt.Errorf("max bounces must be positive, got %d", r.MaxBounces)
	}
	if r.Gamma < 0 {
		return fmt.Errorf("gamma must not be negative, got %g", r.Gamma)
	}
	if r.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", r.Workers)
	}
	return nil
}
