package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// NewThreeSpheresScene creates the ground plane, a diffuse center sphere,
// a hollow glass sphere and a fuzzy gold sphere, seen through a wide lens
func NewThreeSpheresScene() *Scene {
	s := NewScene("three-spheres")
	s.CameraConfig.LookFrom = core.NewVec3(-2, 2, 1)
	s.CameraConfig.LookAt = core.NewVec3(0, 0, -1)
	s.CameraConfig.VFov = 20
	s.CameraConfig.FocusDistance = 3.4
	s.CameraConfig.DefocusAngle = 10.0

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	left := material.NewDielectric(1.5)
	bubble := material.NewDielectric(1.0 / 1.5)
	right := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1.2), 0.5, center)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, left)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.4, bubble)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, right)

	return s
}

// NewCalibrationScene creates two touching spheres that exactly fill a 90 degree view
func NewCalibrationScene() *Scene {
	s := NewScene("calibration")

	r := math.Cos(math.Pi / 4)
	s.AddSphere(core.NewVec3(-r, 0, -1), r, material.NewLambertian(core.NewVec3(0, 0, 1)))
	s.AddSphere(core.NewVec3(r, 0, -1), r, material.NewLambertian(core.NewVec3(1, 0, 0)))

	return s
}

// NewSingleSphereScene creates one diffuse sphere lit only by the sky
func NewSingleSphereScene() *Scene {
	s := NewScene("single-sphere")
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	return s
}

// NewSkyScene creates a scene with nothing but the background gradient
func NewSkyScene() *Scene {
	return NewScene("sky")
}

// NewRandomSpheresScene creates a ground sphere covered in a grid of small random
// spheres with three large feature spheres. The layout is fixed by seed.
func NewRandomSpheresScene(seed int64) *Scene {
	s := NewScene("random-spheres")
	s.CameraConfig.LookFrom = core.NewVec3(13, 2, 3)
	s.CameraConfig.LookAt = core.NewVec3(0, 0, 0)
	s.CameraConfig.VFov = 20
	s.CameraConfig.FocusDistance = 10.0
	s.CameraConfig.DefocusAngle = 0.6
	s.RenderConfig.ImageWidth = 1200
	s.RenderConfig.SamplesPerPixel = 500

	random := rand.New(rand.NewSource(seed))

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			// Keep clear of the big metal sphere
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(random).MultiplyVec(core.RandomVec3(random))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.RandomVec3Range(random, 0.5, 1)
				mat = material.NewMetal(albedo, core.RandomRange(random, 0, 0.5))
			default:
				mat = material.NewDielectric(1.5)
			}
			s.AddSphere(center, 0.2, mat)
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	return s
}
