package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestDielectric_AlwaysScattersWhite(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0).Normalize())
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	random := rand.New(rand.NewSource(42))
	hasReflection, hasRefraction := false, false
	for i := 0; i < 2000; i++ {
		result, scattered := glass.Scatter(ray, hit, random)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != core.NewVec3(1, 1, 1) {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	if !hasRefraction {
		t.Error("Expected refraction at 45 degrees")
	}
	if !hasReflection {
		t.Error("Expected occasional Fresnel reflection at 45 degrees")
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Leaving glass at 60 degrees exceeds the critical angle (~41.8 degrees)
	angle := math.Pi / 3
	direction := core.NewVec3(math.Sin(angle), math.Cos(angle), 0)
	ray := core.NewRay(core.NewVec3(0, -1, 0), direction)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, -1, 0), // Facing the ray, inside the glass
		FrontFace: false,
	}

	random := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		result, _ := glass.Scatter(ray, hit, random)
		expected := direction.Reflect(hit.Normal)
		if result.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
			t.Fatalf("Expected total internal reflection %v, got %v", expected, result.Scattered.Direction)
		}
	}
}

func TestDielectric_UnitIndexPassesStraightThrough(t *testing.T) {
	air := NewDielectric(1.0)
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		normal := core.NewVec3(0, 1, 0)
		// Any direction arriving from above the surface
		direction := core.RandomOnHemisphere(normal, random).Negate()
		if direction.Dot(normal) > -1e-3 {
			continue
		}
		ray := core.NewRay(core.NewVec3(0, 1, 0), direction.Multiply(3))
		for _, front := range []bool{true, false} {
			hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal, FrontFace: front}
			result, _ := air.Scatter(ray, hit, random)
			if result.Scattered.Direction.Subtract(direction).Length() > 1e-9 {
				t.Fatalf("Expected %v to pass through unchanged, got %v", direction, result.Scattered.Direction)
			}
		}
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence glass", 1.0, 1.0 / 1.5, 0.04},
		{"grazing incidence", 0.0, 1.0 / 1.5, 1.0},
		{"matched indices", 0.3, 1.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reflectance(tt.cosine, tt.ratio); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}
