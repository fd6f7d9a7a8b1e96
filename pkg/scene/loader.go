package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// File is the JSON layout of a scene file
type File struct {
	Name        string                  `json:"name,omitempty"`
	Description string                  `json:"description,omitempty"`
	Camera      *CameraFile             `json:"camera,omitempty"`
	Render      *RenderFile             `json:"render,omitempty"`
	Background  *BackgroundFile         `json:"background,omitempty"`
	Materials   map[string]MaterialFile `json:"materials"`
	Spheres     []SphereFile            `json:"spheres"`
}

// Vector is a JSON [x, y, z] triple
type Vector [3]float64

// Vec3 converts the triple to a core vector
func (v Vector) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Color is either an [r, g, b] array in [0,1] or a CSS color name such as "gold"
type Color core.Vec3

// UnmarshalJSON accepts both color forms
func (c *Color) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		rgba, ok := colornames.Map[strings.ToLower(strings.ReplaceAll(name, " ", ""))]
		if !ok {
			return fmt.Errorf("unknown color name %q", name)
		}
		*c = Color(core.NewVec3(float64(rgba.R)/255, float64(rgba.G)/255, float64(rgba.B)/255))
		return nil
	}

	var rgb []float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be a name or [r, g, b]: %w", err)
	}
	if len(rgb) != 3 {
		return fmt.Errorf("color must have 3 components, got %d", len(rgb))
	}
	*c = Color(core.NewVec3(rgb[0], rgb[1], rgb[2]))
	return nil
}

// MarshalJSON always writes the array form
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{c.X, c.Y, c.Z})
}

// CameraFile holds camera overrides; omitted fields keep the defaults
type CameraFile struct {
	LookFrom      *Vector `json:"look_from,omitempty"`
	LookAt        *Vector `json:"look_at,omitempty"`
	Up            *Vector `json:"up,omitempty"`
	VFov          float64 `json:"vfov,omitempty"`
	FocusDistance float64 `json:"focus_distance,omitempty"`
	DefocusAngle  float64 `json:"defocus_angle,omitempty"`
}

// RenderFile holds render overrides; omitted fields keep the defaults
type RenderFile struct {
	ImageWidth      int     `json:"image_width,omitempty"`
	AspectRatio     float64 `json:"aspect_ratio,omitempty"`
	SamplesPerPixel int     `json:"samples_per_pixel,omitempty"`
	MaxBounces      int     `json:"max_bounces,omitempty"`
	Gamma           float64 `json:"gamma,omitempty"`
}

// BackgroundFile sets the sky gradient
type BackgroundFile struct {
	Top    Color `json:"top"`
	Bottom Color `json:"bottom"`
}

// MaterialFile describes one named material
type MaterialFile struct {
	Type            string  `json:"type"` // lambertian, metal or dielectric
	Albedo          *Color  `json:"albedo,omitempty"`
	Roughness       float64 `json:"roughness,omitempty"`
	RefractionIndex float64 `json:"refraction_index,omitempty"`
}

// SphereFile places a sphere using a named material
type SphereFile struct {
	Center   Vector  `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// Load reads and builds a scene from a JSON file
func Load(path string) (*Scene, error) {
	f, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if f.Name == "" {
		f.Name = path
	}
	s, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// Decode reads and builds a scene from JSON
func Decode(r io.Reader) (*Scene, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return f.Build()
}

// Save writes the scene description as indented JSON
func Save(path string, f *File) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scene file: %w", err)
	}
	if err := Encode(file, f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close scene file: %w", err)
	}
	return nil
}

// Encode writes the scene description as indented JSON
func Encode(w io.Writer, f *File) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	return nil
}

func readFile(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	var f File
	if err := json.NewDecoder(file).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode scene file %s: %w", path, err)
	}
	return &f, nil
}

// Build converts the description into a renderable scene.
// Spheres naming the same material share one material instance.
func (f *File) Build() (*Scene, error) {
	s := NewScene(f.Name)

	if f.Camera != nil {
		override := renderer.CameraConfig{
			VFov:          f.Camera.VFov,
			FocusDistance: f.Camera.FocusDistance,
			DefocusAngle:  f.Camera.DefocusAngle,
		}
		if f.Camera.LookFrom != nil {
			override.LookFrom = f.Camera.LookFrom.Vec3()
		}
		if f.Camera.LookAt != nil {
			override.LookAt = f.Camera.LookAt.Vec3()
		}
		if f.Camera.Up != nil {
			override.Up = f.Camera.Up.Vec3()
		}
		s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, override)
		if err := s.CameraConfig.Validate(); err != nil {
			return nil, fmt.Errorf("camera: %w", err)
		}
	}

	if f.Render != nil {
		s.RenderConfig = renderer.MergeRenderConfig(s.RenderConfig, renderer.RenderConfig{
			ImageWidth:      f.Render.ImageWidth,
			AspectRatio:     f.Render.AspectRatio,
			SamplesPerPixel: f.Render.SamplesPerPixel,
			MaxBounces:      f.Render.MaxBounces,
			Gamma:           f.Render.Gamma,
		})
	}

	if f.Background != nil {
		s.Background = renderer.Background{
			Top:    core.Vec3(f.Background.Top),
			Bottom: core.Vec3(f.Background.Bottom),
		}
	}

	materials := make(map[string]material.Material, len(f.Materials))
	for name, m := range f.Materials {
		mat, err := m.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for i, sp := range f.Spheres {
		mat, ok := materials[sp.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: undefined material %q", i, sp.Material)
		}
		if sp.Radius < 0 {
			return nil, fmt.Errorf("sphere %d: radius must not be negative, got %g", i, sp.Radius)
		}
		s.AddSphere(sp.Center.Vec3(), sp.Radius, mat)
	}

	return s, nil
}

func (m MaterialFile) build() (material.Material, error) {
	albedo := core.NewVec3(0.5, 0.5, 0.5)
	if m.Albedo != nil {
		albedo = core.Vec3(*m.Albedo)
	}

	switch strings.ToLower(m.Type) {
	case "lambertian":
		return material.NewLambertian(albedo), nil
	case "metal":
		return material.NewMetal(albedo, m.Roughness), nil
	case "dielectric":
		if m.RefractionIndex <= 0 {
			return nil, fmt.Errorf("refraction index must be positive, got %g", m.RefractionIndex)
		}
		return material.NewDielectric(m.RefractionIndex), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}
