package scene

import (
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.HittableList // Objects in the scene
	CameraConfig renderer.CameraConfig
	RenderConfig renderer.RenderConfig
	Background   renderer.Background
}

// NewScene creates an empty scene with default camera, render settings and sky
func NewScene(name string) *Scene {
	return &Scene{
		Name:         name,
		World:        geometry.NewHittableList(),
		CameraConfig: renderer.DefaultCameraConfig(),
		RenderConfig: renderer.DefaultRenderConfig(),
		Background:   renderer.DefaultBackground(),
	}
}

// AddSphere adds a sphere to the world
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// NewRaytracer builds a camera and raytracer for the scene.
// Non-zero fields of overrides replace the scene's render settings.
func (s *Scene) NewRaytracer(overrides renderer.RenderConfig, logger core.Logger) (*renderer.Raytracer, error) {
	renderConfig := renderer.MergeRenderConfig(s.RenderConfig, overrides)
	if err := renderConfig.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}

	camera := renderer.NewCamera(s.CameraConfig, renderConfig)
	rt := renderer.NewRaytracer(camera, s.World, renderConfig, logger)
	rt.SetBackground(s.Background)
	return rt, nil
}
