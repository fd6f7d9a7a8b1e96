package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectIndex  int                    `json:"objectIndex"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// extractMaterialInfo extracts material parameters with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["roughness"] = m.Roughness
		return "metal", properties

	case *material.Dielectric:
		properties["refractionIndex"] = m.RefractionIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// InspectResult describes the object seen through a pixel
type InspectResult struct {
	Hit         bool
	ObjectIndex int                 // Index into the scene's world list
	HitRecord   *material.HitRecord // Nearest hit along the pixel-center ray
	Object      geometry.Hittable   // The object that was hit
}

// inspectPixel casts an unjittered ray through the center of pixel (pixelX, pixelY)
// and returns the first object hit
func inspectPixel(sceneObj *scene.Scene, width, pixelX, pixelY int) InspectResult {
	renderConfig := sceneObj.RenderConfig
	renderConfig.ImageWidth = width
	camera := renderer.NewCamera(sceneObj.CameraConfig, renderConfig)

	origin := camera.Center()
	ray := core.NewRay(origin, camera.PixelCenter(pixelX, pixelY).Subtract(origin))

	// Walk the list directly so the hit object is known
	result := InspectResult{ObjectIndex: -1}
	closest := math.Inf(1)
	for i, object := range sceneObj.World.Objects {
		hit, isHit := object.Hit(ray, core.NewInterval(0.001, closest))
		if !isHit {
			continue
		}
		closest = hit.T
		result = InspectResult{Hit: true, ObjectIndex: i, HitRecord: hit, Object: object}
	}
	return result
}

// handleInspect reports the object under a pixel of the rendered image
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	seed, err := parseIntParam(query, "seed", 42, 1, 1<<31-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sceneObj, err := s.createScene(sceneName, int64(seed))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	width, err := parseIntParam(query, "width", sceneObj.RenderConfig.ImageWidth, minWidth, maxWidth)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	height := renderer.NewCamera(sceneObj.CameraConfig, renderer.RenderConfig{ImageWidth: width, AspectRatio: sceneObj.RenderConfig.AspectRatio}).Height()

	x, errX := parseIntParam(query, "x", -1, 0, width-1)
	y, errY := parseIntParam(query, "y", -1, 0, height-1)
	if errX != nil || errY != nil || x < 0 || y < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("x and y are required and must lie within %dx%d", width, height),
		})
		return
	}

	result := inspectPixel(sceneObj, width, x, y)
	response := InspectResponse{Hit: result.Hit, ObjectIndex: result.ObjectIndex}
	if result.Hit {
		hit := result.HitRecord
		response.MaterialType, response.Properties = extractMaterialInfo(hit.Material)
		response.Point = toArray(hit.Point)
		response.Normal = toArray(hit.Normal)
		response.Distance = hit.T
		response.FrontFace = hit.FrontFace

		if sphere, ok := result.Object.(*geometry.Sphere); ok {
			response.GeometryType = "sphere"
			response.Properties["center"] = toArray(sphere.Center)
			response.Properties["radius"] = sphere.Radius
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	r, g, b := core.ToRGB(c, 1)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
