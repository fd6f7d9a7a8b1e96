package server

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	content := `{"name": "file-scene", "description": "from disk", "materials": {"m": {"type": "metal", "albedo": "silver"}}, "spheres": [{"center": [0,0,-1], "radius": 0.5, "material": "m"}]}`
	if err := os.WriteFile(filepath.Join(dir, "file-scene.json"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	return NewServer(0, dir, core.NopLogger{}), dir
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
}

func TestHandleScenes(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/scenes")

	var body struct {
		Scenes []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"scenes"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	types := map[string]string{}
	for _, sc := range body.Scenes {
		types[sc.Name] = sc.Type
	}
	if types["three-spheres"] != "builtin" || types["random-spheres"] != "builtin" {
		t.Errorf("Built-in scenes missing: %v", types)
	}
	if types["file-scene"] != "file" {
		t.Errorf("Scene file missing: %v", types)
	}
}

func TestHandleSceneConfig(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/scene-config?scene=three-spheres")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Defaults map[string]float64 `json:"defaults"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Defaults["vfov"] != 20 || body.Defaults["objects"] != 5 {
		t.Errorf("Unexpected defaults: %v", body.Defaults)
	}

	if rec := get(t, s, "/api/scene-config?scene=teapot"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown scene, got %d", rec.Code)
	}
}

func TestHandleRender(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/render?scene=sky&width=16&spp=1&depth=1&format=ppm")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/x-portable-pixmap" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "P3\n16 9\n255\n") {
		t.Errorf("Unexpected PPM header: %q", rec.Body.String()[:20])
	}
}

func TestHandleRender_FileScenePNG(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/render?scene=file-scene&width=16&spp=1&depth=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 9 {
		t.Errorf("Unexpected image size %v", img.Bounds())
	}
}

func TestHandleRender_BadRequests(t *testing.T) {
	s, dir := newTestServer(t)
	testCases := []string{
		"scene=teapot",
		"width=abc",
		"width=5",
		"spp=0",
		"gamma=9",
		"format=gif",
		// Paths are never loaded directly
		"scene=" + url.QueryEscape(filepath.Join(dir, "file-scene.json")),
	}

	for _, query := range testCases {
		t.Run(query, func(t *testing.T) {
			rec := get(t, s, "/api/render?"+query)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleRenderStream(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/render/stream?scene=single-sphere&width=32&spp=2&depth=3")
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}

	events := map[string][]string{}
	var event string
	scanner := bufio.NewScanner(bytes.NewReader(rec.Body.Bytes()))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			events[event] = append(events[event], strings.TrimPrefix(line, "data: "))
		}
	}

	if len(events["console"]) == 0 {
		t.Error("Expected console events")
	}
	if len(events["complete"]) != 1 {
		t.Fatalf("Expected one complete event, got %d (%v)", len(events["complete"]), events["error"])
	}

	var update CompleteUpdate
	if err := json.Unmarshal([]byte(events["complete"][0]), &update); err != nil {
		t.Fatalf("Failed to decode complete event: %v", err)
	}
	if update.Width != 32 || update.Height != 18 {
		t.Errorf("Unexpected size %dx%d", update.Width, update.Height)
	}
	if update.Stats.TotalSamples != 32*18*2 {
		t.Errorf("Expected %d samples, got %d", 32*18*2, update.Stats.TotalSamples)
	}
	data, err := base64.StdEncoding.DecodeString(update.ImageData)
	if err != nil {
		t.Fatalf("Image data is not base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("Image data is not a PNG: %v", err)
	}
}

func TestHandleRenderStream_Error(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/render/stream?scene=teapot")
	if !strings.Contains(rec.Body.String(), "event: error") {
		t.Errorf("Expected error event, got %q", rec.Body.String())
	}
}
