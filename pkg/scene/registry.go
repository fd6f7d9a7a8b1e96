package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene or a scene file on disk
type SceneInfo struct {
	Name        string `json:"name"`               // Scene name
	Description string `json:"description"`        // Optional description
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to JSON file (file type only)
}

type builtin struct {
	description string
	create      func(seed int64) *Scene
}

var builtins = map[string]builtin{
	"three-spheres": {
		description: "Diffuse, hollow glass and fuzzy metal spheres with depth of field",
		create:      func(int64) *Scene { return NewThreeSpheresScene() },
	},
	"calibration": {
		description: "Two touching spheres filling a 90 degree view",
		create:      func(int64) *Scene { return NewCalibrationScene() },
	},
	"random-spheres": {
		description: "Grid of small random spheres around three large ones",
		create:      NewRandomSpheresScene,
	},
	"single-sphere": {
		description: "One diffuse sphere under the sky",
		create:      func(int64) *Scene { return NewSingleSphereScene() },
	},
	"sky": {
		description: "Empty world showing only the background",
		create:      func(int64) *Scene { return NewSkyScene() },
	},
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds the named built-in scene. Scenes with random content use seed.
func Create(name string, seed int64) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return b.create(seed), nil
}

// ListBuiltinScenes returns metadata for every built-in scene
func ListBuiltinScenes() []SceneInfo {
	var scenes []SceneInfo
	for _, name := range Names() {
		scenes = append(scenes, SceneInfo{
			Name:        name,
			Description: builtins[name].description,
			Type:        "builtin",
		})
	}
	return scenes
}

// ListSceneFiles scans dir for JSON scene files. Files that fail to parse are skipped.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, path := range files {
		f, err := readFile(path)
		if err != nil {
			continue
		}
		name := f.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		scenes = append(scenes, SceneInfo{
			Name:        name,
			Description: f.Description,
			Type:        "file",
			FilePath:    path,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}
