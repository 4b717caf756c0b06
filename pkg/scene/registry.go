package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

const builtinGroup = "Built-in Scenes"

// SceneInfo represents a discoverable scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by Create
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the YAML file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type builtin struct {
	info  SceneInfo
	build func(cameraOverrides ...renderer.CameraConfig) *Scene
}

var builtins = []builtin{
	{
		info:  SceneInfo{ID: "default", Name: "Default Scene", Description: "Metal, diffuse and glass spheres with a cube on a ground plane"},
		build: NewDefaultScene,
	},
	{
		info:  SceneInfo{ID: "two-spheres", Name: "Two Spheres", Description: "Diffuse sphere on a large ground sphere"},
		build: NewTwoSpheresScene,
	},
	{
		info:  SceneInfo{ID: "mesh", Name: "Triangle Mesh", Description: "Octahedron mesh beside a mirror sphere"},
		build: newOctahedronScene,
	},
	{
		info:  SceneInfo{ID: "orbit", Name: "Orbit", Description: "Default scene with the camera circling the cube over the frames"},
		build: NewOrbitScene,
	},
}

func newOctahedronScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	return NewMeshScene(nil, cameraOverrides...)
}

// Names returns the IDs of the built-in scenes
func Names() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.info.ID
	}
	return names
}

// Create builds a scene by built-in ID, or loads it when name is a path to a YAML file
func Create(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == name {
			return b.build(cameraOverrides...), nil
		}
	}

	if isSceneFile(name) {
		s, err := LoadFile(name)
		if err != nil {
			return nil, err
		}
		s.CameraConfig = mergeOverrides(s.CameraConfig, cameraOverrides)
		if len(cameraOverrides) > 0 {
			rebuild := s.rebuild
			s.rebuild = func() *Scene {
				rebuilt := rebuild()
				rebuilt.CameraConfig = mergeOverrides(rebuilt.CameraConfig, cameraOverrides)
				return rebuilt
			}
		}
		return s, nil
	}

	return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
}

// BuiltinScenes returns metadata for the built-in scenes
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtins))
	for i, b := range builtins {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtinGroup
		info.Type = "builtin"
		infos[i] = info
	}
	return infos
}

// ListFileScenes scans dir for YAML scene files. A missing directory yields no scenes.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(expanded); err != nil {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(expanded, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, path := range files {
		scenes = append(scenes, ParseMetadata(path))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseMetadata reads the name, description and group of a scene file.
// Fields that are missing or unreadable fall back to values derived from the file name.
func ParseMetadata(path string) SceneInfo {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:       path,
		Name:     titleCase(base),
		Group:    "Scene Files",
		Type:     "file",
		FilePath: path,
	}

	var header struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Group       string `yaml:"group"`
	}
	if data, err := os.ReadFile(path); err == nil && yaml.Unmarshal(data, &header) == nil {
		if header.Name != "" {
			info.Name = header.Name
		}
		if header.Group != "" {
			info.Group = header.Group
		}
		info.Description = header.Description
	}

	info.DisplayName = info.Name
	return info
}

// ListAllScenes returns built-in and file scenes grouped by category,
// built-in scenes first and other groups alphabetically
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}
	allScenes := append(BuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, ok := groupMap[builtinGroup]; ok {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: group})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}
	return response, nil
}

func isSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}
