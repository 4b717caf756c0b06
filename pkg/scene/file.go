package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// File is the YAML description of a scene
type File struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Group       string                  `yaml:"group"`
	Camera      CameraFile              `yaml:"camera"`
	Materials   map[string]MaterialFile `yaml:"materials"`
	Objects     []ObjectFile            `yaml:"objects"`
	Orbit       *OrbitFile              `yaml:"orbit"`
}

// CameraFile describes the camera. Omitted fields keep renderer defaults.
type CameraFile struct {
	Eye             Vec     `yaml:"eye"`
	LookAt          Vec     `yaml:"look_at"`
	Up              Vec     `yaml:"up"`
	VFov            float64 `yaml:"vfov"`
	AspectRatio     float64 `yaml:"aspect_ratio"`
	Aperture        float64 `yaml:"aperture"`
	FocusDistance   float64 `yaml:"focus_distance"`
	SamplesPerPixel int     `yaml:"samples_per_pixel"`
}

// MaterialFile describes a named material
type MaterialFile struct {
	Type   string  `yaml:"type"` // lambertian, metal or dielectric
	Albedo Vec     `yaml:"albedo"`
	Fuzz   float64 `yaml:"fuzz"`
	IOR    float64 `yaml:"ior"`
}

// ObjectFile describes one primitive. Which fields apply depends on Type.
type ObjectFile struct {
	Type     string `yaml:"type"` // sphere, plane, box, triangle or mesh
	Material string `yaml:"material"`

	Center Vec     `yaml:"center"`
	Radius float64 `yaml:"radius"`

	Point       Vec  `yaml:"point"`
	Normal      Vec  `yaml:"normal"`
	SingleSided bool `yaml:"single_sided"`

	Size Vec `yaml:"size"` // Box width, height, depth
	Min  Vec `yaml:"min"`
	Max  Vec `yaml:"max"`

	Vertices []Vec `yaml:"vertices"`
	Faces    []int `yaml:"faces"`

	File      string  `yaml:"file"`      // PLY mesh, relative to the scene file
	Fit       float64 `yaml:"fit"`       // Rescale the mesh to this largest extent
	Translate Vec     `yaml:"translate"` // Applied to mesh vertices after fitting
}

// OrbitFile describes an animated camera orbit
type OrbitFile struct {
	Center Vec     `yaml:"center"`
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
	Turns  float64 `yaml:"turns"`
}

// Vec is a three-component vector written as a YAML sequence
type Vec []float64

func (v Vec) toVec3(field string) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("%s: expected 3 components, got %d", field, len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func (v Vec) toVec3Or(field string, fallback core.Vec3) (core.Vec3, error) {
	if v == nil {
		return fallback, nil
	}
	return v.toVec3(field)
}

// LoadFile reads a YAML scene file. Mesh paths are resolved relative to the file.
func LoadFile(path string) (*Scene, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand scene path: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := Parse(bytes.NewReader(data), filepath.Dir(expanded))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML scene description. baseDir resolves relative mesh paths.
func Parse(r io.Reader, baseDir string) (*Scene, error) {
	var file File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty scene file")
		}
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return file.Build(baseDir)
}

// Build constructs the scene. PLY meshes are loaded once and shared by rebuilt copies.
func (f *File) Build(baseDir string) (*Scene, error) {
	meshes := make(map[int]*geometry.Mesh)
	s, err := f.build(baseDir, meshes)
	if err != nil {
		return nil, err
	}
	s.rebuild = func() *Scene {
		rebuilt, err := f.build(baseDir, meshes)
		if err != nil {
			// The same description already built successfully once
			panic(fmt.Sprintf("rebuilding scene %q: %v", f.Name, err))
		}
		return rebuilt
	}
	return s, nil
}

func (f *File) build(baseDir string, meshes map[int]*geometry.Mesh) (*Scene, error) {
	cameraConfig, err := f.Camera.config()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	materials := make(map[string]material.Material, len(f.Materials))
	for name, m := range f.Materials {
		mat, err := m.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	world := geometry.NewList()
	for i, obj := range f.Objects {
		mat, ok := materials[obj.Material]
		if !ok {
			return nil, fmt.Errorf("object %d (%s): unknown material %q", i, obj.Type, obj.Material)
		}

		var prim geometry.Primitive
		if obj.Type == "mesh" && obj.File != "" {
			if cached, ok := meshes[i]; ok {
				prim = cached
			} else {
				mesh, err := obj.loadMesh(baseDir, mat)
				if err != nil {
					return nil, fmt.Errorf("object %d (mesh): %w", i, err)
				}
				meshes[i] = mesh
				prim = mesh
			}
		} else {
			prim, err = obj.build(mat)
			if err != nil {
				return nil, fmt.Errorf("object %d (%s): %w", i, obj.Type, err)
			}
		}
		world.Add(prim)
	}

	name := f.Name
	if name == "" {
		name = "file"
	}
	s := &Scene{Name: name, World: world, CameraConfig: cameraConfig}

	if f.Orbit != nil {
		center, err := f.Orbit.Center.toVec3Or("orbit.center", cameraConfig.LookAt)
		if err != nil {
			return nil, err
		}
		s.Orbit = &Orbit{Center: center, Radius: f.Orbit.Radius, Height: f.Orbit.Height, Turns: f.Orbit.Turns}
	}
	return s, nil
}

func (c CameraFile) config() (renderer.CameraConfig, error) {
	eye, err := c.Eye.toVec3Or("eye", core.NewVec3(0, 0, 0))
	if err != nil {
		return renderer.CameraConfig{}, err
	}
	lookAt, err := c.LookAt.toVec3Or("look_at", core.NewVec3(0, 0, -1))
	if err != nil {
		return renderer.CameraConfig{}, err
	}
	up, err := c.Up.toVec3Or("up", core.NewVec3(0, 1, 0))
	if err != nil {
		return renderer.CameraConfig{}, err
	}

	vfov := c.VFov
	if vfov == 0 {
		vfov = 90
	}
	if vfov < 0 || vfov >= 180 {
		return renderer.CameraConfig{}, fmt.Errorf("vfov must be in (0, 180), got %g", vfov)
	}
	if c.Aperture < 0 {
		return renderer.CameraConfig{}, fmt.Errorf("aperture must not be negative, got %g", c.Aperture)
	}

	return renderer.CameraConfig{
		Eye:             eye,
		LookAt:          lookAt,
		Up:              up,
		VFov:            vfov,
		AspectRatio:     c.AspectRatio,
		Aperture:        c.Aperture,
		FocusDistance:   c.FocusDistance,
		SamplesPerPixel: c.SamplesPerPixel,
	}, nil
}

func (m MaterialFile) build() (material.Material, error) {
	albedo, err := m.Albedo.toVec3Or("albedo", core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}

	switch m.Type {
	case "lambertian":
		return material.NewLambertian(albedo), nil
	case "metal":
		return material.NewMetal(albedo, m.Fuzz), nil
	case "dielectric":
		if m.IOR <= 0 {
			return nil, fmt.Errorf("dielectric needs a positive ior, got %g", m.IOR)
		}
		return material.NewDielectric(albedo, m.IOR), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

func (o ObjectFile) build(mat material.Material) (geometry.Primitive, error) {
	switch o.Type {
	case "sphere":
		center, err := o.Center.toVec3("center")
		if err != nil {
			return nil, err
		}
		if o.Radius == 0 {
			return nil, fmt.Errorf("radius must be non-zero")
		}
		return geometry.NewSphere(center, o.Radius, mat), nil

	case "plane":
		point, err := o.Point.toVec3Or("point", core.Vec3{})
		if err != nil {
			return nil, err
		}
		normal, err := o.Normal.toVec3("normal")
		if err != nil {
			return nil, err
		}
		if normal.NearZero() {
			return nil, fmt.Errorf("normal must be non-zero")
		}
		if o.SingleSided {
			return geometry.NewSingleSidedPlane(point, normal, mat), nil
		}
		return geometry.NewPlane(point, normal, mat), nil

	case "box":
		if o.Min != nil || o.Max != nil {
			lo, err := o.Min.toVec3("min")
			if err != nil {
				return nil, err
			}
			hi, err := o.Max.toVec3("max")
			if err != nil {
				return nil, err
			}
			return geometry.NewBoxFromCorners(lo, hi, mat), nil
		}
		center, err := o.Center.toVec3("center")
		if err != nil {
			return nil, err
		}
		size, err := o.Size.toVec3("size")
		if err != nil {
			return nil, err
		}
		return geometry.NewBox(center, size.X, size.Y, size.Z, mat), nil

	case "triangle":
		if len(o.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(o.Vertices))
		}
		v, err := o.vertices()
		if err != nil {
			return nil, err
		}
		return geometry.NewTriangle(v[0], v[1], v[2], mat), nil

	case "mesh":
		v, err := o.vertices()
		if err != nil {
			return nil, err
		}
		if len(o.Faces) == 0 || len(o.Faces)%3 != 0 {
			return nil, fmt.Errorf("faces must hold a positive multiple of 3 indices, got %d", len(o.Faces))
		}
		for _, idx := range o.Faces {
			if idx < 0 || idx >= len(v) {
				return nil, fmt.Errorf("face index %d out of range for %d vertices", idx, len(v))
			}
		}
		if err := o.transform(v); err != nil {
			return nil, err
		}
		return geometry.NewMesh(v, o.Faces, mat), nil

	default:
		return nil, fmt.Errorf("unknown object type %q", o.Type)
	}
}

func (o ObjectFile) vertices() ([]core.Vec3, error) {
	vertices := make([]core.Vec3, len(o.Vertices))
	for i, v := range o.Vertices {
		vec, err := v.toVec3(fmt.Sprintf("vertices[%d]", i))
		if err != nil {
			return nil, err
		}
		vertices[i] = vec
	}
	return vertices, nil
}

func (o ObjectFile) transform(vertices []core.Vec3) error {
	if o.Fit > 0 {
		FitVertices(vertices, o.Fit)
	}
	offset, err := o.Translate.toVec3Or("translate", core.Vec3{})
	if err != nil {
		return err
	}
	for i := range vertices {
		vertices[i] = vertices[i].Add(offset)
	}
	return nil
}

func (o ObjectFile) loadMesh(baseDir string, mat material.Material) (*geometry.Mesh, error) {
	path, err := homedir.Expand(o.File)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	data, err := loaders.LoadPLY(path)
	if err != nil {
		return nil, err
	}
	if data.TriangleCount() == 0 {
		return nil, fmt.Errorf("%s has no faces", o.File)
	}
	if err := o.transform(data.Vertices); err != nil {
		return nil, err
	}
	return data.Mesh(mat), nil
}
