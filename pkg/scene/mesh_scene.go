package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewMeshScene places a mesh on a ground plane next to a mirror sphere.
// A nil mesh uses a built-in octahedron.
func NewMeshScene(mesh *geometry.Mesh, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Eye:             core.NewVec3(0, 1.2, 3),
		LookAt:          core.NewVec3(0, 0.6, 0),
		Up:              core.NewVec3(0, 1, 0),
		AspectRatio:     16.0 / 9.0,
		VFov:            35.0,
		SamplesPerPixel: 64,
	}

	if mesh == nil {
		mesh = NewOctahedronMesh(core.NewVec3(0, 0.6, 0), 0.6, material.NewLambertian(core.NewVec3(0.2, 0.4, 0.8)))
	}

	world := geometry.NewList(
		mesh,
		geometry.NewSphere(core.NewVec3(1.3, 0.4, -0.6), 0.4, material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.05)),
		geometry.NewSingleSidedPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0),
			material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	s := &Scene{
		Name:         "mesh",
		World:        world,
		CameraConfig: mergeOverrides(defaultCameraConfig, cameraOverrides),
	}
	s.rebuild = func() *Scene { return NewMeshScene(mesh, cameraOverrides...) }
	return s
}

// NewOctahedronMesh creates a regular octahedron with the given center and circumradius
func NewOctahedronMesh(center core.Vec3, radius float64, mat material.Material) *geometry.Mesh {
	vertices := []core.Vec3{
		center.Add(core.NewVec3(radius, 0, 0)),
		center.Add(core.NewVec3(-radius, 0, 0)),
		center.Add(core.NewVec3(0, radius, 0)),
		center.Add(core.NewVec3(0, -radius, 0)),
		center.Add(core.NewVec3(0, 0, radius)),
		center.Add(core.NewVec3(0, 0, -radius)),
	}
	faces := []int{
		0, 2, 4, 4, 2, 1, 1, 2, 5, 5, 2, 0,
		0, 4, 3, 4, 1, 3, 1, 5, 3, 5, 0, 3,
	}
	return geometry.NewMesh(vertices, faces, mat)
}

// LoadMesh reads a PLY file and scales it uniformly so its largest extent equals size,
// resting its lowest point on y = 0 and centering it on the Y axis
func LoadMesh(path string, size float64, mat material.Material) (*geometry.Mesh, error) {
	data, err := loaders.LoadPLY(path)
	if err != nil {
		return nil, err
	}
	FitVertices(data.Vertices, size)
	return data.Mesh(mat), nil
}

// FitVertices rescales vertices in place as described by LoadMesh
func FitVertices(vertices []core.Vec3, size float64) {
	if len(vertices) == 0 {
		return
	}

	lo := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for _, v := range vertices {
		lo = core.NewVec3(math.Min(lo.X, v.X), math.Min(lo.Y, v.Y), math.Min(lo.Z, v.Z))
		hi = core.NewVec3(math.Max(hi.X, v.X), math.Max(hi.Y, v.Y), math.Max(hi.Z, v.Z))
	}

	extent := hi.Subtract(lo)
	largest := math.Max(extent.X, math.Max(extent.Y, extent.Z))
	scale := 1.0
	if largest > 0 {
		scale = size / largest
	}

	anchor := core.NewVec3((lo.X+hi.X)/2, lo.Y, (lo.Z+hi.Z)/2)
	for i, v := range vertices {
		vertices[i] = v.Subtract(anchor).Multiply(scale)
	}
}
