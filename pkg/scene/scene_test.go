package scene

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_Builtins(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Create(name)
			require.NoError(t, err)
			assert.Equal(t, name, s.Name)
			assert.Greater(t, s.GetPrimitiveCount(), 0)
			assert.Greater(t, s.CameraConfig.SamplesPerPixel, 0)
			assert.NotNil(t, s.Setup())
		})
	}
}

func TestCreate_UnknownScene(t *testing.T) {
	_, err := Create("cornell-box")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "two-spheres")
}

func TestNewDefaultScene_Contents(t *testing.T) {
	s := NewDefaultScene()
	require.Len(t, s.World.Primitives, 8)

	var hollow []*geometry.Sphere
	var planes, boxes int
	for _, p := range s.World.Primitives {
		switch obj := p.(type) {
		case *geometry.Sphere:
			if obj.Center == core.NewVec3(-0.25, 0.75, -0.42) {
				hollow = append(hollow, obj)
			}
		case *geometry.Plane:
			planes++
			assert.True(t, obj.SingleSided)
		case *geometry.Box:
			boxes++
		}
	}

	require.Len(t, hollow, 2)
	assert.Positive(t, hollow[0].Radius)
	assert.Negative(t, hollow[1].Radius)
	assert.Equal(t, 1, planes)
	assert.Equal(t, 1, boxes)
}

func TestNewDefaultScene_CameraOverrides(t *testing.T) {
	s := NewDefaultScene(renderer.CameraConfig{VFov: 60, SamplesPerPixel: 4})

	assert.Equal(t, 60.0, s.CameraConfig.VFov)
	assert.Equal(t, 4, s.CameraConfig.SamplesPerPixel)
	// Untouched fields keep their defaults
	assert.Equal(t, core.NewVec3(0, 0.75, 2), s.CameraConfig.Eye)
	assert.Equal(t, 0.02, s.CameraConfig.Aperture)
}

func TestMergeCameraConfig(t *testing.T) {
	base := renderer.CameraConfig{
		Eye:         core.NewVec3(1, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		VFov:        40,
		AspectRatio: 2,
	}
	merged := MergeCameraConfig(base, renderer.CameraConfig{LookAt: core.NewVec3(0, 1, 0), Aperture: 0.5})

	assert.Equal(t, core.NewVec3(1, 2, 3), merged.Eye)
	assert.Equal(t, core.NewVec3(0, 1, 0), merged.LookAt)
	assert.Equal(t, 40.0, merged.VFov)
	assert.Equal(t, 2.0, merged.AspectRatio)
	assert.Equal(t, 0.5, merged.Aperture)
}

func TestScene_StaticSetupSharesWorld(t *testing.T) {
	s := NewTwoSpheresScene()
	setup := s.Setup()

	world0, camera0 := setup(renderer.FrameState{Frame: 0, Frames: 2})
	world1, camera1 := setup(renderer.FrameState{Frame: 1, Frames: 2, Time: 0.5})

	assert.Same(t, s.World, world0)
	assert.Same(t, world0, world1)
	assert.Same(t, camera0, camera1)
}

func TestOrbit_Eye(t *testing.T) {
	orbit := Orbit{Center: core.NewVec3(0, 1, 0), Radius: 2, Height: 0.5}

	tests := []struct {
		time float64
		eye  core.Vec3
	}{
		{0, core.NewVec3(0, 1.5, 2)},
		{0.25, core.NewVec3(2, 1.5, 0)},
		{0.5, core.NewVec3(0, 1.5, -2)},
	}

	for _, tt := range tests {
		eye := orbit.Eye(tt.time)
		assert.InDelta(t, tt.eye.X, eye.X, 1e-12, "time %v", tt.time)
		assert.InDelta(t, tt.eye.Y, eye.Y, 1e-12, "time %v", tt.time)
		assert.InDelta(t, tt.eye.Z, eye.Z, 1e-12, "time %v", tt.time)
	}

	twice := Orbit{Center: orbit.Center, Radius: 2, Height: 0.5, Turns: 2}
	assert.InDelta(t, orbit.Eye(0.5).Z, twice.Eye(0.25).Z, 1e-12)
}

func TestOrbitScene_RebuildsPerFrame(t *testing.T) {
	s := NewOrbitScene(renderer.CameraConfig{AspectRatio: 1})
	setup := s.Setup()

	world0, camera0 := setup(renderer.FrameState{Frame: 0, Frames: 4, Time: 0})
	world1, camera1 := setup(renderer.FrameState{Frame: 1, Frames: 4, Time: 0.25})

	assert.NotSame(t, world0, world1)
	assert.NotSame(t, s.World, world0)
	assert.Equal(t, s.GetPrimitiveCount(), countPrimitives(world1))

	assert.Equal(t, s.Orbit.Eye(0), camera0.Config().Eye)
	assert.Equal(t, s.Orbit.Eye(0.25), camera1.Config().Eye)
	assert.Equal(t, s.Orbit.Center, camera1.Config().LookAt)
	assert.Equal(t, 1.0, camera1.Config().AspectRatio)

	// Looking at the orbit center from any position
	ray := camera1.GetRay(0.5, 0.5, core.Vec2{})
	toCenter := s.Orbit.Center.Subtract(ray.Origin).Normalize()
	assert.InDelta(t, 1.0, ray.Direction.Normalize().Dot(toCenter), 1e-9)
}

func TestNewMeshScene(t *testing.T) {
	s := NewMeshScene(nil)
	// 8 octahedron faces, a sphere and the ground
	assert.Equal(t, 10, s.GetPrimitiveCount())

	mat := material.NewLambertian(core.NewVec3(1, 1, 1))
	tri := geometry.NewMesh(
		[]core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		[]int{0, 1, 2}, mat)
	assert.Equal(t, 3, NewMeshScene(tri).GetPrimitiveCount())
}

func TestOctahedronMesh_HitFromAllAxes(t *testing.T) {
	mesh := NewOctahedronMesh(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(1, 1, 1)))
	require.Equal(t, 8, mesh.Len())

	for _, dir := range []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	} {
		// Aim slightly off the vertex so the ray meets a face interior
		origin := dir.Multiply(-5).Add(core.NewVec3(0.01, 0.02, 0.03))
		var rec material.HitRecord
		require.True(t, mesh.Hit(core.NewRay(origin, dir), 0.001, math.Inf(1), &rec), "direction %v", dir)
		assert.Less(t, rec.Normal.Dot(dir), 0.0)
	}
}

func TestFitVertices(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(10, 5, 2),
		core.NewVec3(14, 7, 3),
		core.NewVec3(12, 6, 6),
	}
	FitVertices(vertices, 2)

	// Largest extent is 4 along X, so scale is 0.5; anchor is (12, 5, 4)
	assert.Equal(t, core.NewVec3(-1, 0, -1), vertices[0])
	assert.Equal(t, core.NewVec3(1, 1, -0.5), vertices[1])
	assert.Equal(t, core.NewVec3(0, 0.5, 1), vertices[2])

	FitVertices(nil, 1)
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"éclair-ÜBER", "Éclair Über"},
		{"ärger", "Ärger"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, titleCase(tc.input))
		})
	}
}
