package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates a scene with metal, diffuse and glass spheres, a cube and a ground plane
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Eye:             core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:          core.NewVec3(0, 0.5, -1),
		Up:              core.NewVec3(0, 1, 0),
		AspectRatio:     16.0 / 9.0,
		VFov:            40.0,
		Aperture:        0.02,
		FocusDistance:   0.0, // Auto-calculate focus distance
		SamplesPerPixel: 100,
	}
	cameraConfig := mergeOverrides(defaultCameraConfig, cameraOverrides)

	// Create materials
	fuzzyGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.25)
	diffuseRed := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	mirror := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	glass := material.NewClearDielectric(1.5)
	tintedGlass := material.NewDielectric(core.NewVec3(0.95, 0.95, 1.0), 1.5)
	diffusePurple := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.7))
	ground := material.NewLambertian(core.NewVec3(0.3, 0.3, 0.3))

	// Hollow glass: the inner shell has a negative radius so its normals face inward
	hollowCenter := core.NewVec3(-0.25, 0.75, -0.42)

	world := geometry.NewList(
		geometry.NewSphere(core.NewVec3(0.8, 0.5, -1), 0.5, fuzzyGold),
		geometry.NewSphere(core.NewVec3(-0.1, 0.25, -0.1), 0.25, diffuseRed),
		geometry.NewSphere(core.NewVec3(-0.8, 0.5, -1), 0.5, mirror),
		geometry.NewSphere(core.NewVec3(0.25, 0.75, -0.5), 0.1, glass),
		geometry.NewSphere(hollowCenter, 0.14, tintedGlass),
		geometry.NewSphere(hollowCenter, -0.13, tintedGlass),
		geometry.NewBox(core.NewVec3(0, 0.5, -1), 0.5, 0.5, 0.5, diffusePurple),
		geometry.NewSingleSidedPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground),
	)

	s := &Scene{
		Name:         "default",
		World:        world,
		CameraConfig: cameraConfig,
	}
	s.rebuild = func() *Scene { return NewDefaultScene(cameraOverrides...) }
	return s
}

// NewOrbitScene is the default scene with the camera circling the cube
func NewOrbitScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := NewDefaultScene(cameraOverrides...)
	s.Name = "orbit"
	s.Orbit = &Orbit{
		Center: core.NewVec3(0, 0.5, -1),
		Radius: 3,
		Height: 0.5,
		Turns:  1,
	}
	return s
}

// NewTwoSpheresScene creates a small diffuse sphere resting on a huge ground sphere,
// viewed from the origin down -Z
func NewTwoSpheresScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Eye:             core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		AspectRatio:     16.0 / 9.0,
		VFov:            90.0,
		SamplesPerPixel: 50,
	}

	world := geometry.NewList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
	)

	s := &Scene{
		Name:         "two-spheres",
		World:        world,
		CameraConfig: mergeOverrides(defaultCameraConfig, cameraOverrides),
	}
	s.rebuild = func() *Scene { return NewTwoSpheresScene(cameraOverrides...) }
	return s
}
