package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.List // Objects in the scene
	CameraConfig renderer.CameraConfig
	Orbit        *Orbit // Animated camera path; nil keeps the camera still

	// rebuild constructs an independent copy for per-frame setup
	rebuild func() *Scene
}

// Camera creates a camera from the scene's camera configuration
func (s *Scene) Camera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// Setup returns the frame setup the renderer calls from every worker.
// Still scenes share one world and camera. Orbiting scenes rebuild both for each frame.
func (s *Scene) Setup() renderer.FrameSetup {
	if s.Orbit == nil {
		return renderer.StaticSetup(s.World, s.Camera())
	}

	build := s.rebuild
	if build == nil {
		build = func() *Scene { return s }
	}
	return s.Orbit.Setup(build)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return countPrimitives(s.World)
}

func countPrimitives(p geometry.Primitive) int {
	switch obj := p.(type) {
	case *geometry.List:
		count := 0
		for _, child := range obj.Primitives {
			count += countPrimitives(child)
		}
		return count
	case *geometry.Mesh:
		return obj.Len()
	default:
		return 1
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override renderer.CameraConfig) renderer.CameraConfig {
	result := base
	zero := core.Vec3{}

	if override.Eye != zero {
		result.Eye = override.Eye
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	return result
}

func mergeOverrides(base renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	for _, o := range overrides {
		base = MergeCameraConfig(base, o)
	}
	return base
}
