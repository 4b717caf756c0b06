package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Orbit moves the camera on a horizontal circle around Center, always looking at Center.
// The position depends only on the frame time, so every worker computes the same camera.
type Orbit struct {
	Center core.Vec3
	Radius float64
	Height float64 // Eye height above Center
	Turns  float64 // Revolutions over the whole animation; 0 means 1
}

// Eye returns the camera position at time t in [0, 1).
// At t = 0 the camera sits on the +Z side of Center.
func (o Orbit) Eye(t float64) core.Vec3 {
	turns := o.Turns
	if turns == 0 {
		turns = 1
	}
	angle := 2 * math.Pi * turns * t
	return o.Center.Add(core.NewVec3(o.Radius*math.Sin(angle), o.Height, o.Radius*math.Cos(angle)))
}

// Setup returns a frame setup that builds a fresh scene for every call and places
// its camera on the orbit
func (o Orbit) Setup(build func() *Scene) renderer.FrameSetup {
	return func(state renderer.FrameState) (geometry.Primitive, *renderer.Camera) {
		s := build()
		camera := s.Camera()
		camera.PositionCamera(o.Eye(state.Time), o.Center, camera.Config().Up)
		return s.World, camera
	}
}
