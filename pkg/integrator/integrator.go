package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance carried back along ray, tracing at most depth bounces
	RayColor(ray core.Ray, world geometry.Primitive, depth int, sampler core.Sampler) core.Vec3
	// Sky returns the background seen along a ray that leaves the scene
	Sky(ray core.Ray) core.Vec3
}
