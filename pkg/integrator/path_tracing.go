package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// DefaultTMin offsets continuation rays from the surface they left (shadow acne)
const DefaultTMin = 0.001

var (
	skyHorizon = core.NewVec3(1.0, 1.0, 1.0)
	skyZenith  = core.NewVec3(0.5, 0.7, 1.0)
)

// Config controls the path tracer
type Config struct {
	TMin     float64 // Minimum hit distance; zero means DefaultTMin
	GammaSky bool    // Square-root the sky colour before it is attenuated
}

// PathTracingIntegrator implements recursive unidirectional path tracing under a sky gradient
type PathTracingIntegrator struct {
	tMin     float64
	gammaSky bool
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	tMin := config.TMin
	if tMin <= 0 {
		tMin = DefaultTMin
	}
	return &PathTracingIntegrator{
		tMin:     tMin,
		gammaSky: config.GammaSky,
	}
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Primitive, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	var hit material.HitRecord
	if !world.Hit(ray, pt.tMin, math.Inf(1), &hit) {
		return pt.Sky(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(pt.RayColor(scatter.Scattered, world, depth-1, sampler))
}

// Sky returns the background colour seen along ray: white at the horizon blending to blue overhead
func (pt *PathTracingIntegrator) Sky(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	color := skyHorizon.Multiply(1.0 - a).Add(skyZenith.Multiply(a))
	if pt.gammaSky {
		color = color.GammaCorrect(2.0)
	}
	return color
}
