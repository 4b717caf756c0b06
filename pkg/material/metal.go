package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// MaxFuzz is the largest fuzz a Metal accepts; fuzz lies in [0, 1)
var MaxFuzz = math.Nextafter(1, 0)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Vec3 // Metal color
	Fuzz   float64   // 0.0 = perfect mirror, approaching 1.0 = very fuzzy
}

// NewMetal creates a new metal material, clamping fuzz into [0, MaxFuzz]
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	fuzz = max(0, min(fuzz, MaxFuzz))
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter implements the Material interface for metal scattering. The ray always
// continues, even when fuzz tips the reflection below the surface.
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)

	if m.Fuzz > 0 {
		reflected = reflected.Add(sampler.InUnitSphere().Multiply(m.Fuzz))
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: m.Albedo,
	}, true
}

func (*Metal) isMaterial() {}
