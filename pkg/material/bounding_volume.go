package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// BoundingVolume is attached to primitives that only gate intersection tests.
// It continues the ray unchanged with white attenuation so it never shows up in an image.
type BoundingVolume struct{}

// Scatter passes the ray straight through the hit point
func (BoundingVolume) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, rayIn.Direction),
		Attenuation: core.NewVec3(1, 1, 1),
	}, true
}

func (BoundingVolume) isMaterial() {}
