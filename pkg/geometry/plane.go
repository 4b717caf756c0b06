package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point       core.Vec3         // A point on the plane
	Normal      core.Vec3         // Unit normal
	SingleSided bool              // Reject hits from behind the normal
	Material    material.Material // Material of the plane
}

// NewPlane creates a new two-sided plane
func NewPlane(point, normal core.Vec3, mat material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: mat,
	}
}

// NewSingleSidedPlane creates a plane that is only visible from the side its normal faces
func NewSingleSidedPlane(point, normal core.Vec3, mat material.Material) *Plane {
	p := NewPlane(point, normal, mat)
	p.SingleSided = true
	return p
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel rays never hit. Without this check 0/0 would produce a NaN t that slips past
	// the range test below.
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	if p.SingleSided && denominator > 0 {
		return false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return false
	}

	rec.T = t
	rec.Point = ray.At(t)
	rec.Material = p.Material
	rec.SetFaceNormal(ray, p.Normal)

	return true
}
