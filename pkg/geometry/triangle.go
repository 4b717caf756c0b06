package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Triangle represents a single flat-shaded triangle defined by three vertices
type Triangle struct {
	V0, V1, V2   core.Vec3         // The three vertices
	Material     material.Material // Material of the triangle
	edge1, edge2 core.Vec3         // Cached edges from V0
	normal       core.Vec3         // Cached face normal
}

// NewTriangle creates a new triangle from three vertices.
// The face normal follows the counter-clockwise winding V0 -> V1 -> V2.
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
		edge1:    edge1,
		edge2:    edge2,
		normal:   edge1.Cross(edge2).Normalize(),
	}
}

// Normal returns the triangle's face normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	const epsilon = 1e-8

	h := ray.Direction.Cross(t.edge2)
	det := t.edge1.Dot(h)

	// Ray lies in (or is nearly parallel to) the triangle's plane
	if det > -epsilon && det < epsilon {
		return false
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false
	}

	q := s.Cross(t.edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false
	}

	tHit := f * t.edge2.Dot(q)
	if tHit < tMin || tHit > tMax {
		return false
	}

	rec.T = tHit
	rec.Point = ray.At(tHit)
	rec.Material = t.Material
	rec.SetFaceNormal(ray, t.normal)

	return true
}
