package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box represents an axis-aligned box between two corners
type Box struct {
	Min, Max core.Vec3         // Opposite corners, Min <= Max on every axis
	Material material.Material // Material for all faces
}

// NewBox creates a box centred on center with the given width (X), height (Y) and depth (Z)
func NewBox(center core.Vec3, width, height, depth float64, mat material.Material) *Box {
	half := core.NewVec3(width/2, height/2, depth/2)
	return NewBoxFromCorners(center.Subtract(half), center.Add(half), mat)
}

// NewBoxFromCorners creates a box spanning two arbitrary opposite corners
func NewBoxFromCorners(a, b core.Vec3, mat material.Material) *Box {
	return &Box{
		Min:      core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)),
		Max:      core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)),
		Material: mat,
	}
}

// Center returns the midpoint of the box
func (b *Box) Center() core.Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// slabs intersects the ray with the three slabs (Smits' method) and returns the entry and
// exit distances together with the axis that produced each. ok is false when the slab
// intervals do not overlap.
func (b *Box) slabs(ray core.Ray) (tNear, tFar float64, nearAxis, farAxis int, ok bool) {
	tNear, tFar = math.Inf(-1), math.Inf(1)
	nearAxis, farAxis = -1, -1

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		dir := ray.Direction.Axis(axis)
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)

		if dir == 0 {
			// Parallel to this slab: either always inside it or never
			if origin < lo || origin > hi {
				return 0, 0, -1, -1, false
			}
			continue
		}

		invD := 1.0 / dir
		t0 := (lo - origin) * invD
		t1 := (hi - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tNear {
			tNear, nearAxis = t0, axis
		}
		if t1 < tFar {
			tFar, farAxis = t1, axis
		}
		if tNear > tFar {
			return 0, 0, -1, -1, false
		}
	}

	return tNear, tFar, nearAxis, farAxis, nearAxis >= 0
}

// overlaps reports whether the ray's path through the box shares any of [tMin, tMax]
func (b *Box) overlaps(ray core.Ray, tMin, tMax float64) bool {
	tNear, tFar, _, _, ok := b.slabs(ray)
	return ok && math.Max(tNear, tMin) <= math.Min(tFar, tMax)
}

// Hit tests if a ray intersects with a face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	tNear, tFar, nearAxis, farAxis, ok := b.slabs(ray)
	if !ok {
		return false
	}

	// Rays starting inside the box hit the exit face
	t, axis := tNear, nearAxis
	if t < tMin {
		t, axis = tFar, farAxis
	}
	if t < tMin || t > tMax {
		return false
	}

	rec.T = t
	rec.Point = ray.At(t)
	rec.Material = b.Material

	// The face normal points along the governing axis, away from the centre
	var outwardNormal core.Vec3
	sign := 1.0
	if rec.Point.Axis(axis) < b.Center().Axis(axis) {
		sign = -1.0
	}
	switch axis {
	case 0:
		outwardNormal = core.NewVec3(sign, 0, 0)
	case 1:
		outwardNormal = core.NewVec3(0, sign, 0)
	default:
		outwardNormal = core.NewVec3(0, 0, sign)
	}
	rec.SetFaceNormal(ray, outwardNormal)

	return true
}
