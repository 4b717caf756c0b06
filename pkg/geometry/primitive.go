package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Primitive is anything a ray can be tested against.
//
// Hit reports whether the ray intersects the primitive at some t in [tMin, tMax] and, if so,
// fills rec with the nearest such intersection. rec is left untouched on a miss.
// The set of primitives is closed: Sphere, Plane, Box, Triangle, Mesh and List.
type Primitive interface {
	Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool

	isPrimitive()
}

func (*Sphere) isPrimitive()   {}
func (*Plane) isPrimitive()    {}
func (*Box) isPrimitive()      {}
func (*Triangle) isPrimitive() {}
func (*Mesh) isPrimitive()     {}
func (*List) isPrimitive()     {}
