package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// boundsPadding keeps the bounding box of a flat mesh from collapsing to zero thickness
const boundsPadding = 1e-4

// Mesh is a triangle set guarded by a bounding box.
//
// Bounds carries the BoundingVolume material and is only used to reject rays cheaply; a Mesh
// never reports a hit on its bounds, only on its triangles.
type Mesh struct {
	Bounds    *Box
	Triangles *List
}

// NewMesh creates a mesh from vertices and face indices.
// faces holds one triple of vertex indices per triangle. Malformed index lists panic.
func NewMesh(vertices []core.Vec3, faces []int, mat material.Material) *Mesh {
	if len(faces)%3 != 0 {
		panic(fmt.Sprintf("face indices must be a multiple of 3, got %d", len(faces)))
	}

	triangles := NewList()
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				panic(fmt.Sprintf("face index %d out of bounds for %d vertices", idx, len(vertices)))
			}
		}
		triangles.Add(NewTriangle(vertices[i0], vertices[i1], vertices[i2], mat))
	}

	return &Mesh{
		Bounds:    boundsOf(vertices),
		Triangles: triangles,
	}
}

func boundsOf(vertices []core.Vec3) *Box {
	if len(vertices) == 0 {
		return NewBoxFromCorners(core.Vec3{}, core.Vec3{}, material.BoundingVolume{})
	}
	lo, hi := vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		lo = core.NewVec3(min(lo.X, v.X), min(lo.Y, v.Y), min(lo.Z, v.Z))
		hi = core.NewVec3(max(hi.X, v.X), max(hi.Y, v.Y), max(hi.Z, v.Z))
	}
	pad := core.NewVec3(boundsPadding, boundsPadding, boundsPadding)
	return NewBoxFromCorners(lo.Subtract(pad), hi.Add(pad), material.BoundingVolume{})
}

// Len returns the number of triangles in the mesh
func (m *Mesh) Len() int {
	return m.Triangles.Len()
}

// Hit tests the triangles only if the ray passes through the bounds within [tMin, tMax]
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	if m.Triangles.Len() == 0 || !m.Bounds.overlaps(ray, tMin, tMax) {
		return false
	}
	return m.Triangles.Hit(ray, tMin, tMax, rec)
}
