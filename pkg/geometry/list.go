package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// List is an aggregate of primitives tested by linear scan
type List struct {
	Primitives []Primitive
}

// NewList creates a list holding the given primitives
func NewList(primitives ...Primitive) *List {
	return &List{Primitives: primitives}
}

// Add appends primitives to the list
func (l *List) Add(primitives ...Primitive) {
	l.Primitives = append(l.Primitives, primitives...)
}

// Len returns the number of primitives in the list
func (l *List) Len() int {
	return len(l.Primitives)
}

// Hit returns the nearest hit among all members
func (l *List) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	var tempRec material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, p := range l.Primitives {
		if p.Hit(ray, tMin, closestSoFar, &tempRec) {
			hitAnything = true
			closestSoFar = tempRec.T
			*rec = tempRec
		}
	}

	return hitAnything
}
