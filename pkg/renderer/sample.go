package renderer

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// SampleMessage is one traced sample on its way from a worker to the accumulator
type SampleMessage struct {
	Row    int       // Image row, 0 at the top
	Col    int       // Image column, 0 at the left
	Color  core.Vec3 // Radiance estimate for this sample
	Sample int       // Sample index within the pixel, counted across frames
}
