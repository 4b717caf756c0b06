package core

import (
	"math/rand"
)

// Sampler provides the random numbers and directions consumed by the camera and materials.
// Implementations are not safe for concurrent use; every worker owns its own sampler.
type Sampler interface {
	// Get1D returns a value in [0, 1)
	Get1D() float64
	// Get2D returns two values in [0, 1)
	Get2D() Vec2
	// InUnitSphere returns a point approximately uniformly distributed over the unit ball
	InUnitSphere() Vec3
	// InUnitDisk returns a point in the unit disk of the z=0 plane
	InUnitDisk() Vec2
}

// RandomSampler wraps a standard Go random generator and uses rejection sampling
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// InUnitSphere rejection-samples the [-1,1]³ cube until a point lands inside the unit ball.
// The origin itself is rejected so callers may normalize the result.
func (r *RandomSampler) InUnitSphere() Vec3 {
	for {
		p := NewVec3(2*r.random.Float64()-1, 2*r.random.Float64()-1, 2*r.random.Float64()-1)
		if lsq := p.LengthSquared(); lsq > 0 && lsq < 1 {
			return p
		}
	}
}

// InUnitDisk rejection-samples the [-1,1]² square until a point lands inside the unit disk
func (r *RandomSampler) InUnitDisk() Vec2 {
	for {
		p := NewVec2(2*r.random.Float64()-1, 2*r.random.Float64()-1)
		if p.X*p.X+p.Y*p.Y < 1 {
			return p
		}
	}
}

// BlueNoiseSampler draws sphere directions from a precomputed low-discrepancy point set.
//
// The starting index comes from a seed derived from the pixel and sample index, so two
// samplers built with the same (row, col, sample) produce the same sequence. Scalar and disk
// samples come from a math/rand generator seeded with the same value.
type BlueNoiseSampler struct {
	points []Vec3
	index  int
	random *rand.Rand
}

// BlueNoiseSet selects one of the precomputed spherical point sets
type BlueNoiseSet int

const (
	BlueNoise64 BlueNoiseSet = iota // 64 points, the default
	BlueNoise16                     // 16 points, visibly more structured
)

func (s BlueNoiseSet) points() []Vec3 {
	if s == BlueNoise16 {
		return sphericalBlueNoise16
	}
	return sphericalBlueNoise64
}

// NewBlueNoiseSampler creates a sampler seeded from pixel coordinates and sample index
func NewBlueNoiseSampler(set BlueNoiseSet, row, col, sample int) *BlueNoiseSampler {
	points := set.points()
	seed := PixelSeed(row, col, sample)
	return &BlueNoiseSampler{
		points: points,
		index:  int(seed % uint64(len(points))),
		random: rand.New(rand.NewSource(int64(seed))),
	}
}

// Reseed repositions the sampler for a new pixel sample without reallocating it
func (b *BlueNoiseSampler) Reseed(row, col, sample int) {
	seed := PixelSeed(row, col, sample)
	b.index = int(seed % uint64(len(b.points)))
	b.random.Seed(int64(seed))
}

// Get1D returns a value in [0, 1)
func (b *BlueNoiseSampler) Get1D() float64 {
	return b.random.Float64()
}

// Get2D returns two values in [0, 1)
func (b *BlueNoiseSampler) Get2D() Vec2 {
	return NewVec2(b.random.Float64(), b.random.Float64())
}

// InUnitSphere returns the next point of the blue-noise set. Points lie on the unit sphere.
func (b *BlueNoiseSampler) InUnitSphere() Vec3 {
	p := b.points[b.index]
	b.index = (b.index + 1) % len(b.points)
	return p
}

// InUnitDisk rejection-samples the unit disk from the seeded generator
func (b *BlueNoiseSampler) InUnitDisk() Vec2 {
	for {
		p := NewVec2(2*b.random.Float64()-1, 2*b.random.Float64()-1)
		if p.X*p.X+p.Y*p.Y < 1 {
			return p
		}
	}
}

// PixelSeed mixes pixel coordinates and a sample index into a well-distributed 64-bit seed
// (splitmix64 finalizer).
func PixelSeed(row, col, sample int) uint64 {
	z := uint64(row)*0x9E3779B97F4A7C15 ^ uint64(col)*0xC2B2AE3D27D4EB4F ^ uint64(sample)*0x165667B19E3779F9
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// RandomUnitVector returns a unit-length direction from the sampler's sphere distribution
func RandomUnitVector(sampler Sampler) Vec3 {
	return sampler.InUnitSphere().Normalize()
}
