package renderer

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ToneMap selects the curve that compresses linear radiance before clamping
type ToneMap string

const (
	ToneMapNone     ToneMap = "none"
	ToneMapReinhard ToneMap = "reinhard"
	ToneMapACES     ToneMap = "aces"
)

// ParseToneMap validates a tone map name. The empty string means none.
func ParseToneMap(name string) (ToneMap, error) {
	switch ToneMap(name) {
	case "", ToneMapNone:
		return ToneMapNone, nil
	case ToneMapReinhard, ToneMapACES:
		return ToneMap(name), nil
	}
	return ToneMapNone, fmt.Errorf("unknown tone map %q (want none, reinhard or aces)", name)
}

// Apply maps a linear colour channel by channel
func (tm ToneMap) Apply(c core.Vec3) core.Vec3 {
	switch tm {
	case ToneMapReinhard:
		return core.NewVec3(reinhard(c.X), reinhard(c.Y), reinhard(c.Z))
	case ToneMapACES:
		return core.NewVec3(aces(c.X), aces(c.Y), aces(c.Z))
	default:
		return c
	}
}

func reinhard(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return x / (1 + x)
}

// aces is the Narkowicz fit of the ACES filmic curve
func aces(x float64) float64 {
	if x <= 0 {
		return 0
	}
	const (
		a = 2.51
		b = 0.03
		c = 2.43
		d = 0.59
		e = 0.14
	)
	return x * (a*x + b) / (x*(c*x+d) + e)
}

// ColorOptions controls how accumulated radiance becomes 8-bit colour
type ColorOptions struct {
	Gamma   bool    // Apply gamma 2 (square root) after clamping
	ToneMap ToneMap // Optional curve applied before clamping
}

// maxChannel keeps 256*c below 256 so the integer conversion never wraps
const maxChannel = 0.999

// ToDisplay converts an averaged linear colour to 8-bit channels
func (o ColorOptions) ToDisplay(c core.Vec3) (r, g, b uint8) {
	c = o.ToneMap.Apply(c).Clamp(0, maxChannel)
	if o.Gamma {
		c = c.GammaCorrect(2.0)
	}
	return uint8(256 * c.X), uint8(256 * c.Y), uint8(256 * c.Z)
}
