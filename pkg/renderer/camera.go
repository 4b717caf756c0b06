package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Eye             core.Vec3 // Camera position
	LookAt          core.Vec3 // Point the camera is looking at
	Up              core.Vec3 // Up direction (usually (0,1,0))
	VFov            float64   // Vertical field of view in degrees
	AspectRatio     float64   // Width / height
	Aperture        float64   // Lens diameter; 0 gives a pinhole camera
	FocusDistance   float64   // Distance to the plane in focus; 0 means |Eye - LookAt|
	SamplesPerPixel int       // Requested samples per pixel
}

// Camera generates rays for rendering using a thin-lens model
type Camera struct {
	config CameraConfig

	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
	focusDistance   float64
	viewportWidth   float64
	viewportHeight  float64
}

// NewCamera creates a camera from configuration
func NewCamera(config CameraConfig) *Camera {
	if config.AspectRatio <= 0 {
		config.AspectRatio = 16.0 / 9.0
	}
	if config.Up == (core.Vec3{}) {
		config.Up = core.NewVec3(0, 1, 0)
	}

	theta := config.VFov * math.Pi / 180
	h := math.Tan(theta / 2)

	c := &Camera{
		config:         config,
		lensRadius:     config.Aperture / 2,
		viewportHeight: 2.0 * h,
	}
	c.viewportWidth = config.AspectRatio * c.viewportHeight
	c.PositionCamera(config.Eye, config.LookAt, config.Up)
	return c
}

// PositionCamera moves the camera and recomputes its basis and viewport from scratch
func (c *Camera) PositionCamera(eye, lookAt, up core.Vec3) {
	c.config.Eye, c.config.LookAt, c.config.Up = eye, lookAt, up

	c.w = eye.Subtract(lookAt).Normalize()
	c.u = up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	c.focusDistance = c.config.FocusDistance
	if c.focusDistance <= 0 {
		c.focusDistance = eye.Subtract(lookAt).Length()
	}

	c.origin = eye
	c.horizontal = c.u.Multiply(c.viewportWidth * c.focusDistance)
	c.vertical = c.v.Multiply(c.viewportHeight * c.focusDistance)
	c.lowerLeftCorner = c.origin.
		Subtract(c.horizontal.Multiply(0.5)).
		Subtract(c.vertical.Multiply(0.5)).
		Subtract(c.w.Multiply(c.focusDistance))
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1, measured from the
// lower-left corner. lens is a point in the unit disk; it is ignored when the aperture is zero.
func (c *Camera) GetRay(s, t float64, lens core.Vec2) core.Ray {
	offset := c.u.Multiply(lens.X * c.lensRadius).Add(c.v.Multiply(lens.Y * c.lensRadius))
	origin := c.origin.Add(offset)

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Config returns the camera configuration with the current pose
func (c *Camera) Config() CameraConfig {
	return c.config
}

// LensRadius returns half the aperture
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}

// FocusDistance returns the effective focus distance
func (c *Camera) FocusDistance() float64 {
	return c.focusDistance
}

// Basis returns the camera's right, up and backward unit vectors
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}
