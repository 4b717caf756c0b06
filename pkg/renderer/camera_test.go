package renderer

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func assertVecNear(t *testing.T, expected, actual core.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "X of %v", actual)
	assert.InDelta(t, expected.Y, actual.Y, delta, "Y of %v", actual)
	assert.InDelta(t, expected.Z, actual.Z, delta, "Z of %v", actual)
}

func forwardCameraConfig() CameraConfig {
	return CameraConfig{
		Eye:         core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 1.0,
	}
}

func TestCamera_Basis(t *testing.T) {
	camera := NewCamera(forwardCameraConfig())
	u, v, w := camera.Basis()

	assertVecNear(t, core.NewVec3(1, 0, 0), u, 1e-12)
	assertVecNear(t, core.NewVec3(0, 1, 0), v, 1e-12)
	assertVecNear(t, core.NewVec3(0, 0, 1), w, 1e-12)
	assert.InDelta(t, 1.0, camera.FocusDistance(), 1e-12)
}

func TestCamera_BasisIsOrthonormalForArbitraryPose(t *testing.T) {
	config := forwardCameraConfig()
	config.Eye = core.NewVec3(13, 2, 3)
	config.LookAt = core.NewVec3(0, 0, 0)
	camera := NewCamera(config)
	u, v, w := camera.Basis()

	for _, axis := range []core.Vec3{u, v, w} {
		assert.InDelta(t, 1.0, axis.Length(), 1e-12)
	}
	assert.InDelta(t, 0.0, u.Dot(v), 1e-12)
	assert.InDelta(t, 0.0, v.Dot(w), 1e-12)
	assert.InDelta(t, 0.0, w.Dot(u), 1e-12)
}

func TestCamera_GetRayViewport(t *testing.T) {
	camera := NewCamera(forwardCameraConfig())

	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"right edge", 1, 0.5, core.NewVec3(1, 0, -1)},
		{"top edge", 0.5, 1, core.NewVec3(0, 1, -1)},
		{"lower left", 0, 0, core.NewVec3(-1, -1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, core.Vec2{})
			assert.Equal(t, core.Vec3{}, ray.Origin)
			assertVecNear(t, tt.direction, ray.Direction, 1e-12)
		})
	}
}

func TestCamera_PinholeIgnoresLensSample(t *testing.T) {
	config := forwardCameraConfig()
	config.Eye = core.NewVec3(1, 2, 3)
	config.LookAt = core.NewVec3(-1, 0, -4)
	config.Aperture = 0
	camera := NewCamera(config)
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		s, tt := random.Float64(), random.Float64()
		reference := camera.GetRay(s, tt, core.Vec2{})
		lens := core.NewVec2(2*random.Float64()-1, 2*random.Float64()-1)

		// Bit-identical, not merely close
		assert.Equal(t, reference, camera.GetRay(s, tt, lens))
	}
}

func TestCamera_ThinLensRaysConvergeOnFocusPlane(t *testing.T) {
	config := forwardCameraConfig()
	config.Aperture = 2.0
	config.FocusDistance = 3.0
	camera := NewCamera(config)
	assert.Equal(t, 1.0, camera.LensRadius())

	center := camera.GetRay(0.3, 0.7, core.Vec2{})
	offset := camera.GetRay(0.3, 0.7, core.NewVec2(0.5, -0.5))

	assert.NotEqual(t, center.Origin, offset.Origin)
	assertVecNear(t, core.NewVec3(0.5, -0.5, 0), offset.Origin, 1e-12)
	// Every lens position sees the same point at t = 1
	assertVecNear(t, center.At(1), offset.At(1), 1e-12)
	assert.InDelta(t, -3.0, center.At(1).Z, 1e-12)
}

func TestCamera_PositionCameraRecomputes(t *testing.T) {
	camera := NewCamera(forwardCameraConfig())

	camera.PositionCamera(core.NewVec3(5, 0, 0), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	u, _, w := camera.Basis()
	assertVecNear(t, core.NewVec3(1, 0, 0), w, 1e-12)
	assertVecNear(t, core.NewVec3(0, 0, -1), u, 1e-12)
	assert.InDelta(t, 5.0, camera.FocusDistance(), 1e-12)

	ray := camera.GetRay(0.5, 0.5, core.Vec2{})
	assert.Equal(t, core.NewVec3(5, 0, 0), ray.Origin)
	assertVecNear(t, core.NewVec3(-5, 0, 0), ray.Direction, 1e-12)
	assert.Equal(t, core.NewVec3(5, 0, 0), camera.Config().Eye)
}
