package renderer

import (
	"image/color"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulator_CompletesAtExpectedCount(t *testing.T) {
	acc := NewAccumulator(2, 2, 8)

	for i := 0; i < 8; i++ {
		assert.False(t, acc.Complete())
		acc.Add(SampleMessage{Row: i % 2, Col: (i / 2) % 2, Color: core.NewVec3(1, 1, 1), Sample: i / 4})
	}

	assert.True(t, acc.Complete())
	assert.Equal(t, 8, acc.Received())
	assert.Equal(t, 8, acc.Expected())
}

func TestAccumulator_DropsOutOfBoundsMessages(t *testing.T) {
	acc := NewAccumulator(2, 2, 1)

	assert.False(t, acc.Add(SampleMessage{Row: 2, Col: 0}))
	assert.False(t, acc.Add(SampleMessage{Row: 0, Col: -1}))
	assert.Equal(t, 0, acc.Received())
}

func TestAccumulator_FinalizeRequiresCompletion(t *testing.T) {
	acc := NewAccumulator(1, 1, 2)
	acc.Add(SampleMessage{Color: core.NewVec3(0.5, 0.5, 0.5)})

	_, err := acc.Finalize(ColorOptions{})
	require.ErrorIs(t, err, ErrIncomplete)

	// Snapshot is always available
	assert.NotNil(t, acc.Snapshot(ColorOptions{}))
}

func TestAccumulator_FinalizeAveragesClampsAndGammaCorrects(t *testing.T) {
	acc := NewAccumulator(3, 1, 6)

	// Pixel 0 averages to 0.25
	acc.Add(SampleMessage{Row: 0, Col: 0, Color: core.NewVec3(0.5, 0.5, 0.5)})
	acc.Add(SampleMessage{Row: 0, Col: 0, Color: core.NewVec3(0, 0, 0)})
	// Pixel 1 is over-exposed in red and negative in blue
	acc.Add(SampleMessage{Row: 0, Col: 1, Color: core.NewVec3(4, 0, -1)})
	acc.Add(SampleMessage{Row: 0, Col: 1, Color: core.NewVec3(2, 0, -1)})
	// Pixel 2 is mid gray
	acc.Add(SampleMessage{Row: 0, Col: 2, Color: core.NewVec3(0.25, 0.25, 0.25)})
	acc.Add(SampleMessage{Row: 0, Col: 2, Color: core.NewVec3(0.25, 0.25, 0.25)})

	gamma, err := acc.Finalize(ColorOptions{Gamma: true})
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, gamma.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, gamma.RGBAAt(1, 0))

	linear, err := acc.Finalize(ColorOptions{Gamma: false})
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{64, 64, 64, 255}, linear.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, linear.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{64, 64, 64, 255}, linear.RGBAAt(2, 0))
}

func TestAccumulator_OrderIndependent(t *testing.T) {
	messages := []SampleMessage{
		{Row: 0, Col: 0, Color: core.NewVec3(0.5, 0, 0)},
		{Row: 0, Col: 0, Color: core.NewVec3(0, 0.5, 0)},
		{Row: 0, Col: 1, Color: core.NewVec3(0.125, 0.25, 0.5)},
		{Row: 0, Col: 0, Color: core.NewVec3(0, 0, 0.5)},
	}

	forward := NewAccumulator(2, 1, len(messages))
	backward := NewAccumulator(2, 1, len(messages))
	for i := range messages {
		forward.Add(messages[i])
		backward.Add(messages[len(messages)-1-i])
	}

	a, err := forward.Finalize(ColorOptions{Gamma: true})
	require.NoError(t, err)
	b, err := backward.Finalize(ColorOptions{Gamma: true})
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestAccumulator_Stats(t *testing.T) {
	acc := NewAccumulator(2, 1, 4)
	for i := 0; i < 3; i++ {
		acc.Add(SampleMessage{Row: 0, Col: 0})
	}
	acc.Add(SampleMessage{Row: 0, Col: 1})

	stats := acc.Stats()
	assert.Equal(t, 2, stats.TotalPixels)
	assert.Equal(t, 4, stats.TotalSamples)
	assert.Equal(t, 1, stats.MinSamples)
	assert.Equal(t, 3, stats.MaxSamplesUsed)
	assert.InDelta(t, 2.0, stats.AverageSamples, 1e-12)
	assert.Equal(t, 3, acc.Pixel(0, 0).SampleCount)
}

func TestNewAccumulator_PanicsOnEmptyImage(t *testing.T) {
	assert.Panics(t, func() { NewAccumulator(0, 10, 1) })
}

func TestToneMaps(t *testing.T) {
	tm, err := ParseToneMap("")
	require.NoError(t, err)
	assert.Equal(t, ToneMapNone, tm)

	_, err = ParseToneMap("filmic")
	assert.Error(t, err)

	assert.InDelta(t, 0.5, ToneMapReinhard.Apply(core.NewVec3(1, 1, 1)).X, 1e-12)
	assert.Equal(t, core.NewVec3(3, 2, 1), ToneMapNone.Apply(core.NewVec3(3, 2, 1)))

	// ACES is monotone and levels off just above 1.0
	prev := 0.0
	for _, x := range []float64{0.01, 0.1, 0.5, 1, 2, 8, 100} {
		y := ToneMapACES.Apply(core.NewVec3(x, x, x)).X
		assert.Greater(t, y, prev)
		assert.Less(t, y, 1.05)
		prev = y
	}
	assert.Equal(t, 0.0, ToneMapACES.Apply(core.NewVec3(-1, 0, 0)).X)
}

func TestCalculateAverageLuminance(t *testing.T) {
	acc := NewAccumulator(2, 1, 2)
	acc.Add(SampleMessage{Row: 0, Col: 0, Color: core.NewVec3(2, 2, 2)})
	acc.Add(SampleMessage{Row: 0, Col: 1, Color: core.NewVec3(0, 0, 0)})
	img, err := acc.Finalize(ColorOptions{})
	require.NoError(t, err)

	// Over-exposed white clamps to 255, black stays 0
	assert.InDelta(t, 0.5, CalculateAverageLuminance(img), 1e-9)
}
