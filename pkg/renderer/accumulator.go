package renderer

import (
	"fmt"
	"image"
	"image/color"
)

// Accumulator sums sample messages into a row-major colour buffer.
//
// It is owned by a single consumer goroutine and is not safe for concurrent use. Addition is
// commutative, so message arrival order does not matter; completion is reached when exactly
// the expected number of messages has been added.
type Accumulator struct {
	width, height int
	pixels        []PixelStats
	received      int
	expected      int
}

// NewAccumulator creates an accumulator for a width x height image expecting the given total
// number of sample messages
func NewAccumulator(width, height, expected int) *Accumulator {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("accumulator size must be positive, got %dx%d", width, height))
	}
	return &Accumulator{
		width:    width,
		height:   height,
		pixels:   make([]PixelStats, width*height),
		expected: expected,
	}
}

// Add accumulates one sample. Messages addressed outside the image are dropped.
func (a *Accumulator) Add(msg SampleMessage) bool {
	if msg.Row < 0 || msg.Row >= a.height || msg.Col < 0 || msg.Col >= a.width {
		return false
	}
	a.pixels[msg.Row*a.width+msg.Col].AddSample(msg.Color)
	a.received++
	return true
}

// Complete reports whether every expected sample has arrived
func (a *Accumulator) Complete() bool {
	return a.received >= a.expected
}

// Received returns the number of samples accumulated so far
func (a *Accumulator) Received() int {
	return a.received
}

// Expected returns the number of samples that completes the image
func (a *Accumulator) Expected() int {
	return a.expected
}

// Pixel returns the statistics for one pixel
func (a *Accumulator) Pixel(row, col int) PixelStats {
	return a.pixels[row*a.width+col]
}

// Finalize converts the completed accumulation to an image.
// It fails if samples are still outstanding.
func (a *Accumulator) Finalize(opts ColorOptions) (*image.RGBA, error) {
	if !a.Complete() {
		return nil, fmt.Errorf("%w: %d of %d samples", ErrIncomplete, a.received, a.expected)
	}
	return a.Snapshot(opts), nil
}

// Snapshot converts the current partial accumulation to an image. Pixels without samples are black.
func (a *Accumulator) Snapshot(opts ColorOptions) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, a.width, a.height))
	for row := 0; row < a.height; row++ {
		for col := 0; col < a.width; col++ {
			r, g, b := opts.ToDisplay(a.pixels[row*a.width+col].GetColor())
			img.SetRGBA(col, row, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// Stats summarizes the per-pixel sample counts
func (a *Accumulator) Stats() RenderStats {
	stats := RenderStats{
		TotalPixels: a.width * a.height,
		MinSamples:  a.pixels[0].SampleCount,
	}
	for i := range a.pixels {
		count := a.pixels[i].SampleCount
		stats.TotalSamples += count
		stats.MinSamples = min(stats.MinSamples, count)
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, count)
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return stats
}
