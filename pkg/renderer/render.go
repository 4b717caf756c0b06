package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// SamplerKind selects how workers draw random numbers
type SamplerKind string

const (
	SamplerUniform   SamplerKind = "uniform"
	SamplerBlueNoise SamplerKind = "blue-noise"
)

// Config contains the parameters of a render
type Config struct {
	Width, Height     int
	SamplesPerPixel   int  // 0 uses the frame-0 camera's SamplesPerPixel
	MaxDepth          int  // Bounce limit; 0 renders the sky alone
	Frames            int  // Frames accumulated into one image; 0 means 1
	NumWorkers        int  // Explicit worker count; 0 derives it from ThreadMultiplier
	ThreadMultiplier  int  // Workers per CPU when NumWorkers is 0; 0 means 1
	ChannelCapacity   int  // Sample channel buffer; 0 means DefaultChannelCapacity
	PreviewEveryFrame bool // Call the preview func at every frame boundary
	Sampler           SamplerKind
	BlueNoiseSet      core.BlueNoiseSet
	Seed              int64 // Base seed for uniform samplers
	GammaSky          bool  // Gamma-correct the sky before attenuation
	Color             ColorOptions
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:             400,
		Height:            225,
		SamplesPerPixel:   10,
		MaxDepth:          50,
		Frames:            1,
		ThreadMultiplier:  2,
		ChannelCapacity:   DefaultChannelCapacity,
		PreviewEveryFrame: true,
		Sampler:           SamplerUniform,
		Seed:              42,
		Color:             ColorOptions{Gamma: true, ToneMap: ToneMapNone},
	}
}

// FrameState describes the frame a setup call builds. It is passed by value so each worker
// can rebuild its own world and camera without shared mutable state.
type FrameState struct {
	Frame  int     // 0-based frame index
	Frames int     // Total frames
	Time   float64 // Frame / Frames, in [0, 1)
}

// FrameSetup builds the world and camera for one frame. It is called concurrently from
// every worker and must not mutate shared state.
type FrameSetup func(state FrameState) (geometry.Primitive, *Camera)

// StaticSetup returns a FrameSetup that always yields the same world and camera
func StaticSetup(world geometry.Primitive, camera *Camera) FrameSetup {
	return func(FrameState) (geometry.Primitive, *Camera) {
		return world, camera
	}
}

// Preview is a progressive view of a render in flight
type Preview struct {
	Image    *image.RGBA
	Frame    int // Frames fully received
	Received int
	Expected int
}

// PreviewFunc receives previews on the consumer goroutine. It should return quickly.
type PreviewFunc func(Preview)

// Result is a finished render
type Result struct {
	ID    string
	Image *image.RGBA
	Stats RenderStats
}

// Renderer distributes rows over a worker pool and accumulates the sample stream
type Renderer struct {
	config     Config
	id         string
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRenderer creates a renderer. Non-positive image sizes panic.
func NewRenderer(config Config, logger core.Logger) *Renderer {
	if config.Width <= 0 || config.Height <= 0 {
		panic(fmt.Sprintf("image size must be positive, got %dx%d", config.Width, config.Height))
	}
	if config.Frames <= 0 {
		config.Frames = 1
	}
	if config.ThreadMultiplier <= 0 {
		config.ThreadMultiplier = 1
	}
	if config.Sampler == "" {
		config.Sampler = SamplerUniform
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	id := uuid.NewString()
	if sl, ok := logger.(*core.SlogLogger); ok {
		logger = sl.With("render_id", id)
	}

	return &Renderer{
		config:     config,
		id:         id,
		integrator: integrator.NewPathTracingIntegrator(integrator.Config{GammaSky: config.GammaSky}),
		logger:     logger,
	}
}

// ID returns the unique identifier of this renderer's runs
func (r *Renderer) ID() string {
	return r.id
}

// Config returns the effective configuration
func (r *Renderer) Config() Config {
	return r.config
}

func (r *Renderer) numWorkers() int {
	if r.config.NumWorkers > 0 {
		return r.config.NumWorkers
	}
	return runtime.NumCPU() * r.config.ThreadMultiplier
}

// Render traces every frame and returns the finalized image.
//
// Rows are interleaved across workers (row % N == worker id). Each worker calls setup once per
// frame. preview, if non-nil, runs on the calling goroutine at frame boundaries. Cancelling ctx
// stops the workers and returns ctx.Err().
func (r *Renderer) Render(ctx context.Context, setup FrameSetup, preview PreviewFunc) (*Result, error) {
	start := time.Now()
	cfg := r.config

	spp := cfg.SamplesPerPixel
	if spp <= 0 {
		_, camera := setup(FrameState{Frame: 0, Frames: cfg.Frames})
		spp = camera.Config().SamplesPerPixel
	}
	if spp <= 0 {
		return nil, fmt.Errorf("samples per pixel must be positive, got %d", spp)
	}

	frameSize := cfg.Width * cfg.Height * spp
	expected := frameSize * cfg.Frames

	pool := NewWorkerPool(r.numWorkers(), cfg.ChannelCapacity)
	r.logger.Printf("Rendering %dx%d, %d samples/pixel, %d frame(s), %d workers\n",
		cfg.Width, cfg.Height, spp, cfg.Frames, pool.NumWorkers())

	samples, wait := pool.Run(ctx, func(ctx context.Context, id, numWorkers int, out chan<- SampleMessage) error {
		return r.work(ctx, id, numWorkers, spp, setup, out)
	})

	acc := NewAccumulator(cfg.Width, cfg.Height, expected)
	for !acc.Complete() {
		msg, ok := <-samples
		if !ok {
			break
		}
		acc.Add(msg)

		if preview != nil && cfg.PreviewEveryFrame && acc.Received()%frameSize == 0 {
			preview(Preview{
				Image:    acc.Snapshot(cfg.Color),
				Frame:    acc.Received() / frameSize,
				Received: acc.Received(),
				Expected: expected,
			})
		}
	}

	werr := wait()
	if err := ctx.Err(); err != nil {
		r.logger.Printf("Render cancelled after %d of %d samples\n", acc.Received(), expected)
		return nil, err
	}
	if !acc.Complete() {
		r.logger.Printf("Sample stream ended early: %d of %d samples\n", acc.Received(), expected)
		if werr != nil {
			return nil, fmt.Errorf("%w after %d of %d samples: %w", ErrChannelClosed, acc.Received(), expected, werr)
		}
		return nil, fmt.Errorf("%w after %d of %d samples", ErrChannelClosed, acc.Received(), expected)
	}
	if werr != nil && !errors.Is(werr, context.Canceled) {
		return nil, werr
	}

	img, err := acc.Finalize(cfg.Color)
	if err != nil {
		return nil, err
	}

	stats := acc.Stats()
	stats.Frames = cfg.Frames
	stats.Workers = pool.NumWorkers()
	stats.Duration = time.Since(start)
	stats.AverageLuminance = CalculateAverageLuminance(img)
	r.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)

	return &Result{ID: r.id, Image: img, Stats: stats}, nil
}

// work renders this worker's rows for every frame
func (r *Renderer) work(ctx context.Context, id, numWorkers, spp int, setup FrameSetup, out chan<- SampleMessage) error {
	cfg := r.config
	sampler, reseed := r.newSampler(id)

	for frame := 0; frame < cfg.Frames; frame++ {
		world, camera := setup(FrameState{
			Frame:  frame,
			Frames: cfg.Frames,
			Time:   float64(frame) / float64(cfg.Frames),
		})

		for row := id; row < cfg.Height; row += numWorkers {
			if err := ctx.Err(); err != nil {
				return err
			}
			for col := 0; col < cfg.Width; col++ {
				for s := 0; s < spp; s++ {
					sampleIndex := frame*spp + s
					reseed(row, col, sampleIndex)

					jitter := sampler.Get2D()
					u := (float64(col) + jitter.X) / float64(cfg.Width)
					v := (float64(cfg.Height-1-row) + jitter.Y) / float64(cfg.Height)
					ray := camera.GetRay(u, v, sampler.InUnitDisk())

					msg := SampleMessage{
						Row:    row,
						Col:    col,
						Color:  r.traceSample(ray, world, sampler),
						Sample: sampleIndex,
					}
					select {
					case out <- msg:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
		}
	}
	return nil
}

// traceSample estimates one camera ray. With zero bounces allowed the geometry is never
// consulted and only the sky is seen.
func (r *Renderer) traceSample(ray core.Ray, world geometry.Primitive, sampler core.Sampler) core.Vec3 {
	if r.config.MaxDepth <= 0 {
		return r.integrator.Sky(ray)
	}
	return r.integrator.RayColor(ray, world, r.config.MaxDepth, sampler)
}

// newSampler creates the worker's sampler and a hook that positions it before each pixel sample
func (r *Renderer) newSampler(id int) (core.Sampler, func(row, col, sample int)) {
	if r.config.Sampler == SamplerBlueNoise {
		bn := core.NewBlueNoiseSampler(r.config.BlueNoiseSet, 0, 0, 0)
		return bn, bn.Reseed
	}
	random := rand.New(rand.NewSource(r.config.Seed + int64(id)))
	return core.NewRandomSampler(random), func(int, int, int) {}
}
