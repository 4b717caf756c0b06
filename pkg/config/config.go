package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// RenderConfig holds the render parameters read from a TOML file
type RenderConfig struct {
	Scene             string  `toml:"scene"`
	Output            string  `toml:"output"`
	Width             int     `toml:"width"`
	Height            int     `toml:"height"`       // 0 derives the height from aspect_ratio
	AspectRatio       float64 `toml:"aspect_ratio"` // Width / height
	SamplesPerPixel   int     `toml:"samples_per_pixel"`
	MaxDepth          int     `toml:"max_depth"`
	Frames            int     `toml:"frames"`
	Gamma             bool    `toml:"gamma"`
	GammaSky          bool    `toml:"gamma_sky"`
	ToneMap           string  `toml:"tone_map"`
	Sampler           string  `toml:"sampler"`
	BlueNoisePoints   int     `toml:"blue_noise_points"`
	Seed              int64   `toml:"seed"`
	Workers           int     `toml:"workers"`
	ThreadMultiplier  int     `toml:"thread_multiplier"`
	ChannelCapacity   int     `toml:"channel_capacity"`
	PreviewEveryFrame bool    `toml:"preview_every_frame"`

	Camera CameraConfig `toml:"camera"`
}

// CameraConfig overrides the scene camera. Unset fields keep the scene's values.
type CameraConfig struct {
	Eye           []float64 `toml:"eye,omitempty"`
	LookAt        []float64 `toml:"look_at,omitempty"`
	Up            []float64 `toml:"up,omitempty"`
	VFov          float64   `toml:"vfov,omitempty"`
	Aperture      float64   `toml:"aperture,omitempty"`
	FocusDistance float64   `toml:"focus_distance,omitempty"`
}

// Default returns the configuration used when no file is given
func Default() RenderConfig {
	r := renderer.DefaultConfig()
	return RenderConfig{
		Scene:             "default",
		Output:            "output/render.png",
		Width:             r.Width,
		AspectRatio:       16.0 / 9.0,
		SamplesPerPixel:   0, // Use the scene's camera
		MaxDepth:          r.MaxDepth,
		Frames:            r.Frames,
		Gamma:             r.Color.Gamma,
		ToneMap:           string(r.Color.ToneMap),
		Sampler:           string(r.Sampler),
		BlueNoisePoints:   64,
		Seed:              r.Seed,
		ThreadMultiplier:  r.ThreadMultiplier,
		ChannelCapacity:   r.ChannelCapacity,
		PreviewEveryFrame: r.PreviewEveryFrame,
	}
}

// Load reads a TOML file on top of Default. A leading ~ in path is expanded.
func Load(path string) (RenderConfig, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("failed to expand config path: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return RenderConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML on top of Default and validates the result. Unknown keys are errors.
func Decode(r io.Reader) (RenderConfig, error) {
	cfg := Default()
	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return RenderConfig{}, fmt.Errorf("unknown config keys:\n%s", strict.String())
		}
		return RenderConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RenderConfig{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML
func Encode(w io.Writer, cfg RenderConfig) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate rejects configurations the renderer cannot run
func (c RenderConfig) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height < 0 {
		return fmt.Errorf("height must not be negative, got %d", c.Height)
	}
	if c.Height == 0 && c.AspectRatio <= 0 {
		return fmt.Errorf("aspect_ratio must be positive when height is unset, got %g", c.AspectRatio)
	}
	if h := c.ImageHeight(); h <= 0 {
		return fmt.Errorf("image height must be positive, got %d", h)
	}
	if c.SamplesPerPixel < 0 {
		return fmt.Errorf("samples_per_pixel must not be negative, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Frames < 0 || c.Workers < 0 || c.ThreadMultiplier < 0 || c.ChannelCapacity < 0 {
		return fmt.Errorf("frames, workers, thread_multiplier and channel_capacity must not be negative")
	}
	if _, err := renderer.ParseToneMap(c.ToneMap); err != nil {
		return err
	}
	if _, err := c.sampler(); err != nil {
		return err
	}
	if _, err := c.blueNoiseSet(); err != nil {
		return err
	}
	if _, err := c.CameraOverrides(); err != nil {
		return err
	}
	return nil
}

// ImageHeight returns Height, or the nearest height matching Width and AspectRatio
func (c RenderConfig) ImageHeight() int {
	if c.Height > 0 {
		return c.Height
	}
	return int(math.Round(float64(c.Width) / c.AspectRatio))
}

// RendererConfig converts to the renderer's configuration. Call Validate first.
func (c RenderConfig) RendererConfig() renderer.Config {
	toneMap, _ := renderer.ParseToneMap(c.ToneMap)
	sampler, _ := c.sampler()
	set, _ := c.blueNoiseSet()

	return renderer.Config{
		Width:             c.Width,
		Height:            c.ImageHeight(),
		SamplesPerPixel:   c.SamplesPerPixel,
		MaxDepth:          c.MaxDepth,
		Frames:            c.Frames,
		NumWorkers:        c.Workers,
		ThreadMultiplier:  c.ThreadMultiplier,
		ChannelCapacity:   c.ChannelCapacity,
		PreviewEveryFrame: c.PreviewEveryFrame,
		Sampler:           sampler,
		BlueNoiseSet:      set,
		Seed:              c.Seed,
		GammaSky:          c.GammaSky,
		Color:             renderer.ColorOptions{Gamma: c.Gamma, ToneMap: toneMap},
	}
}

// CameraOverrides returns the [camera] table as a partial camera configuration.
// The aspect ratio always follows the image size.
func (c RenderConfig) CameraOverrides() (renderer.CameraConfig, error) {
	override := renderer.CameraConfig{
		VFov:          c.Camera.VFov,
		Aperture:      c.Camera.Aperture,
		FocusDistance: c.Camera.FocusDistance,
	}
	if c.Width > 0 && c.ImageHeight() > 0 {
		override.AspectRatio = float64(c.Width) / float64(c.ImageHeight())
	}

	var err error
	if override.Eye, err = optionalVec("camera.eye", c.Camera.Eye); err != nil {
		return renderer.CameraConfig{}, err
	}
	if override.LookAt, err = optionalVec("camera.look_at", c.Camera.LookAt); err != nil {
		return renderer.CameraConfig{}, err
	}
	if override.Up, err = optionalVec("camera.up", c.Camera.Up); err != nil {
		return renderer.CameraConfig{}, err
	}
	if c.Camera.VFov < 0 || c.Camera.VFov >= 180 {
		return renderer.CameraConfig{}, fmt.Errorf("camera.vfov must be in (0, 180), got %g", c.Camera.VFov)
	}
	if c.Camera.Aperture < 0 {
		return renderer.CameraConfig{}, fmt.Errorf("camera.aperture must not be negative, got %g", c.Camera.Aperture)
	}
	return override, nil
}

func (c RenderConfig) sampler() (renderer.SamplerKind, error) {
	switch renderer.SamplerKind(c.Sampler) {
	case "", renderer.SamplerUniform:
		return renderer.SamplerUniform, nil
	case renderer.SamplerBlueNoise:
		return renderer.SamplerBlueNoise, nil
	}
	return "", fmt.Errorf("unknown sampler %q (want uniform or blue-noise)", c.Sampler)
}

func (c RenderConfig) blueNoiseSet() (core.BlueNoiseSet, error) {
	switch c.BlueNoisePoints {
	case 0, 64:
		return core.BlueNoise64, nil
	case 16:
		return core.BlueNoise16, nil
	}
	return 0, fmt.Errorf("blue_noise_points must be 16 or 64, got %d", c.BlueNoisePoints)
}

func optionalVec(field string, v []float64) (core.Vec3, error) {
	if v == nil {
		return core.Vec3{}, nil
	}
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("%s: expected 3 components, got %d", field, len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}
