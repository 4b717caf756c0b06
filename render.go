package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// renderOptions are the render command's flags. Flags override the config file only when set.
type renderOptions struct {
	configPath string
	watch      bool
	meshPath   string
	meshSize   float64

	scene    string
	output   string
	width    int
	height   int
	spp      int
	maxDepth int
	frames   int
	sampler  string
	toneMap  string
	seed     int64
	workers  int
}

func newRenderCmd(logger func(*cobra.Command) core.Logger) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to an image file",
		Long: `Render a built-in scene, a YAML scene file or a PLY mesh.

An output path ending in a separator is treated as a directory and receives
<dir>/<scene>/render_<timestamp>.png.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch {
				cfg, err := opts.resolveConfig(cmd.Flags())
				if err != nil {
					return err
				}
				return watchAndRender(cmd.Context(), cmd.ErrOrStderr(), opts.watchPaths(cfg.Scene), func(ctx context.Context) error {
					_, err := renderOnce(ctx, cmd, opts, logger(cmd))
					return err
				})
			}
			_, err := renderOnce(cmd.Context(), cmd, opts, logger(cmd))
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML render configuration")
	f.BoolVarP(&opts.watch, "watch", "w", false, "Re-render when the config, scene or mesh file changes")
	f.StringVar(&opts.meshPath, "mesh", "", "PLY file to render in the mesh scene")
	f.Float64Var(&opts.meshSize, "mesh-size", 1.2, "Largest extent the --mesh model is scaled to")
	f.StringVarP(&opts.scene, "scene", "s", "", "Built-in scene name or YAML scene file")
	f.StringVarP(&opts.output, "output", "o", "", "Output file (.ppm, .png, .tiff or .bmp) or directory")
	f.IntVar(&opts.width, "width", 0, "Image width")
	f.IntVar(&opts.height, "height", 0, "Image height (0 derives it from the aspect ratio)")
	f.IntVar(&opts.spp, "spp", 0, "Samples per pixel per frame (0 uses the scene camera's value)")
	f.IntVar(&opts.maxDepth, "max-depth", 0, "Maximum bounces per path")
	f.IntVar(&opts.frames, "frames", 0, "Frames accumulated into the image")
	f.StringVar(&opts.sampler, "sampler", "", "Sampler: uniform or blue-noise")
	f.StringVar(&opts.toneMap, "tone-map", "", "Tone map: none, reinhard or aces")
	f.Int64Var(&opts.seed, "seed", 0, "Seed for the uniform sampler")
	f.IntVar(&opts.workers, "workers", 0, "Worker goroutines (0 derives them from the CPU count)")
	return cmd
}

// resolveConfig loads the config file and applies the flags that were set
func (o *renderOptions) resolveConfig(flags *pflag.FlagSet) (config.RenderConfig, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}

	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("scene", func() { cfg.Scene = o.scene })
	set("output", func() { cfg.Output = o.output })
	set("width", func() { cfg.Width = o.width })
	set("height", func() { cfg.Height = o.height })
	set("spp", func() { cfg.SamplesPerPixel = o.spp })
	set("max-depth", func() { cfg.MaxDepth = o.maxDepth })
	set("frames", func() { cfg.Frames = o.frames })
	set("sampler", func() { cfg.Sampler = o.sampler })
	set("tone-map", func() { cfg.ToneMap = o.toneMap })
	set("seed", func() { cfg.Seed = o.seed })
	set("workers", func() { cfg.Workers = o.workers })

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// watchPaths lists the files whose changes trigger a re-render
func (o *renderOptions) watchPaths(sceneName string) []string {
	var paths []string
	for _, p := range []string{o.configPath, o.meshPath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	if o.meshPath == "" && isSceneFile(sceneName) {
		paths = append(paths, sceneName)
	}
	return paths
}

// renderOnce resolves the configuration, renders and writes the image, returning its path
func renderOnce(ctx context.Context, cmd *cobra.Command, opts *renderOptions, logger core.Logger) (string, error) {
	cfg, err := opts.resolveConfig(cmd.Flags())
	if err != nil {
		return "", err
	}

	s, err := buildScene(cfg, opts)
	if err != nil {
		return "", err
	}

	rc := cfg.RendererConfig()
	r := renderer.NewRenderer(rc, logger)
	progress := newProgressPrinter(cmd.OutOrStdout(), s.Name, rc.Frames)

	result, err := r.Render(ctx, s.Setup(), progress.Preview)
	if err != nil {
		progress.Fail(err)
		return "", err
	}
	progress.Done(result.Stats)

	path, err := output.WriteFile(outputPath(cfg.Output, s.Name, time.Now()), result.Image)
	if err != nil {
		return "", err
	}
	progress.Saved(path)
	return path, nil
}

// buildScene creates the configured scene, or the mesh scene when a PLY file is given
func buildScene(cfg config.RenderConfig, opts *renderOptions) (*scene.Scene, error) {
	overrides, err := cfg.CameraOverrides()
	if err != nil {
		return nil, err
	}

	if opts.meshPath != "" {
		mesh, err := scene.LoadMesh(opts.meshPath, opts.meshSize, material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7)))
		if err != nil {
			return nil, err
		}
		s := scene.NewMeshScene(mesh, overrides)
		s.Name = strings.TrimSuffix(filepath.Base(opts.meshPath), filepath.Ext(opts.meshPath))
		return s, nil
	}

	return scene.Create(cfg.Scene, overrides)
}

// outputPath expands a directory output into <dir>/<scene>/render_<timestamp>.png
func outputPath(configured, sceneName string, now time.Time) string {
	if configured != "" && !strings.HasSuffix(configured, "/") && !strings.HasSuffix(configured, string(filepath.Separator)) {
		return configured
	}
	dir := configured
	if dir == "" {
		dir = "output"
	}
	name := strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	return filepath.Join(dir, name, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

func isSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// errorLine reports a failed render in watch mode without stopping the watcher
func errorLine(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintf(w, "render failed: %v\n", err)
}
