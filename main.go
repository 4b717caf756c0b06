package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var quiet bool

	root := &cobra.Command{
		Use:          "pathtracer",
		Short:        "Concurrent Monte Carlo path tracer",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress renderer log output")

	logger := func(cmd *cobra.Command) core.Logger {
		if quiet {
			return core.NopLogger{}
		}
		return core.NewSlogLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil)))
	}

	root.AddCommand(
		newRenderCmd(logger),
		newServeCmd(logger),
		newScenesCmd(),
		newConfigCmd(),
	)
	return root
}

func newServeCmd(logger func(*cobra.Command) core.Logger) *cobra.Command {
	var (
		port       int
		scenesDir  string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live preview web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Visit http://localhost:%d to start rendering\n", port)
			return server.NewServer(server.Config{
				Port:      port,
				ScenesDir: scenesDir,
				Defaults:  cfg.RendererConfig(),
				Logger:    logger(cmd),
			}).Start()
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to serve on")
	cmd.Flags().StringVar(&scenesDir, "scenes-dir", "scenes", "Directory of YAML scene files")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML render configuration supplying defaults")
	return cmd
}

func newScenesCmd() *cobra.Command {
	var scenesDir string

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List available scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			response, err := scene.ListAllScenes(scenesDir)
			if err != nil {
				return err
			}
			printScenes(cmd.OutOrStdout(), response)
			return nil
		},
	}
	cmd.Flags().StringVar(&scenesDir, "scenes-dir", "scenes", "Directory of YAML scene files")
	return cmd
}

func printScenes(w io.Writer, response scene.ScenesResponse) {
	for _, group := range response.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, s := range group.Scenes {
			if s.Description != "" {
				fmt.Fprintf(w, "  %-24s %s\n", s.ID, s.Description)
			} else {
				fmt.Fprintf(w, "  %s\n", s.ID)
			}
		}
	}
}

func newConfigCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective render configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML render configuration")
	return cmd
}

// loadConfig reads path, or returns the defaults when path is empty
func loadConfig(path string) (config.RenderConfig, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
