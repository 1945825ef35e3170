// Package main provides the CLI entrypoint for imtricks.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/imtricks/internal/config"
	"github.com/jmylchreest/imtricks/internal/host"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		noWatch    bool
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "imtricks",
	Short: "Animated widgets and toast notifications for immediate-mode UIs",
	Long: `imtricks demonstrates frame-driven widget animation and a toast
notification queue drawn on top of an immediate-mode scene.

Running imtricks without a subcommand is the same as "imtricks run".
Use "imtricks term" to run the same scene inside the terminal.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	RunE: runWindow,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/imtricks/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.noWatch, "no-watch", false,
		"Do not reload the config file when it changes")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// configPath returns the config file in use.
func configPath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}

// withHost builds a host context, watches the config file unless disabled,
// and runs fn until it returns or a termination signal arrives.
func withHost(fn func(ctx context.Context, hc *host.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hc, err := host.NewContext(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := hc.Close(); err != nil {
			logger.Warn("failed to close host", "error", err)
		}
	}()

	if !globalOpts.noWatch {
		if err := hc.Watch(ctx, configPath()); err != nil {
			logger.Warn("config reload disabled", "path", configPath(), "error", err)
		}
	}

	return fn(ctx, hc)
}
