// Package main provides the CLI entrypoint for desknotify.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/desknotify/internal/config"
	"github.com/jmylchreest/desknotify/internal/product"
	"github.com/jmylchreest/desknotify/internal/store"
)

// Global configuration and state
var (
	info       product.Info
	globalOpts struct {
		verbose    bool
		configPath string
		stateFile  string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "desknotify",
	Short: "Virtual desktop notifications",
	Long: `desknotify controls and inspects desknotifyd, the daemon that shows a short
notification whenever the virtual desktop changes, desktops are reordered, or a
window is pinned to all desktops.

Running desknotify without a subcommand shows the daemon status.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		info, err = product.Load()
		if err != nil {
			return fmt.Errorf("failed to load product metadata: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func init() {
	if i, err := product.Load(); err == nil {
		rootCmd.Version = i.VersionString()
	}

	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/desknotify/desknotifyd.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.stateFile, "state-file", "",
		"Path to state file (default: ~/.local/share/desknotify/state.json)")
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

// configPath returns the --config value or the default daemon config path.
func configPath() (string, error) {
	if globalOpts.configPath != "" {
		return globalOpts.configPath, nil
	}
	return config.DaemonConfigPath()
}

// statePath returns the --state-file value or the default state path.
func statePath() (string, error) {
	if globalOpts.stateFile != "" {
		return globalOpts.stateFile, nil
	}
	return store.StateFilePath()
}
