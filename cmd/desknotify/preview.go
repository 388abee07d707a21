package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/desknotify/internal/config"
	"github.com/jmylchreest/desknotify/internal/tui"
)

var previewOpts struct {
	desktops int
	monitors int
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Try notification settings in a terminal simulator",
	Long: `Launch a terminal simulator that runs the real notification service against
virtual monitors. Notification windows are drawn as boxes inside each monitor.

Key bindings:
  ←/→, h/l    Previous / next desktop
  1-9         Jump to desktop
  [ / ]       Move the current desktop left / right
  p / a       Pin or unpin the window / application
  s           Toggle simple notifications
  n           Toggle desktop names
  m           Cycle the target monitor
  ?           Show help
  q           Quit`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntVar(&previewOpts.desktops, "desktops", 4,
		"Number of virtual desktops")
	previewCmd.Flags().IntVar(&previewOpts.monitors, "monitors", 2,
		"Number of virtual monitors")
}

func runPreview(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadDaemonConfigFrom(path)
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		Config:   cfg,
		Product:  info,
		Desktops: previewOpts.desktops,
		Monitors: previewOpts.monitors,
	})
}
