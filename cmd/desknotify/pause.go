package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/desknotify/internal/store"
)

var pauseOpts struct {
	quiet bool // Suppress output, return exit code only
}

// pauseCmd represents the pause command group.
var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause or resume desktop notifications",
	Long: `Pause or resume desknotifyd notifications.

While paused, desknotifyd still receives desktop events but shows nothing.
The daemon picks up changes immediately.

Use 'desknotify pause status' to check the current state.
Use 'desknotify pause on' to pause notifications.
Use 'desknotify pause off' to resume notifications.
Use 'desknotify pause toggle' to flip the state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pauseStatusRun(cmd, args)
	},
}

var pauseOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Pause notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		return updatePause(func(s *store.SharedState) bool {
			s.SetPaused(true, "cli")
			return true
		})
	},
}

var pauseOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Resume notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		return updatePause(func(s *store.SharedState) bool {
			s.SetPaused(false, "cli")
			return false
		})
	},
}

var pauseToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle the pause state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return updatePause(func(s *store.SharedState) bool {
			return s.TogglePaused("cli")
		})
	},
}

var pauseStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the pause state",
	RunE:  pauseStatusRun,
}

func init() {
	pauseCmd.AddCommand(pauseOnCmd)
	pauseCmd.AddCommand(pauseOffCmd)
	pauseCmd.AddCommand(pauseToggleCmd)
	pauseCmd.AddCommand(pauseStatusCmd)

	for _, cmd := range []*cobra.Command{pauseCmd, pauseOnCmd, pauseOffCmd, pauseToggleCmd, pauseStatusCmd} {
		cmd.Flags().BoolVarP(&pauseOpts.quiet, "quiet", "q", false,
			"Suppress output, return exit code only (0=active, 1=paused)")
	}

	rootCmd.AddCommand(pauseCmd)
}

// updatePause applies change to the state file and exits 1 when the result is paused.
func updatePause(change func(*store.SharedState) bool) error {
	path, err := statePath()
	if err != nil {
		return err
	}
	state, err := store.LoadSharedStateFrom(path)
	if err != nil {
		if !pauseOpts.quiet {
			fmt.Fprintf(os.Stderr, "Failed to load state: %v\n", err)
		}
		return err
	}

	paused := change(state)
	if err := store.SaveSharedStateTo(path, state); err != nil {
		if !pauseOpts.quiet {
			fmt.Fprintf(os.Stderr, "Failed to save state: %v\n", err)
		}
		return err
	}

	if !pauseOpts.quiet {
		fmt.Println(pauseLine(paused))
	}

	// Exit code: 0=active, 1=paused
	if paused {
		os.Exit(1)
	}
	return nil
}

func pauseStatusRun(cmd *cobra.Command, args []string) error {
	state, err := loadState()
	if err != nil {
		if !pauseOpts.quiet {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		return err
	}

	if !pauseOpts.quiet {
		fmt.Println(pauseLine(state.Paused))
		if state.Paused && state.PausedAt != 0 {
			fmt.Printf("  Since: %s\n", formatTransitionTime(state.PausedAt))
			if state.PausedBy != "" {
				fmt.Printf("  Source: %s\n", state.PausedBy)
			}
		}
	}

	if state.Paused {
		os.Exit(1)
	}
	return nil
}

func pauseLine(paused bool) string {
	if paused {
		return "Notifications: paused"
	}
	return "Notifications: active"
}

// formatTransitionTime formats a unix timestamp as a human-readable relative time.
func formatTransitionTime(timestamp int64) string {
	return humanize.Time(time.Unix(timestamp, 0))
}
