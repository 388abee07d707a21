package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/desknotify/internal/dbus"
	"github.com/jmylchreest/desknotify/internal/desktop"
)

// callTimeout bounds every request to the daemon.
const callTimeout = 5 * time.Second

var emitOpts struct {
	unpin  bool
	app    bool
	window string
}

// emitCmd represents the emit command group.
var emitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Send a desktop event to desknotifyd",
	Long: `Send a virtual desktop event to a running desknotifyd over D-Bus.

Desktops are given as 1-based numbers, the way they appear in notifications.

  desknotify emit switched 3
  desknotify emit moved 1 2
  desknotify emit pinned --app`,
}

var emitSwitchedCmd = &cobra.Command{
	Use:   "switched <desktop>",
	Short: "Report a switch to a desktop",
	Args:  cobra.ExactArgs(1),
	RunE:  emitSwitchedRun,
}

var emitMovedCmd = &cobra.Command{
	Use:   "moved <from> <to> [current]",
	Short: "Report that a desktop was reordered",
	Long: `Report that a desktop was reordered. The current desktop defaults to the
destination position.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: emitMovedRun,
}

var emitPinnedCmd = &cobra.Command{
	Use:   "pinned",
	Short: "Report that a window or application was pinned",
	Args:  cobra.NoArgs,
	RunE:  emitPinnedRun,
}

func init() {
	emitCmd.AddCommand(emitSwitchedCmd)
	emitCmd.AddCommand(emitMovedCmd)
	emitCmd.AddCommand(emitPinnedCmd)

	emitPinnedCmd.Flags().BoolVar(&emitOpts.unpin, "unpin", false,
		"Report an unpin instead of a pin")
	emitPinnedCmd.Flags().BoolVar(&emitOpts.app, "app", false,
		"Report an application instead of a single window")
	emitPinnedCmd.Flags().StringVar(&emitOpts.window, "window", "0",
		"Window handle (decimal or 0x-prefixed hex)")

	rootCmd.AddCommand(emitCmd)
}

func emitSwitchedRun(cmd *cobra.Command, args []string) error {
	index, err := parseDesktopNumber(args[0])
	if err != nil {
		return err
	}
	return withClient(func(ctx context.Context, c *dbus.Client) error {
		return c.DesktopSwitched(ctx, index)
	})
}

func emitMovedRun(cmd *cobra.Command, args []string) error {
	indices := make([]uint32, 0, 3)
	for _, a := range args {
		i, err := parseDesktopNumber(a)
		if err != nil {
			return err
		}
		indices = append(indices, i)
	}
	if len(indices) == 2 {
		indices = append(indices, indices[1])
	}
	return withClient(func(ctx context.Context, c *dbus.Client) error {
		return c.DesktopMoved(ctx, indices[0], indices[1], indices[2])
	})
}

func emitPinnedRun(cmd *cobra.Command, args []string) error {
	handle, err := parseWindowHandle(emitOpts.window)
	if err != nil {
		return err
	}
	op := pinOperation(emitOpts.unpin, emitOpts.app)
	return withClient(func(ctx context.Context, c *dbus.Client) error {
		return c.WindowPinned(ctx, handle, op)
	})
}

// parseDesktopNumber converts a 1-based desktop number to a 0-based index.
func parseDesktopNumber(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid desktop number %q: must be 1 or greater", s)
	}
	return uint32(n - 1), nil
}

// parseWindowHandle accepts decimal or 0x-prefixed hex handles.
func parseWindowHandle(s string) (desktop.WindowHandle, error) {
	h, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window handle %q: %w", s, err)
	}
	return desktop.WindowHandle(h), nil
}

// pinOperation builds the flag set for a pin event.
func pinOperation(unpin, app bool) desktop.PinOperation {
	op := desktop.OpPin
	if unpin {
		op = desktop.OpUnpin
	}
	if app {
		return op | desktop.OpApplication
	}
	return op | desktop.OpWindow
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), callTimeout)
}

// withClient connects to the session bus and runs fn with a bounded context.
func withClient(fn func(ctx context.Context, c *dbus.Client) error) error {
	client, err := dbus.NewClient(logger)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()
	if err := fn(ctx, client); err != nil {
		return fmt.Errorf("is desknotifyd running? %w", err)
	}
	return nil
}

func serverInformation(ctx context.Context) (dbus.ServerInfo, error) {
	client, err := dbus.NewClient(logger)
	if err != nil {
		return dbus.ServerInfo{}, err
	}
	return client.ServerInformation(ctx)
}
