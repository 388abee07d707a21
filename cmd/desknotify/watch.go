package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/desknotify/internal/dbus"
	"github.com/jmylchreest/desknotify/internal/output"
)

var watchOpts struct {
	format string
}

const watchTemplate = `{{.ID}}{{if .Header}}  [{{.Header}}]{{end}}  {{.Body}}
`

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print notifications as desknotifyd shows them",
	Long: `Subscribe to desknotifyd's NotificationShown D-Bus signal and print each
notification until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOpts.format, "format", "f", "text",
		"Output format (text, json, yaml)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(watchOpts.format)
	if err != nil {
		return err
	}
	formatter, err := output.NewFormatter(format, watchTemplate)
	if err != nil {
		return err
	}

	client, err := dbus.NewClient(logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = client.WatchShown(ctx, func(n dbus.ShownNotification) {
		if err := formatter.Format(os.Stdout, n); err != nil {
			logger.Warn("failed to write notification", "id", n.ID, "error", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
