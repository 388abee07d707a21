package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/desknotify/internal/output"
	"github.com/jmylchreest/desknotify/internal/store"
)

var statusOpts struct {
	format string
	waybar bool
}

// statusView is the rendered form of `desknotify status`.
type statusView struct {
	Paused   bool                    `json:"paused" yaml:"paused"`
	PausedAt int64                   `json:"paused_at,omitempty" yaml:"paused_at,omitempty"`
	PausedBy string                  `json:"paused_by,omitempty" yaml:"paused_by,omitempty"`
	Last     *store.LastNotification `json:"last_notification,omitempty" yaml:"last_notification,omitempty"`
}

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Alt     string `json:"alt,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

const statusTemplate = `Notifications: {{if .Paused}}paused{{else}}active{{end}}
{{- if .Paused}}
  Paused: {{reltime .PausedAt}}{{if .PausedBy}} by {{.PausedBy}}{{end}}
{{- end}}
{{- with .Last}}
Last notification: {{reltime .ShownAt}} ({{.Kind}})
{{- if .Header}}
  {{.Header}}
{{- end}}
  {{.Body}}
{{- end}}
`

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pause state and the last notification",
	Long: `Show whether desknotifyd notifications are paused and which notification was
shown last.

Use --waybar to print Waybar's custom module JSON instead:

  "custom/desknotify": {
    "exec": "desknotify status --waybar",
    "interval": 5,
    "return-type": "json",
    "on-click": "desknotify pause toggle --quiet"
  }`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusOpts.format, "format", "f", "text",
		"Output format (text, json, yaml)")
	statusCmd.Flags().BoolVar(&statusOpts.waybar, "waybar", false,
		"Output Waybar-compatible JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(statusOpts.format)
	if err != nil {
		return err
	}

	state, err := loadState()
	if err != nil {
		return err
	}

	last, err := loadLastNotification()
	if err != nil {
		return err
	}

	if statusOpts.waybar {
		return output.NewJSONFormatter().Format(os.Stdout, waybarStatus(state, last))
	}
	return renderStatus(os.Stdout, format, state, last)
}

func renderStatus(w io.Writer, format output.FormatType, state *store.SharedState, last *store.LastNotification) error {
	formatter, err := output.NewFormatter(format, statusTemplate)
	if err != nil {
		return err
	}
	return formatter.Format(w, statusView{
		Paused:   state.Paused,
		PausedAt: state.PausedAt,
		PausedBy: state.PausedBy,
		Last:     last,
	})
}

// waybarStatus creates a WaybarStatus from the shared state.
func waybarStatus(state *store.SharedState, last *store.LastNotification) WaybarStatus {
	if state.Paused {
		return WaybarStatus{
			Text:    "paused",
			Alt:     "paused",
			Tooltip: "Desktop notifications are paused",
			Class:   "paused",
		}
	}

	tooltip := "No notifications yet"
	if n := last; n != nil {
		tooltip = n.Body
		if n.Header != "" {
			tooltip = fmt.Sprintf("%s\n%s", n.Header, n.Body)
		}
	}
	return WaybarStatus{
		Text:    "",
		Alt:     "active",
		Tooltip: tooltip,
		Class:   "active",
	}
}

func loadState() (*store.SharedState, error) {
	path, err := statePath()
	if err != nil {
		return nil, err
	}
	state, err := store.LoadSharedStateFrom(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return state, nil
}

func loadLastNotification() (*store.LastNotification, error) {
	path, err := store.LastNotificationPath()
	if err != nil {
		return nil, err
	}
	n, err := store.LoadLastNotificationFrom(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load last notification: %w", err)
	}
	return n, nil
}
