package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/desknotify/internal/output"
	"github.com/jmylchreest/desknotify/internal/product"
)

var infoOpts struct {
	format string
}

// infoView is the rendered form of `desknotify info`.
type infoView struct {
	Product       product.Info `json:"product" yaml:"product"`
	VersionString string       `json:"version_string" yaml:"version_string"`
	ConfigPath    string       `json:"config_path" yaml:"config_path"`
	StatePath     string       `json:"state_path" yaml:"state_path"`
	DaemonRunning bool         `json:"daemon_running" yaml:"daemon_running"`
	DaemonVersion string       `json:"daemon_version,omitempty" yaml:"daemon_version,omitempty"`
	DaemonOSBuild string       `json:"daemon_os_build,omitempty" yaml:"daemon_os_build,omitempty"`
}

const infoTemplate = `{{.Product.Title}} {{.VersionString}}
  {{.Product.Description}}
  {{.Product.Copyright}}

OS build:           {{.Product.OSBuild}}
Windows 11:         {{yesno .Product.Features.Windows11OrLater}}
Desktop names:      {{yesno .Product.Features.NameSupport}}
Wallpapers:         {{yesno .Product.Features.WallpaperSupport}}
Reordering:         {{yesno .Product.Features.Reordering}}

Config:             {{.ConfigPath}}
State:              {{.StatePath}}
Daemon running:     {{yesno .DaemonRunning}}{{if .DaemonRunning}} ({{.DaemonVersion}}){{end}}
`

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show product metadata and host feature flags",
	Long: `Show the product metadata baked into this build, the feature flags derived
from the host OS build number, and whether desknotifyd is reachable.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringVarP(&infoOpts.format, "format", "f", "text",
		"Output format (text, json, yaml)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(infoOpts.format)
	if err != nil {
		return err
	}

	view := infoView{
		Product:       info,
		VersionString: info.VersionString(),
	}
	if p, err := configPath(); err == nil {
		view.ConfigPath = p
	}
	if p, err := statePath(); err == nil {
		view.StatePath = p
	}

	ctx, cancel := commandContext()
	defer cancel()
	if server, err := serverInformation(ctx); err != nil {
		logger.Debug("daemon not reachable", "error", err)
	} else {
		view.DaemonRunning = true
		view.DaemonVersion = server.Version
		view.DaemonOSBuild = server.OSBuild
	}

	formatter, err := output.NewFormatter(format, infoTemplate)
	if err != nil {
		return err
	}
	return formatter.Format(os.Stdout, view)
}
