// Package main is the entry point for the desknotifyd notification daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/desknotify/internal/config"
	"github.com/jmylchreest/desknotify/internal/daemon"
	"github.com/jmylchreest/desknotify/internal/dbus"
	"github.com/jmylchreest/desknotify/internal/desktop"
	"github.com/jmylchreest/desknotify/internal/display"
	"github.com/jmylchreest/desknotify/internal/product"
	"github.com/jmylchreest/desknotify/internal/store"
	"github.com/jmylchreest/desknotify/internal/timer"
)

const (
	appID   = "io.github.jmylchreest.desknotifyd"
	appName = "desknotifyd"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	configPath := flag.String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/desknotify/desknotifyd.toml)")
	flag.Parse()

	info, err := product.Load()
	if err != nil {
		slog.Error("failed to load product metadata", "error", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(appName, "version", info.VersionString())
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debug || info.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	path := *configPath
	if path == "" {
		path, err = config.DaemonConfigPath()
		if err != nil {
			logger.Error("failed to get config path", "error", err)
			os.Exit(1)
		}
	}

	run(logger, info, path)
}

func run(logger *slog.Logger, info product.Info, configPath string) {
	logger.Info("starting desknotifyd",
		"version", info.VersionString(),
		"os_build", info.OSBuild,
		"reordering", info.Features.Reordering,
	)

	cfg, err := config.LoadDaemonConfigFrom(configPath)
	if err != nil {
		logger.Error("failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}
	settings := config.NewStore(cfg)

	statePath, err := store.StateFilePath()
	if err != nil {
		logger.Error("failed to get state path", "error", err)
		os.Exit(1)
	}

	lastPath, err := store.LastNotificationPath()
	if err != nil {
		logger.Error("failed to get last notification path", "error", err)
		os.Exit(1)
	}
	recorder := store.NewRecorder(lastPath, logger)
	defer recorder.Stop()

	var paused atomic.Bool
	loadPaused := func() {
		state, err := store.LoadSharedStateFrom(statePath)
		if err != nil {
			logger.Warn("failed to load shared state", "error", err)
			return
		}
		if paused.Swap(state.Paused) != state.Paused {
			logger.Info("pause state changed", "paused", state.Paused, "by", state.PausedBy)
		}
	}
	loadPaused()

	app := adw.NewApplication(appID, 0)

	var (
		service       *daemon.Service
		dispatcher    *display.IdleDispatcher
		eventServer   *dbus.EventServer
		configWatcher *daemon.ConfigWatcher
		stateWatcher  *daemon.FileWatcher
		styleWatcher  *daemon.FileWatcher
		running       atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := func() {
		if configWatcher != nil {
			configWatcher.Stop()
		}
		if stateWatcher != nil {
			stateWatcher.Stop()
		}
		if styleWatcher != nil {
			styleWatcher.Stop()
		}
		if eventServer != nil {
			_ = eventServer.Stop()
		}
		if service != nil {
			service.Close()
		}
		if dispatcher != nil {
			dispatcher.Close()
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
		glib.IdleAdd(func() {
			if running.Load() {
				app.Quit()
			}
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		style := display.NewStyle(logger)
		if err := style.Apply(nil); err != nil {
			logger.Warn("failed to apply style", "error", err)
		}

		dispatcher = &display.IdleDispatcher{}
		hub := desktop.NewHub(logger)

		service, err = daemon.NewService(daemon.Options{
			Logger:     logger,
			Product:    info,
			Settings:   settings,
			Monitors:   display.NewMonitorResolver(logger),
			Windows:    display.NewFactory(&app.Application, settings, style, logger),
			Dispatcher: dispatcher,
			Clock:      timer.System{},
			Paused:     paused.Load,
			OnShown: func(req daemon.Request) {
				if eventServer != nil {
					err := eventServer.EmitNotificationShown(dbus.ShownNotification{
						ID:     req.ID,
						Header: req.Header,
						Body:   req.Body,
					})
					if err != nil {
						logger.Debug("failed to emit NotificationShown", "error", err)
					}
				}
				recorder.Record(store.LastNotification{
					ID:      req.ID,
					Kind:    string(req.Kind),
					Header:  req.Header,
					Body:    req.Body,
					ShownAt: req.CreatedAt.Unix(),
				})
			},
		})
		if err != nil {
			logger.Error("failed to create notification service", "error", err)
			app.Quit()
			return
		}
		if err := service.Subscribe(hub); err != nil {
			logger.Error("failed to subscribe to desktop events", "error", err)
			app.Quit()
			return
		}

		eventServer = dbus.NewEventServer(hub, logger)
		eventServer.SetServerInfo(dbus.ServerInfo{
			Name:    appName,
			Vendor:  info.Company,
			Version: info.VersionString(),
			OSBuild: strconv.Itoa(info.OSBuild),
		})
		if err := eventServer.Start(); err != nil {
			logger.Error("failed to start D-Bus server", "error", err)
			app.Quit()
			return
		}

		notifier := daemon.NewInternalNotifier(settings, service.Notify, logger)

		configWatcher = daemon.NewConfigWatcher(configPath, settings, logger)
		configWatcher.SetReloadCallback(func(*config.DaemonConfig) {
			notifier.NotifyConfigReloaded()
		})
		configWatcher.SetErrorCallback(notifier.NotifyConfigError)
		if err := configWatcher.Start(ctx); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		}

		stateWatcher = daemon.NewFileWatcher(statePath, logger, loadPaused)
		if err := stateWatcher.Start(ctx); err != nil {
			logger.Warn("failed to start state watcher", "error", err)
		}

		if stylePath, err := display.UserStylePath(); err != nil {
			logger.Warn("failed to get user stylesheet path", "error", err)
		} else {
			loadStyle := func() {
				if err := style.LoadUserCSS(stylePath); err != nil {
					logger.Warn("failed to load user stylesheet", "error", err)
				}
			}
			loadStyle()
			styleWatcher = daemon.NewFileWatcher(stylePath, logger, func() {
				if err := dispatcher.Post(loadStyle); err != nil {
					logger.Debug("failed to schedule stylesheet reload", "error", err)
				}
			})
			if err := styleWatcher.Start(ctx); err != nil {
				logger.Warn("failed to start stylesheet watcher", "error", err)
			}
		}

		logger.Info("desknotifyd ready", "dbus_interface", dbus.DBusInterface, "paused", paused.Load())

		// GTK applications quit once their last window closes.
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		shutdown()
		running.Store(false)
	})

	status := app.Run(os.Args[:1])
	cancel()

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}

	logger.Info("desknotifyd stopped")
}
