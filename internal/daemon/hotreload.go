package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/desknotify/internal/config"
)

// fileWatcher calls onChange whenever path is written or replaced.
// It watches the parent directory so atomic rename-over saves are seen.
type fileWatcher struct {
	logger   *slog.Logger
	path     string
	onChange func()

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	running bool
}

func newFileWatcher(path string, logger *slog.Logger, onChange func()) *fileWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &fileWatcher{logger: logger, path: path, onChange: onChange}
}

func (fw *fileWatcher) start(ctx context.Context) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.running {
		return nil
	}

	dir := filepath.Dir(fw.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	fw.watcher = watcher
	fw.done = make(chan struct{})
	fw.running = true

	fw.wg.Add(1)
	go fw.loop(ctx, watcher, fw.done)

	fw.logger.Debug("file watcher started", "path", fw.path)
	return nil
}

func (fw *fileWatcher) stop() {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		return
	}
	fw.running = false
	close(fw.done)
	_ = fw.watcher.Close()
	fw.mu.Unlock()

	fw.wg.Wait()
	fw.logger.Debug("file watcher stopped", "path", fw.path)
}

func (fw *fileWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher, done <-chan struct{}) {
	defer fw.wg.Done()

	filename := filepath.Base(fw.path)
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.logger.Debug("file changed", "path", fw.path, "op", event.Op.String())
				fw.onChange()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", "path", fw.path, "error", err)
		}
	}
}

// ConfigWatcher reloads the daemon config file when it changes and publishes
// valid configurations to a config.Store. Invalid files leave the current
// configuration in place.
type ConfigWatcher struct {
	logger *slog.Logger
	path   string
	store  *config.Store
	fw     *fileWatcher

	mu       sync.Mutex
	onReload func(*config.DaemonConfig)
	onError  func(error)
}

// NewConfigWatcher creates a watcher for the config file at path.
func NewConfigWatcher(path string, store *config.Store, logger *slog.Logger) *ConfigWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	w := &ConfigWatcher{logger: logger, path: path, store: store}
	w.fw = newFileWatcher(path, logger, func() { _ = w.Reload() })
	return w
}

// SetReloadCallback sets the callback invoked after a successful reload.
func (w *ConfigWatcher) SetReloadCallback(callback func(*config.DaemonConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = callback
}

// SetErrorCallback sets the callback invoked when a changed file fails to load.
func (w *ConfigWatcher) SetErrorCallback(callback func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = callback
}

// Start begins watching. It returns once the watch is registered.
func (w *ConfigWatcher) Start(ctx context.Context) error {
	return w.fw.start(ctx)
}

// Stop stops watching. It is safe to call more than once.
func (w *ConfigWatcher) Stop() {
	w.fw.stop()
}

// Reload loads the file and, if it is valid and differs from the current
// configuration, stores it and runs the reload callback.
func (w *ConfigWatcher) Reload() error {
	w.mu.Lock()
	onReload, onError := w.onReload, w.onError
	w.mu.Unlock()

	cfg, err := config.LoadDaemonConfigFrom(w.path)
	if err != nil {
		w.logger.Warn("config file changed but validation failed", "path", w.path, "error", err)
		if onError != nil {
			onError(err)
		}
		return err
	}

	if reflect.DeepEqual(cfg, w.store.Current()) {
		w.logger.Debug("config file changed without effective changes", "path", w.path)
		return nil
	}

	w.store.Set(cfg)
	w.logger.Info("config reloaded", "path", w.path)
	if onReload != nil {
		onReload(cfg)
	}
	return nil
}

// FileWatcher runs a callback when a single file is written or created.
// The daemon uses it for the shared state file and the user stylesheet.
type FileWatcher struct {
	fw *fileWatcher
}

// NewFileWatcher creates a watcher for the file at path.
func NewFileWatcher(path string, logger *slog.Logger, onChange func()) *FileWatcher {
	return &FileWatcher{fw: newFileWatcher(path, logger, onChange)}
}

// Start begins watching.
func (w *FileWatcher) Start(ctx context.Context) error {
	return w.fw.start(ctx)
}

// Stop stops watching. It is safe to call more than once.
func (w *FileWatcher) Stop() {
	w.fw.stop()
}
