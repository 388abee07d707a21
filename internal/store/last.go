package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LastNotification records the most recently displayed notification.
// It is written only by desknotifyd, to its own file, so it never races
// with pause changes made by the CLI.
type LastNotification struct {
	ID      string `json:"id" yaml:"id"`
	Kind    string `json:"kind" yaml:"kind"`
	Header  string `json:"header,omitempty" yaml:"header,omitempty"`
	Body    string `json:"body" yaml:"body"`
	ShownAt int64  `json:"shown_at" yaml:"shown_at"` // Unix timestamp
}

// LastNotificationPath returns the path to the last notification file.
func LastNotificationPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "last_notification.json"), nil
}

// LoadLastNotificationFrom reads the last notification from path.
// A missing or corrupted file yields nil.
func LoadLastNotificationFrom(path string) (*LastNotification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read last notification: %w", err)
	}

	var n LastNotification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, nil
	}
	return &n, nil
}

// SaveLastNotificationTo writes n to path atomically. A zero ShownAt is set to now.
func SaveLastNotificationTo(path string, n LastNotification) error {
	if n.ShownAt == 0 {
		n.ShownAt = time.Now().Unix()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal last notification: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write last notification: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write last notification: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Recorder writes last notifications from a single goroutine.
// Record never blocks; when writes fall behind only the newest is kept,
// so the file always ends on the most recent notification.
type Recorder struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	pending *LastNotification

	wake     chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewRecorder creates a recorder for path and starts its writer.
func NewRecorder(path string, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Recorder{
		path:   path,
		logger: logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	r.wg.Add(1)
	go r.loop()
	return r
}

// Record queues n, replacing anything not yet written.
func (r *Recorder) Record(n LastNotification) {
	r.mu.Lock()
	r.pending = &n
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Stop writes any queued notification and stops the writer. Safe to call more than once.
func (r *Recorder) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
	})
}

func (r *Recorder) loop() {
	defer r.wg.Done()
	for {
		select {
		case <-r.wake:
			r.flush()
		case <-r.done:
			r.flush()
			return
		}
	}
}

func (r *Recorder) flush() {
	r.mu.Lock()
	n := r.pending
	r.pending = nil
	r.mu.Unlock()

	if n == nil {
		return
	}
	if err := SaveLastNotificationTo(r.path, *n); err != nil {
		r.logger.Warn("failed to record last notification", "id", n.ID, "error", err)
	}
}
