// Package store persists the state shared between desknotify and desknotifyd.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CurrentSchemaVersion is the current version of the state schema.
const CurrentSchemaVersion = 1

// DataDir returns the desknotify data directory.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/desknotify.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "desknotify"), nil
}

// StateFilePath returns the path to the state file.
func StateFilePath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "state.json"), nil
}

// SharedState is persisted to ~/.local/share/desknotify/state.json.
// Only the CLI writes it; the daemon watches it. The daemon's own record of
// the last notification lives in a separate file, see LastNotification.
type SharedState struct {
	Paused   bool   `json:"paused"`
	PausedAt int64  `json:"paused_at,omitempty"` // Unix timestamp
	PausedBy string `json:"paused_by,omitempty"` // e.g. "cli"

	SchemaVersion int `json:"schema_version"`
}

// stateFileMutex protects concurrent access to the state file within a process.
var stateFileMutex sync.RWMutex

// DefaultSharedState returns a new SharedState with default values.
func DefaultSharedState() *SharedState {
	return &SharedState{SchemaVersion: CurrentSchemaVersion}
}

// LoadSharedState loads the shared state from the default path.
func LoadSharedState() (*SharedState, error) {
	path, err := StateFilePath()
	if err != nil {
		return nil, err
	}
	return LoadSharedStateFrom(path)
}

// LoadSharedStateFrom loads the shared state from path.
// A missing or corrupted file yields the default state.
func LoadSharedStateFrom(path string) (*SharedState, error) {
	stateFileMutex.RLock()
	defer stateFileMutex.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSharedState(), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state SharedState
	if err := json.Unmarshal(data, &state); err != nil {
		return DefaultSharedState(), nil
	}
	if state.SchemaVersion == 0 {
		state.SchemaVersion = CurrentSchemaVersion
	}
	return &state, nil
}

// SaveSharedState saves the shared state to the default path.
func SaveSharedState(state *SharedState) error {
	path, err := StateFilePath()
	if err != nil {
		return err
	}
	return SaveSharedStateTo(path, state)
}

// SaveSharedStateTo writes the shared state to path atomically.
func SaveSharedStateTo(path string, state *SharedState) error {
	stateFileMutex.Lock()
	defer stateFileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if state.SchemaVersion == 0 {
		state.SchemaVersion = CurrentSchemaVersion
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// SetPaused updates the pause state. source identifies who changed it.
func (s *SharedState) SetPaused(paused bool, source string) {
	s.Paused = paused
	if paused {
		s.PausedAt = time.Now().Unix()
		s.PausedBy = source
	} else {
		s.PausedAt = 0
		s.PausedBy = ""
	}
}

// TogglePaused flips the pause state and returns the new value.
func (s *SharedState) TogglePaused(source string) bool {
	s.SetPaused(!s.Paused, source)
	return s.Paused
}
