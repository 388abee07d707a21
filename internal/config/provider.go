package config

import "sync/atomic"

// Provider returns the configuration currently in effect.
type Provider interface {
	Current() *DaemonConfig
}

// Store holds the live configuration and is swapped on hot reload.
// The stored config must not be mutated after Set.
type Store struct {
	cfg atomic.Pointer[DaemonConfig]
}

// NewStore creates a Store holding cfg, or the defaults when cfg is nil.
func NewStore(cfg *DaemonConfig) *Store {
	if cfg == nil {
		cfg = DefaultDaemonConfig()
	}
	s := &Store{}
	s.cfg.Store(cfg)
	return s
}

// Current returns the configuration in effect.
func (s *Store) Current() *DaemonConfig {
	return s.cfg.Load()
}

// Set replaces the configuration in effect.
func (s *Store) Set(cfg *DaemonConfig) {
	if cfg == nil {
		return
	}
	s.cfg.Store(cfg)
}
