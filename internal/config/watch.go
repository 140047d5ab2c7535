package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watcher reloads a YAML config file on write, following the teacher's
// internal/infrastructure/config.Manager.Watch pattern: Viper's own
// fsnotify-backed file watch, re-unmarshalled and re-validated under a lock,
// with registered callbacks fired after every successful reload.
type Watcher struct {
	path string

	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
	watching  bool

	v *viper.Viper
}

// NewWatcher loads path once (it must be non-empty; watching the
// environment-only/defaults-only configuration makes no sense) and returns a
// Watcher positioned to reload it on every subsequent write, once Start is
// called.
func NewWatcher(path string) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("config: watch requires a file path")
	}

	v, cfg, err := newViper(path)
	if err != nil {
		return nil, err
	}

	return &Watcher{path: path, config: cfg, v: v}, nil
}

// Get returns the most recently loaded configuration (thread-safe).
func (w *Watcher) Get() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	cfg := *w.config
	return &cfg
}

// OnChange registers a callback invoked, with the lock released, after every
// successful reload triggered by a file-system event.
func (w *Watcher) OnChange(callback func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching the config file for changes and reloading
// automatically; calling it more than once is a no-op, matching the
// teacher's Manager.Watch.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watching {
		return nil
	}

	w.v.WatchConfig()
	w.v.OnConfigChange(func(_ fsnotify.Event) {
		if err := w.reload(); err != nil {
			return
		}

		w.mu.RLock()
		cfg := w.config
		callbacks := make([]func(*Config), len(w.callbacks))
		copy(callbacks, w.callbacks)
		w.mu.RUnlock()

		for _, cb := range callbacks {
			cb(cfg)
		}
	})

	w.watching = true
	return nil
}

// reload re-reads and re-validates the file at w.path, leaving w.config
// untouched if either step fails so a bad edit never clobbers a known-good
// configuration already in use.
func (w *Watcher) reload() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, cfg, err := newViper(w.path)
	if err != nil {
		return err
	}
	w.config = cfg
	return nil
}
