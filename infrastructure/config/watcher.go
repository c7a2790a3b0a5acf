package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Watcher reloads the YAML config file when it changes and applies the
// settings that can change at runtime. Today that is the log level.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	level    zap.AtomicLevel
	logger   *zap.Logger
	mu       sync.Mutex
	onChange []func(*Config)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the config file at path
func NewWatcher(path string, level zap.AtomicLevel, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Editors and config management replace files by rename, so watch the
	// directory rather than the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &Watcher{
		path:    path,
		watcher: fw,
		level:   level,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// OnChange registers fn to run after every successful reload
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Start begins watching for configuration changes
func (w *Watcher) Start() {
	go w.watchLoop()
	w.logger.Info("Configuration watcher started", zap.String("path", w.path))
}

// Stop stops watching for configuration changes
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
		w.logger.Info("Configuration watcher stopped")
	})
}

func (w *Watcher) watchLoop() {
	var debounce *time.Timer
	const debounceDuration = 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDuration, func() {
				if err := w.reload(); err != nil {
					w.logger.Error("Failed to reload configuration", zap.Error(err))
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() error {
	cfg := Default()
	if err := LoadFile(w.path, cfg); err != nil {
		return err
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	if previous := w.level.Level(); previous != level {
		w.level.SetLevel(level)
		w.logger.Info("Log level changed",
			zap.Stringer("from", previous),
			zap.Stringer("to", level),
		)
	}

	w.mu.Lock()
	handlers := append([]func(*Config){}, w.onChange...)
	w.mu.Unlock()
	for _, fn := range handlers {
		fn(cfg)
	}
	return nil
}
