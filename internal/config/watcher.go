package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
}

// NewWatcher watches the directory holding path. Editors often replace
// files by rename, so watching the file itself would miss updates.
func NewWatcher(path string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		logger:   logger,
		watcher:  fw,
	}, nil
}

// Run delivers each successfully reloaded config to onChange until ctx is
// cancelled. Invalid files are logged and skipped; the last good config stays.
func (w *Watcher) Run(ctx context.Context, onChange func(Config)) error {
	defer func() { _ = w.watcher.Close() }()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	w.logger.Info("config watcher started", zap.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("config watcher events channel closed")
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("config file event", zap.String("op", ev.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("config watcher errors channel closed")
			}
			w.logger.Warn("config watcher error", zap.Error(err))

		case <-timer.C:
			cfg, err := LoadFile(w.path)
			if err != nil {
				w.logger.Warn("config reload failed", zap.Error(err))
				continue
			}
			w.logger.Info("config reloaded",
				zap.Float64("default_buffer", cfg.General.DefaultBuffer),
				zap.String("theme", cfg.Appearance.Theme),
			)
			onChange(cfg)
		}
	}
}
