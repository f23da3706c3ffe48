// Package watch reloads the district seed file when it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/devcompany145/Business-developers-ai/internal/logging"
	"github.com/devcompany145/Business-developers-ai/pkg/district"
)

// DefaultDebounce collapses the burst of events editors emit on save.
const DefaultDebounce = 250 * time.Millisecond

// ReloadFunc receives each successfully parsed snapshot.
type ReloadFunc func(ctx context.Context, s *district.Snapshot) error

// Seed watches one YAML seed file.
type Seed struct {
	path     string
	debounce time.Duration
	reload   ReloadFunc
	logger   logging.Logger
}

// NewSeed creates a watcher for path. debounce <= 0 uses DefaultDebounce.
func NewSeed(path string, debounce time.Duration, reload ReloadFunc, logger logging.Logger) *Seed {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Seed{path: path, debounce: debounce, reload: reload, logger: logger.Named("watch")}
}

// Run blocks until ctx is cancelled. The parent directory is watched rather
// than the file so atomic rename-on-save keeps working. A seed that fails to
// parse is logged and skipped; the previous district stays live.
func (s *Seed) Run(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", s.path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	s.logger.Info("watching seed file", logging.String("path", abs))

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(s.debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", logging.Err(err))
		case <-timer.C:
			s.apply(ctx, abs)
		}
	}
}

func (s *Seed) apply(ctx context.Context, path string) {
	snap, err := district.Load(path)
	if err != nil {
		s.logger.Warn("seed reload skipped", logging.String("path", path), logging.Err(err))
		return
	}
	if err := s.reload(ctx, snap); err != nil {
		s.logger.Warn("seed reload failed", logging.String("path", path), logging.Err(err))
		return
	}
	s.logger.Info("seed reloaded",
		logging.String("path", path),
		logging.Int("businesses", len(snap.Businesses)),
	)
}
