// Package watcher re-sends a form whenever one of its file attachments changes.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	logAdapter "github.com/bft-labs/formship/internal/adapters/log"
	"github.com/bft-labs/formship/internal/ports"
)

// SendFunc performs one submission.
type SendFunc func(ctx context.Context) error

// Config holds configuration options for the watcher.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before sending.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// Logger receives watcher logs; discarded when nil.
	Logger ports.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{DebounceDelay: 100 * time.Millisecond}
}

// Watcher monitors a fixed set of files. It watches their parent
// directories so that editors replacing a file by rename are still seen.
type Watcher struct {
	debounceDelay time.Duration
	logger        ports.Logger
	files         map[string]struct{}
	dirs          []string
	send          SendFunc
}

// New creates a watcher for paths. Relative paths are resolved against the
// working directory.
func New(cfg Config, paths []string, send SendFunc) (*Watcher, error) {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = logAdapter.NewNoopLogger()
	}

	w := &Watcher{
		debounceDelay: cfg.DebounceDelay,
		logger:        cfg.Logger,
		files:         make(map[string]struct{}, len(paths)),
		send:          send,
	}
	seen := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// Run sends once, then sends again after every debounced change of a watched
// file until ctx is cancelled. Send failures are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.files) == 0 {
		w.logger.Warn("watcher: no file attachments to watch")
		w.sendOnce(ctx)
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	w.sendOnce(ctx)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if _, watched := w.files[filepath.Clean(event.Name)]; !watched {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Debug("watcher: attachment changed", ports.String("path", event.Name))
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounceDelay)
			fire = timer.C

		case <-fire:
			fire = nil
			w.sendOnce(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher: watch error", ports.Err(err))
		}
	}
}

func (w *Watcher) sendOnce(ctx context.Context) {
	if err := w.send(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Error("watcher: send failed", ports.Err(err))
		return
	}
	w.logger.Info("watcher: sent")
}
