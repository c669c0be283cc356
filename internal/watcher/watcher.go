// Package watcher re-runs the render pipeline when theme, scheme, or
// template inputs change on disk. Rapid bursts of filesystem events (editor
// saves, git checkouts) are debounced into a single re-render.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/themerdev/themer/internal/logging"
)

// Handler is invoked once per debounced change burst.
type Handler func(ctx context.Context, changed []string) error

// Watcher watches a set of input directories recursively.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   logging.Logger
	debounce time.Duration
	handler  Handler

	// ignore filters out paths that themer itself writes, so a render does
	// not retrigger the watcher.
	ignore func(path string) bool
}

// New creates a watcher with the given debounce window.
func New(logger logging.Logger, debounce time.Duration, ignore func(path string) bool, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if ignore == nil {
		ignore = func(string) bool { return false }
	}

	return &Watcher{
		watcher:  fsw,
		logger:   logger.WithComponent("watcher"),
		debounce: debounce,
		handler:  handler,
		ignore:   ignore,
	}, nil
}

// AddRecursive registers dir and all its subdirectories. Missing directories
// are skipped: a theme may not have local templates yet.
func (w *Watcher) AddRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}

			return err
		}
		if !d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		return w.watcher.Add(path)
	})
}

// Run blocks, collecting events and invoking the handler after each
// debounced burst, until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var (
		pending map[string]struct{}
		timer   *time.Timer
		fire    <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.ignore(event.Name) {
				continue
			}

			// New directories must be added to the watch set or changes
			// inside them go unseen.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.AddRecursive(event.Name); err != nil {
						w.logger.Warn(ctx, err, "failed to watch new directory", "path", event.Name)
					}
				}
			}

			if pending == nil {
				pending = make(map[string]struct{})
			}
			pending[event.Name] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn(ctx, err, "watch error")

		case <-fire:
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			pending = nil
			fire = nil

			w.logger.Info(ctx, "inputs changed, re-rendering", "files", len(changed))
			if err := w.handler(ctx, changed); err != nil {
				w.logger.Error(ctx, err, "re-render failed")
			}
		}
	}
}
