package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay absorbs the burst of events an editor produces for a single save
var settleDelay = 150 * time.Millisecond

// watchAndRender runs render, then restarts it whenever one of paths changes. A change
// during a render cancels it. Returns when ctx is cancelled.
func watchAndRender(ctx context.Context, w io.Writer, paths []string, render func(context.Context) error) error {
	if len(paths) == 0 {
		return errors.New("--watch needs a config file, scene file or mesh to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Directories are watched so files replaced by editors keep being tracked
	watched := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	return watchLoop(ctx, w, watcher.Events, watcher.Errors, watched, strings.Join(paths, ", "), render)
}

// watchLoop drives the render/restart cycle from the watcher's channels
func watchLoop(ctx context.Context, w io.Writer, events <-chan fsnotify.Event, errs <-chan error,
	watched map[string]bool, label string, render func(context.Context) error) error {
	for {
		renderCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() { done <- render(renderCtx) }()

		running, restart := true, false
		stop := func() {
			cancel()
			if running {
				<-done
			}
		}
		for !restart {
			select {
			case <-ctx.Done():
				stop()
				return nil
			case err := <-done:
				running = false
				if err != nil {
					errorLine(w, err)
				}
				fmt.Fprintf(w, "watching %s for changes\n", label)
			case event, ok := <-events:
				if !ok {
					stop()
					return nil
				}
				restart = watched[filepath.Clean(event.Name)] && isContentChange(event)
			case err, ok := <-errs:
				if !ok {
					// A nil channel is never selected
					errs = nil
					continue
				}
				fmt.Fprintf(w, "watch error: %v\n", err)
			}
		}

		stop()
		settle(events)
	}
}

func isContentChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

// settle discards events until none arrive for settleDelay
func settle(events <-chan fsnotify.Event) {
	timer := time.NewTimer(settleDelay)
	defer timer.Stop()
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
			timer.Reset(settleDelay)
		case <-timer.C:
			return
		}
	}
}
