package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch initializes a filesystem watcher over the given files and returns a
// channel that emits the changed path after debouncing. Editors that save
// atomically (rename + create) are handled by also reacting to Create
// events. The watcher runs until the context is cancelled.
func Watch(ctx context.Context, files ...string) <-chan string {
	changedCh := make(chan string, 1)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("Failed to create fsnotify watcher", "error", err)
		close(changedCh)
		return changedCh
	}

	watching := 0
	for _, file := range files {
		if file == "" {
			continue
		}
		absPath, err := filepath.Abs(file)
		if err != nil {
			slog.Warn("Could not resolve watch path", "file", file)
			continue
		}
		if err := watcher.Add(absPath); err != nil {
			slog.Warn("Could not watch file", "file", file, "error", err)
			continue
		}
		slog.Debug("Watching file", "file", absPath)
		watching++
	}
	if watching == 0 {
		watcher.Close()
		close(changedCh)
		return changedCh
	}

	go func() {
		defer watcher.Close()
		defer close(changedCh)

		const debounce = 500 * time.Millisecond
		var timer *time.Timer

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				name := event.Name
				timer = time.AfterFunc(debounce, func() {
					slog.Info("File change detected", "file", name)
					select {
					case changedCh <- name:
					default:
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("Watcher error", "error", err)
			}
		}
	}()

	return changedCh
}
