package config

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/its-ME-007/adk-web-api/internal/observability"
)

// WatchRoster reloads the roster file whenever it changes and hands the new
// roster to onChange. Sessions created after a reload pick up the new panel;
// existing sessions keep the roster they started with. A roster that fails
// to parse is logged and skipped.
func WatchRoster(ctx context.Context, path string, onChange func(Roster)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return err
	}

	log := observability.Logger().With("roster_path", path)

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				roster, err := LoadRoster(path)
				if err != nil {
					log.Error("roster reload failed", "error", err)
					continue
				}

				log.Info("roster reloaded", "workers", len(roster.Workers))
				onChange(roster)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("roster watcher error", "error", err)
			}
		}
	}()

	return nil
}
