package catalog

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// EventCallback is called after a watcher-driven catalog change.
// kind is one of "loaded", "removed".
type EventCallback func(kind, slug string)

// Watch starts an fsnotify watcher on the examples directory and keeps the
// store in sync with file changes until ctx is cancelled. It calls cb (if
// non-nil) after each successful mutation.
func Watch(ctx context.Context, store *Store, dir string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("catalog watcher: started", slog.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			logger.Info("catalog watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isExampleFile(ev.Name) {
				continue
			}
			slug := slugFor(ev.Name)

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				if loadErr := store.LoadFile(ev.Name); loadErr != nil {
					logger.Warn("catalog watcher: load failed",
						slog.String("path", ev.Name),
						slog.String("error", loadErr.Error()))
					continue
				}
				logger.Debug("catalog watcher: example loaded", slog.String("slug", slug))
				if cb != nil {
					cb("loaded", slug)
				}

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				store.Remove(ev.Name)
				logger.Debug("catalog watcher: example removed", slog.String("slug", slug))
				if cb != nil {
					cb("removed", slug)
				}
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("catalog watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
