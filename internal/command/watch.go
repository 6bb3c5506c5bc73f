package command

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/constraints/pkg/logger"
)

// watchDebounce collapses the burst of events editors emit for one save.
const watchDebounce = 100 * time.Millisecond

// watch calls run after any of files changes, until ctx is done. Parent
// directories are watched so files replaced by rename keep being seen.
// Failed runs are logged and do not stop the loop.
func watch(ctx context.Context, log *slog.Logger, files []string, run func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Join(ErrWatch, err)
	}
	defer w.Close()

	targets := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return errors.Join(ErrWatch, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return errors.Join(ErrWatch, err)
		}
	}
	log.InfoContext(ctx, "watching for changes", slog.Int("files", len(targets)))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if abs, err := filepath.Abs(ev.Name); err != nil || !targets[abs] {
				continue
			}
			log.DebugContext(ctx, "file changed", logger.Source(ev.Name), slog.String("op", ev.Op.String()))
			pending = time.After(watchDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WarnContext(ctx, "watcher error", logger.Error(err))

		case <-pending:
			pending = nil
			if err := run(ctx); err != nil {
				if _, isExit := IsExit(err); !isExit {
					log.ErrorContext(ctx, "run failed", logger.Error(err))
				}
			}
		}
	}
}
