package jobs

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDelay = 250 * time.Millisecond

// Watch calls fn with the re-parsed file every time path changes on disk.
// Changes are debounced and invalid files are logged and skipped.
// It blocks until ctx is done.
func Watch(ctx context.Context, path string, fn func(*File)) error {
	log := zap.S().Named("jobs")
	dir := filepath.Dir(path)
	file := filepath.Base(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create jobs watcher: %w", err)
	}
	defer w.Close()

	// watch the directory so editors replacing the file are seen
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	debounce := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceDelay, func() {
			if ctx.Err() != nil {
				return
			}
			f, err := Load(path)
			if err != nil {
				log.Warnw("jobs file rejected", "path", path, "error", err)
				return
			}
			log.Infow("jobs file reloaded", "path", path, "jobs", len(f.Jobs))
			fn(f)
		})
	}
	defer func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}()

	log.Debugw("jobs watcher started", "dir", dir, "file", file)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != file {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnw("jobs watcher error", "dir", dir, "error", err)
		}
	}
}
