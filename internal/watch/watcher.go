// Package watch observes the profile file for external writes. The
// game rewrites the whole file on exit, usually via a temp file and a
// rename, so the watcher monitors the parent directory and filters
// events down to the profile's name.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeCallback is called after the profile file has settled
// following an external write.
type ChangeCallback func(path string)

// debounce coalesces the event bursts a whole-file rewrite produces.
const debounce = 300 * time.Millisecond

// Watch starts an fsnotify watcher on the profile's parent directory
// and invokes cb once per settled change until ctx is cancelled.
// Watching the directory rather than the file keeps the watch alive
// across rename-over-replace, which drops inode-level watches.
func Watch(ctx context.Context, profilePath string, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(profilePath)
	name := filepath.Base(profilePath)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("path", profilePath))

	var settleTimer *time.Timer
	var settleCh <-chan time.Time

	scheduleSettle := func() {
		if settleTimer == nil {
			settleTimer = time.NewTimer(debounce)
			settleCh = settleTimer.C
		} else {
			settleTimer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if settleTimer != nil {
				settleTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-settleCh:
			logger.Debug("watcher: profile changed", slog.String("path", profilePath))
			if cb != nil {
				cb(profilePath)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				scheduleSettle()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
