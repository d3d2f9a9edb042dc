package scenario

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/pdrpinto/astar/v2/logging"
)

// Watch reloads the scenario at path whenever it is written or replaced and
// hands every valid version to onChange. Invalid edits are logged and skipped.
// It blocks until ctx is done.
//
// The parent directory is watched rather than the file so editors that save by
// rename keep triggering reloads.
func Watch(ctx context.Context, path string, logger logging.Logger, onChange func(*Scenario)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			s, err := Load(abs)
			if err != nil {
				logger.Warn("scenario reload skipped", "path", abs, "error", err)
				continue
			}
			logger.Info("scenario reloaded", "path", abs, "name", s.Name)
			onChange(s)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("scenario watcher error", "error", err)
		}
	}
}
