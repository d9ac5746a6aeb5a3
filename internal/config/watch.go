package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ThatOtherAndrew/Tinsel/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the settings file whenever it is written or replaced and
// passes the result to onChange. It watches the parent directory so editors
// that save by rename are still seen. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, logger logging.Logger, onChange func(*Settings)) error {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create settings watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				logger.Warnf("Failed to reload settings: %v", err)
				continue
			}
			logger.Infof("Reloaded settings from %s", path)
			onChange(ParseSettings(data, logger))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("settings watcher error: %v", err)
		}
	}
}
