package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watch reloads the settings whenever the file changes on disk and calls fn
// after each successful reload. It returns once the watcher is running; the
// watch stops when ctx is cancelled.
func (m *Manager) Watch(ctx context.Context, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create settings watcher: %w", err)
	}

	// Editors and our own writes replace the file, so watch the directory.
	dir := filepath.Dir(m.configPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(m.configPath)
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
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				// A truncated file mid-write would otherwise read as all defaults.
				if info, err := os.Stat(target); err != nil || info.Size() == 0 {
					continue
				}
				if err := m.Load(); err != nil {
					log.Warnf("Config: reload failed: %v", err)
					continue
				}
				log.WithField("path", target).Debug("Config: settings reloaded")
				fn()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warnf("Config: watcher error: %v", err)
			}
		}
	}()
	return nil
}
