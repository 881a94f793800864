package blog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watch invalidates cache entries whenever a markdown file in dir is created,
// written, renamed or removed. It blocks until ctx is cancelled.
func Watch(ctx context.Context, dir string, cache *CachedStore, logger zerolog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("blog: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("blog: watch %s: %w", dir, err)
	}
	logger.Info().Str("dir", dir).Msg("watching content directory")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(ev.Name)
			if !strings.HasSuffix(name, extension) || ev.Op == fsnotify.Chmod {
				continue
			}
			slug := strings.TrimSuffix(name, extension)
			cache.Invalidate(slug)
			logger.Debug().Str("slug", slug).Str("op", ev.Op.String()).Msg("content changed")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("content watcher error")
			// Dropped events may have hidden changes.
			cache.Reset()
		}
	}
}
