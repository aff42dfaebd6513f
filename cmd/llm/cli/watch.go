package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/deepnoodle-ai/structure/log"
	"github.com/fsnotify/fsnotify"
)

// schemaWatchOptions configure a schemaWatcher.
type schemaWatchOptions struct {
	Patterns []string
	Debounce time.Duration
	Logger   log.Logger

	// OnChange is called with the path of each written or created file that
	// matches a pattern. Errors are logged and watching continues.
	OnChange func(path string) error
}

// schemaWatcher reports changes to schema files.
type schemaWatcher struct {
	options   schemaWatchOptions
	watcher   *fsnotify.Watcher
	logger    log.Logger
	debouncer map[string]time.Time
	now       func() time.Time
}

func newSchemaWatcher(options schemaWatchOptions) (*schemaWatcher, error) {
	if len(options.Patterns) == 0 {
		return nil, fmt.Errorf("at least one pattern is required")
	}
	if options.OnChange == nil {
		return nil, fmt.Errorf("a change handler is required")
	}
	if options.Logger == nil {
		options.Logger = log.NewNullLogger()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &schemaWatcher{
		options:   options,
		watcher:   watcher,
		logger:    options.Logger,
		debouncer: make(map[string]time.Time),
		now:       time.Now,
	}, nil
}

// Start watches until ctx is done or the watcher is closed.
func (sw *schemaWatcher) Start(ctx context.Context) error {
	defer sw.watcher.Close()

	if err := sw.addWatchPaths(); err != nil {
		return fmt.Errorf("failed to add watch paths: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return nil
			}
			if err := sw.handleEvent(event); err != nil {
				sw.logger.Error("schema translation failed", "file", event.Name, "error", err)
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return nil
			}
			sw.logger.Error("file watcher error", "error", err)
		}
	}
}

// addWatchPaths watches the directory of every file matching a pattern.
func (sw *schemaWatcher) addWatchPaths() error {
	watchedDirs := make(map[string]bool)

	for _, pattern := range sw.options.Patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		for _, match := range matches {
			dir := filepath.Dir(match)
			if watchedDirs[dir] {
				continue
			}
			if err := sw.watcher.Add(dir); err != nil {
				sw.logger.Warn("failed to watch directory", "dir", dir, "error", err)
				continue
			}
			sw.logger.Debug("watching directory", "dir", dir)
			watchedDirs[dir] = true
		}
	}

	if len(watchedDirs) == 0 {
		return fmt.Errorf("no directories found to watch for patterns: %s", strings.Join(sw.options.Patterns, ", "))
	}
	return nil
}

func (sw *schemaWatcher) handleEvent(event fsnotify.Event) error {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return nil
	}
	path := filepath.Clean(event.Name)
	if !sw.matchesPatterns(path) {
		return nil
	}

	// Editors often write a file several times in a row.
	now := sw.now()
	if last, ok := sw.debouncer[path]; ok && now.Sub(last) < sw.options.Debounce {
		return nil
	}
	sw.debouncer[path] = now

	return sw.options.OnChange(path)
}

func (sw *schemaWatcher) matchesPatterns(path string) bool {
	for _, pattern := range sw.options.Patterns {
		if matched, _ := doublestar.PathMatch(filepath.Clean(pattern), path); matched {
			return true
		}
	}
	return false
}
