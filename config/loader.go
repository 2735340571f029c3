package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// DefinitionWatcher watches a directory of workflow-definition files
// and invokes OnChange whenever one is written or renamed into place,
// so a long-running server can rebuild its assembly.Definition without
// a restart.
type DefinitionWatcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// NewDefinitionWatcher opens an fsnotify watch on dir.
func NewDefinitionWatcher(dir string, logger *slog.Logger) (*DefinitionWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DefinitionWatcher{watcher: watcher, logger: logger}, nil
}

// Run blocks, calling onChange for every write/create/rename event,
// until ctx is cancelled.
func (w *DefinitionWatcher) Run(ctx context.Context, onChange func(path string)) {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Info("definition file changed", "path", event.Name, "op", event.Op.String())
			onChange(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("definition watcher error", "error", err)
		}
	}
}
