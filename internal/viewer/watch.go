package viewer

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/partview/internal/logger"
)

// ModelWatcher reports changes to the model file. It watches the containing
// directory so that editors that replace the file by rename are seen too.
type ModelWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	log     *zap.Logger
}

// WatchModel starts watching path.
func WatchModel(path string) (*ModelWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	return &ModelWatcher{watcher: w, path: abs, log: logger.Named("watch")}, nil
}

// Changed drains pending events without blocking and reports whether the
// model file was written, created or renamed since the last call.
func (m *ModelWatcher) Changed() bool {
	changed := false
	for {
		select {
		case ev, ok := <-m.watcher.Events:
			if !ok {
				return changed
			}
			if filepath.Clean(ev.Name) != m.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				m.log.Debug("model file event", zap.Stringer("op", ev.Op))
				changed = true
			}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return changed
			}
			m.log.Warn("watcher error", zap.Error(err))
		default:
			return changed
		}
	}
}

// Close stops watching.
func (m *ModelWatcher) Close() error {
	return m.watcher.Close()
}
