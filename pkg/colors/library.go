package colors

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/joeblew999/plat-theme/pkg/log"
)

// Library serves the current preset set and reloads it when the preset file
// changes.
type Library struct {
	path    string
	current atomic.Pointer[PresetSet]

	mu        sync.Mutex
	callbacks []func(*PresetSet)
}

// NewLibrary loads the presets at path.
func NewLibrary(path string) (*Library, error) {
	set, err := LoadPresets(path)
	if err != nil {
		return nil, err
	}
	l := &Library{path: path}
	l.current.Store(set)
	return l, nil
}

// StaticLibrary serves a fixed set.
func StaticLibrary(set *PresetSet) *Library {
	l := &Library{}
	l.current.Store(set)
	return l
}

// Presets returns the current set.
func (l *Library) Presets() *PresetSet {
	return l.current.Load()
}

// OnReload registers a callback for successful reloads.
func (l *Library) OnReload(fn func(*PresetSet)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callbacks = append(l.callbacks, fn)
}

// Reload reads the preset file again. A broken file keeps the current set.
func (l *Library) Reload() error {
	set, err := LoadPresets(l.path)
	if err != nil {
		presetReloads.Inc("error")
		return err
	}
	l.current.Store(set)
	presetReloads.Inc("ok")

	l.mu.Lock()
	callbacks := make([]func(*PresetSet), len(l.callbacks))
	copy(callbacks, l.callbacks)
	l.mu.Unlock()

	for _, cb := range callbacks {
		cb(set)
	}
	return nil
}

// Watch reloads the presets on file changes until ctx ends. The directory
// is watched so editors that replace the file are noticed.
func (l *Library) Watch(ctx context.Context) error {
	if l.path == "" {
		<-ctx.Done()
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(l.path)); err != nil {
		return err
	}
	target := filepath.Clean(l.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != target || e.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("Preset file change detected", "op", e.Op.String(), "file", e.Name)
			if err := l.Reload(); err != nil {
				log.Warn("Failed to reload presets", "error", err)
				continue
			}
			log.Info("Color presets reloaded", "presets", len(l.Presets().All()))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("Preset watcher error", "error", err)
		}
	}
}
