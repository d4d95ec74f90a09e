package server

import (
	"context"

	"github.com/joeblew999/plat-theme/pkg/colors"
	"github.com/zeromicro/go-zero/core/logx"
)

// presetWatcher adapts colors.Library.Watch to the service.Service interface.
type presetWatcher struct {
	library *colors.Library
	ctx     context.Context
	cancel  context.CancelFunc
}

func newPresetWatcher(library *colors.Library) *presetWatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &presetWatcher{library: library, ctx: ctx, cancel: cancel}
}

func (w *presetWatcher) Start() {
	if err := w.library.Watch(w.ctx); err != nil {
		logx.Errorf("Preset watcher stopped: %v", err)
	}
}

func (w *presetWatcher) Stop() {
	w.cancel()
}
