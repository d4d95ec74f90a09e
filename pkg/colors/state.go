package colors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/joeblew999/plat-theme/pkg/kv"
)

// Mode selects where the active colors come from.
type Mode string

const (
	Popular Mode = "popular"
	Custom  Mode = "custom"
)

// ErrInvalidColor is returned for values that are not hex, rgb() or rgba().
var ErrInvalidColor = errors.New("invalid color")

// Storage keys.
const (
	KeyMode             = "selectedColorMode"
	KeyBackground       = "selectedBackgroundColor"
	KeyText             = "selectedTextColor"
	KeyCustomBackground = "customBackgroundColor"
	KeyCustomText       = "customTextColor"
)

// CustomDefaults are the custom inputs before the user edits them.
var CustomDefaults = Scheme{Background: "#FFFFFF", Text: "#000000"}

// ParseMode maps unknown modes to Popular.
func ParseMode(s string) Mode {
	if Mode(s) == Custom {
		return Custom
	}
	return Popular
}

// Listener is told about every change of the active scheme.
type Listener interface {
	ColorsChanged(ctx context.Context, mode Mode, active Scheme)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, mode Mode, active Scheme)

// ColorsChanged calls f.
func (f ListenerFunc) ColorsChanged(ctx context.Context, mode Mode, active Scheme) {
	f(ctx, mode, active)
}

// State is the color selection of one session.
type State struct {
	store    kv.Store
	library  *Library
	listener Listener

	mu      sync.RWMutex
	mode    Mode
	popular Scheme
	custom  Scheme
}

// NewState creates a state showing the default preset.
func NewState(store kv.Store, library *Library, listener Listener) *State {
	if listener == nil {
		listener = ListenerFunc(func(context.Context, Mode, Scheme) {})
	}
	return &State{
		store:    store,
		library:  library,
		listener: listener,
		mode:     Popular,
		popular:  library.Presets().Default().Scheme(),
		custom:   CustomDefaults,
	}
}

// Presets returns the current preset set.
func (s *State) Presets() *PresetSet {
	return s.library.Presets()
}

// Mode returns the current mode.
func (s *State) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Popular returns the selected preset colors.
func (s *State) Popular() Scheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.popular
}

// Custom returns the custom colors.
func (s *State) Custom() Scheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.custom
}

// Active returns the colors of the current mode.
func (s *State) Active() Scheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeLocked()
}

func (s *State) activeLocked() Scheme {
	if s.mode == Custom {
		return s.custom
	}
	return s.popular
}

// Selected returns the preset matching the popular colors.
func (s *State) Selected() (Preset, bool) {
	return s.Presets().Match(s.Popular())
}

// SelectPreset stores a preset as the popular colors. They become active
// only in popular mode.
func (s *State) SelectPreset(ctx context.Context, name string) error {
	p, ok := s.Presets().ByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return s.update(ctx, func() (map[string]string, []string) {
		s.popular = p.Scheme()
		return map[string]string{KeyBackground: p.Background, KeyText: p.Text}, nil
	})
}

// SetCustom stores custom colors. Outside custom mode the values are
// ignored and false is returned.
func (s *State) SetCustom(ctx context.Context, background, text string) (bool, error) {
	background, text = strings.TrimSpace(background), strings.TrimSpace(text)
	for _, c := range []string{background, text} {
		if !ValidColor(c) {
			return false, fmt.Errorf("%w: %q", ErrInvalidColor, c)
		}
	}
	if s.Mode() != Custom {
		return false, nil
	}
	err := s.update(ctx, func() (map[string]string, []string) {
		s.custom = Scheme{Background: background, Text: text}
		return map[string]string{KeyCustomBackground: background, KeyCustomText: text}, nil
	})
	return err == nil, err
}

// SetMode switches between popular and custom colors.
func (s *State) SetMode(ctx context.Context, mode Mode) error {
	mode = ParseMode(string(mode))
	return s.update(ctx, func() (map[string]string, []string) {
		s.mode = mode
		return map[string]string{KeyMode: string(mode)}, nil
	})
}

// Reset returns to the default preset in popular mode and forgets the
// custom colors.
func (s *State) Reset(ctx context.Context) error {
	def := s.Presets().Default()
	return s.update(ctx, func() (map[string]string, []string) {
		s.mode = Popular
		s.popular = def.Scheme()
		s.custom = CustomDefaults
		return map[string]string{
			KeyMode:       string(Popular),
			KeyBackground: def.Background,
			KeyText:       def.Text,
		}, []string{KeyCustomBackground, KeyCustomText}
	})
}

// Restore loads the persisted selection. Without stored popular colors the
// default preset is saved.
func (s *State) Restore(ctx context.Context) error {
	values := make(map[string]string)
	for _, key := range []string{KeyMode, KeyBackground, KeyText, KeyCustomBackground, KeyCustomText} {
		v, ok, err := kv.Lookup(ctx, s.store, key)
		if err != nil {
			return fmt.Errorf("restore colors: %w", err)
		}
		if ok {
			values[key] = v
		}
	}

	s.mu.Lock()
	s.mode = ParseMode(values[KeyMode])
	bg, text := values[KeyBackground], values[KeyText]
	missing := bg == "" || text == ""
	if missing {
		s.popular = s.library.Presets().Default().Scheme()
	} else {
		s.popular = Scheme{Background: bg, Text: text}
	}
	s.custom = CustomDefaults
	if v := values[KeyCustomBackground]; v != "" {
		s.custom.Background = v
	}
	if v := values[KeyCustomText]; v != "" {
		s.custom.Text = v
	}
	popular, mode, active := s.popular, s.mode, s.activeLocked()
	s.mu.Unlock()

	if missing {
		err := kv.Apply(ctx, s.store, kv.Batch{Set: map[string]string{
			KeyBackground: popular.Background,
			KeyText:       popular.Text,
		}})
		if err != nil {
			return fmt.Errorf("persist default colors: %w", err)
		}
	}
	s.listener.ColorsChanged(ctx, mode, active)
	return nil
}

// update mutates the state under the lock, persists the returned pairs and
// deletions as one batch and rolls back when persistence fails.
func (s *State) update(ctx context.Context, fn func() (set map[string]string, del []string)) error {
	s.mu.Lock()
	prevMode, prevPopular, prevCustom := s.mode, s.popular, s.custom
	set, del := fn()

	if err := kv.Apply(ctx, s.store, kv.Batch{Set: set, Delete: del}); err != nil {
		s.mode, s.popular, s.custom = prevMode, prevPopular, prevCustom
		s.mu.Unlock()
		return fmt.Errorf("persist colors: %w", err)
	}
	mode, active := s.mode, s.activeLocked()
	s.mu.Unlock()

	schemeChanges.Inc(string(mode))
	s.listener.ColorsChanged(ctx, mode, active)
	return nil
}
