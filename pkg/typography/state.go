package typography

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/joeblew999/plat-theme/pkg/kv"
	"github.com/joeblew999/plat-theme/pkg/log"
)

// WeightSource resolves the weights a family supports. A nil or empty
// result means the weights are unknown.
type WeightSource interface {
	Weights(family string) []int
}

// WeightsFunc adapts a function to WeightSource.
type WeightsFunc func(family string) []int

// Weights calls f.
func (f WeightsFunc) Weights(family string) []int {
	return f(family)
}

// Listener is told about every settings change after it was persisted.
type Listener interface {
	TypographyChanged(ctx context.Context, role Role, s Settings)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, role Role, s Settings)

// TypographyChanged calls f.
func (f ListenerFunc) TypographyChanged(ctx context.Context, role Role, s Settings) {
	f(ctx, role, s)
}

type nopListener struct{}

func (nopListener) TypographyChanged(context.Context, Role, Settings) {}

// Option configures a State.
type Option func(*State)

// WithListener sets the change listener.
func WithListener(l Listener) Option {
	return func(s *State) {
		if l != nil {
			s.listener = l
		}
	}
}

// State is the typography selection of one session. Every mutation is
// persisted before the listener hears about it.
type State struct {
	store     kv.Store
	weights   WeightSource
	elements  *Registry
	baselines *Baselines
	listener  Listener

	mu       sync.RWMutex
	settings map[Role]Settings
}

// NewState creates a state holding the defaults. Call Restore to load the
// persisted selection.
func NewState(store kv.Store, weights WeightSource, elements *Registry, opts ...Option) *State {
	s := &State{
		store:     store,
		weights:   weights,
		elements:  elements,
		baselines: NewBaselines(),
		listener:  nopListener{},
		settings: map[Role]Settings{
			Heading: Defaults(Heading),
			Body:    Defaults(Body),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settings returns the current settings of a role.
func (s *State) Settings(role Role) Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings[role]
}

// Snapshot returns the settings of both roles.
func (s *State) Snapshot() map[Role]Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[Role]Settings{Heading: s.settings[Heading], Body: s.settings[Body]}
}

// Baselines exposes the size cache of the preview elements.
func (s *State) Baselines() *Baselines {
	return s.baselines
}

// Invalidate forgets the captured baseline of a preview element.
func (s *State) Invalidate(id string) {
	s.baselines.Invalidate(id)
}

// Weights returns the known weights of the role's family.
func (s *State) Weights(role Role) []int {
	return s.weights.Weights(s.Settings(role).Family)
}

// Select switches the role's family. When the family's weights are known the
// weight becomes the role default if supported, else the lightest weight;
// when they are unknown the current weight is kept.
func (s *State) Select(ctx context.Context, role Role, family string) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	if family == "" {
		return fmt.Errorf("select %s: empty family", role)
	}

	weights := s.weights.Weights(family)
	return s.update(ctx, role, func(cur *Settings, k Keys) map[string]string {
		cur.Family = family
		changed := map[string]string{k.Family: family}
		if len(weights) > 0 {
			cur.Weight = preferredWeight(role, weights)
			changed[k.Weight] = strconv.Itoa(cur.Weight)
		}
		return changed
	})
}

func preferredWeight(role Role, weights []int) int {
	if w := Defaults(role).Weight; slices.Contains(weights, w) {
		return w
	}
	return weights[0]
}

// SetWeight picks the weight at index of the family's weight list. It
// reports false, changing nothing, when the index is out of range or the
// weights are unknown.
func (s *State) SetWeight(ctx context.Context, role Role, index int) (bool, error) {
	if _, err := ParseRole(string(role)); err != nil {
		return false, err
	}
	weights := s.Weights(role)
	if index < 0 || index >= len(weights) {
		log.Debug("Weight index rejected", "role", role, "index", index, "weights", len(weights))
		return false, nil
	}

	err := s.update(ctx, role, func(cur *Settings, k Keys) map[string]string {
		cur.Weight = weights[index]
		return map[string]string{k.Weight: strconv.Itoa(cur.Weight)}
	})
	return err == nil, err
}

// SetSizeScale sets the multiplier applied to every baseline size.
func (s *State) SetSizeScale(ctx context.Context, role Role, scale float64) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	if !(scale > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	return s.update(ctx, role, func(cur *Settings, k Keys) map[string]string {
		cur.SizeScale = scale
		return map[string]string{k.SizeScale: formatFloat(scale)}
	})
}

// SetLineHeight sets the line height in em. Values outside LineHeightRange
// are rejected.
func (s *State) SetLineHeight(ctx context.Context, role Role, v float64) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	if !LineHeightRange.Contains(v) {
		return fmt.Errorf("line height %w: %v", ErrOutOfRange, v)
	}
	return s.update(ctx, role, func(cur *Settings, k Keys) map[string]string {
		cur.LineHeight = v
		return map[string]string{k.LineHeight: formatFloat(v)}
	})
}

// SetLetterSpacing sets the letter spacing in em. Values outside
// LetterSpacingRange are rejected.
func (s *State) SetLetterSpacing(ctx context.Context, role Role, v float64) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	if !LetterSpacingRange.Contains(v) {
		return fmt.Errorf("letter spacing %w: %v", ErrOutOfRange, v)
	}
	return s.update(ctx, role, func(cur *Settings, k Keys) map[string]string {
		cur.LetterSpacing = v
		return map[string]string{k.LetterSpacing: formatFloat(v)}
	})
}

// Reset restores and persists the defaults of both roles in one batch.
func (s *State) Reset(ctx context.Context) error {
	batch := kv.Batch{Set: map[string]string{}}
	for _, role := range Roles {
		maps.Copy(batch.Set, encode(Defaults(role), KeysFor(role)))
	}

	s.mu.Lock()
	if err := kv.Apply(ctx, s.store, batch); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist reset: %w", err)
	}
	for _, role := range Roles {
		s.settings[role] = Defaults(role)
	}
	s.mu.Unlock()

	for _, role := range Roles {
		s.changed(ctx, role, Defaults(role))
	}
	return nil
}

// Reconcile moves weights the family does not support to the role default,
// or the lightest weight. Roles whose family weights are unknown are left
// alone.
func (s *State) Reconcile(ctx context.Context) error {
	for _, role := range Roles {
		cur := s.Settings(role)
		weights := s.weights.Weights(cur.Family)
		if len(weights) == 0 || slices.Contains(weights, cur.Weight) {
			continue
		}
		to := preferredWeight(role, weights)
		err := s.update(ctx, role, func(next *Settings, k Keys) map[string]string {
			next.Weight = to
			return map[string]string{k.Weight: strconv.Itoa(to)}
		})
		if err != nil {
			return err
		}
		log.Debug("Weight reconciled", "role", role, "family", cur.Family, "from", cur.Weight, "to", to)
	}
	return nil
}

// Restore loads the persisted selection. Missing or unparsable values fall
// back to the defaults.
func (s *State) Restore(ctx context.Context) error {
	for _, role := range Roles {
		k := KeysFor(role)
		def := Defaults(role)
		restored := def

		family, ok, err := kv.Lookup(ctx, s.store, k.Family)
		if err != nil {
			return fmt.Errorf("restore %s: %w", role, err)
		}
		if ok && family != "" {
			restored.Family = family
		}
		if restored.Weight, err = s.lookupInt(ctx, k.Weight, def.Weight); err != nil {
			return err
		}
		if weights := s.weights.Weights(restored.Family); len(weights) > 0 && !slices.Contains(weights, restored.Weight) {
			restored.Weight = preferredWeight(role, weights)
		}
		if restored.SizeScale, err = s.lookupFloat(ctx, k.SizeScale, def.SizeScale); err != nil {
			return err
		}
		if !(restored.SizeScale > 0) {
			restored.SizeScale = def.SizeScale
		}
		if restored.LineHeight, err = s.lookupFloat(ctx, k.LineHeight, def.LineHeight); err != nil {
			return err
		}
		if !LineHeightRange.Contains(restored.LineHeight) {
			restored.LineHeight = def.LineHeight
		}
		if restored.LetterSpacing, err = s.lookupFloat(ctx, k.LetterSpacing, def.LetterSpacing); err != nil {
			return err
		}
		if !LetterSpacingRange.Contains(restored.LetterSpacing) {
			restored.LetterSpacing = def.LetterSpacing
		}

		s.mu.Lock()
		s.settings[role] = restored
		s.mu.Unlock()
		s.captureBaselines(role)
		s.listener.TypographyChanged(ctx, role, restored)
	}
	return nil
}

func (s *State) lookupInt(ctx context.Context, key string, def int) (int, error) {
	raw, ok, err := kv.Lookup(ctx, s.store, key)
	if err != nil || !ok {
		return def, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn("Ignoring stored value", "key", key, "value", raw)
		return def, nil
	}
	return v, nil
}

func (s *State) lookupFloat(ctx context.Context, key string, def float64) (float64, error) {
	raw, ok, err := kv.Lookup(ctx, s.store, key)
	if err != nil || !ok {
		return def, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Warn("Ignoring stored value", "key", key, "value", raw)
		return def, nil
	}
	return v, nil
}

// Styles computes the styles of the role's preview elements.
func (s *State) Styles(role Role) []ElementStyle {
	cur := s.Settings(role)
	elems := s.elements.ForRole(role)
	styles := make([]ElementStyle, 0, len(elems))
	for _, e := range elems {
		st := ElementStyle{
			ID:           e.ID,
			Role:         role,
			FontFamily:   cur.Family,
			FontWeight:   cur.Weight,
			FontSizePx:   s.baselines.Capture(e) * cur.SizeScale,
			FixedSpacing: e.FixedSpacing,
		}
		if !e.FixedSpacing {
			st.LineHeightEm = cur.LineHeight
			st.LetterSpacingEm = cur.LetterSpacing
		}
		styles = append(styles, st)
	}
	return styles
}

// WeightSlider binds the role's weight to a slider.
func (s *State) WeightSlider(role Role) WeightSlider {
	return BindWeights(s.Weights(role), s.Settings(role).Weight)
}

func (s *State) captureBaselines(role Role) {
	for _, e := range s.elements.ForRole(role) {
		s.baselines.Capture(e)
	}
}

// update applies fn to a copy of the role's settings, persists the returned
// keys as one batch and only then commits the copy.
func (s *State) update(ctx context.Context, role Role, fn func(cur *Settings, k Keys) map[string]string) error {
	s.mu.Lock()
	next := s.settings[role]
	changed := fn(&next, KeysFor(role))
	if err := kv.Apply(ctx, s.store, kv.Batch{Set: changed}); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist %s: %w", role, err)
	}
	s.settings[role] = next
	s.mu.Unlock()

	s.changed(ctx, role, next)
	return nil
}

func (s *State) changed(ctx context.Context, role Role, next Settings) {
	s.captureBaselines(role)
	settingsChanges.Inc(string(role))
	s.listener.TypographyChanged(ctx, role, next)
}

func encode(v Settings, k Keys) map[string]string {
	return map[string]string{
		k.Family:        v.Family,
		k.Weight:        strconv.Itoa(v.Weight),
		k.SizeScale:     formatFloat(v.SizeScale),
		k.LineHeight:    formatFloat(v.LineHeight),
		k.LetterSpacing: formatFloat(v.LetterSpacing),
	}
}
