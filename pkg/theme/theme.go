// Package theme composes the typography and color state of a session.
package theme

import (
	"context"
	"errors"
	"fmt"

	"github.com/joeblew999/plat-theme/pkg/colors"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/typography"
)

// Target names what Reset restores.
type Target string

const (
	TargetFont  Target = "font"
	TargetColor Target = "color"
)

// ErrUnknownTarget is returned by Reset for targets other than font and color.
var ErrUnknownTarget = errors.New("unknown reset target")

// Theme is the full customizer state of one session.
type Theme struct {
	Fonts  *typography.State
	Colors *colors.State
}

// New composes a theme.
func New(fonts *typography.State, cs *colors.State) *Theme {
	return &Theme{Fonts: fonts, Colors: cs}
}

// Restore loads the persisted fonts and colors.
func (t *Theme) Restore(ctx context.Context) error {
	if err := t.Fonts.Restore(ctx); err != nil {
		return err
	}
	return t.Colors.Restore(ctx)
}

// Reset restores the defaults of one target.
func (t *Theme) Reset(ctx context.Context, target Target) error {
	switch target {
	case TargetFont:
		return t.Fonts.Reset(ctx)
	case TargetColor:
		return t.Colors.Reset(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
}

// RoleSnapshot is the typography of one role with its links.
type RoleSnapshot struct {
	typography.Settings
	Stylesheet string `json:"stylesheet"`
	Specimen   string `json:"specimen"`
}

// Snapshot is a read-only copy of a theme.
type Snapshot struct {
	Heading RoleSnapshot  `json:"heading"`
	Body    RoleSnapshot  `json:"body"`
	Mode    colors.Mode   `json:"mode"`
	Colors  colors.Scheme `json:"colors"`
	Preset  string        `json:"preset,omitempty"`
}

// Role returns the snapshot of a role.
func (s Snapshot) Role(role typography.Role) RoleSnapshot {
	if role == typography.Heading {
		return s.Heading
	}
	return s.Body
}

// Snapshot copies the current state.
func (t *Theme) Snapshot() Snapshot {
	snap := Snapshot{
		Heading: roleSnapshot(t.Fonts, typography.Heading),
		Body:    roleSnapshot(t.Fonts, typography.Body),
		Mode:    t.Colors.Mode(),
		Colors:  t.Colors.Active(),
	}
	if snap.Mode == colors.Popular {
		if p, ok := t.Colors.Selected(); ok {
			snap.Preset = p.Name
		}
	}
	return snap
}

func roleSnapshot(fonts *typography.State, role typography.Role) RoleSnapshot {
	s := fonts.Settings(role)
	return RoleSnapshot{
		Settings:   s,
		Stylesheet: font.StylesheetURL(s.Family, []int{s.Weight}),
		Specimen:   font.SpecimenURL(s.Family),
	}
}
