package settings

import (
	"github.com/joeblew999/plat-theme/internal/session"
	"github.com/joeblew999/plat-theme/internal/types"
	"github.com/joeblew999/plat-theme/pkg/theme"
	"github.com/joeblew999/plat-theme/pkg/typography"
)

// ThemeView builds the API view of a session's theme.
func ThemeView(s *session.Session) *types.ThemeResponse {
	snap := s.Theme.Snapshot()
	return &types.ThemeResponse{
		Session: s.ID,
		Heading: roleView(s, snap, typography.Heading),
		Body:    roleView(s, snap, typography.Body),
		Colors: types.ColorSettings{
			Mode:       string(snap.Mode),
			Background: snap.Colors.Background,
			Text:       snap.Colors.Text,
			Preset:     snap.Preset,
		},
	}
}

func roleView(s *session.Session, snap theme.Snapshot, role typography.Role) types.RoleSettings {
	r := snap.Role(role)
	return types.RoleSettings{
		Family:        r.Family,
		Weight:        r.Weight,
		SizeScale:     r.SizeScale,
		LineHeight:    r.LineHeight,
		LetterSpacing: r.LetterSpacing,
		Stylesheet:    r.Stylesheet,
		Specimen:      r.Specimen,
		Weights:       s.Theme.Fonts.Weights(role),
	}
}
