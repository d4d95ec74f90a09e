package picker

import (
	"strings"

	"github.com/joeblew999/plat-theme/pkg/font"
)

// Filter keeps families whose name contains term, ignoring case and
// surrounding whitespace. An empty term returns fonts unchanged.
func Filter(term string, fonts []font.Record) []font.Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return fonts
	}
	var out []font.Record
	for _, f := range fonts {
		if strings.Contains(strings.ToLower(f.Family), term) {
			out = append(out, f)
		}
	}
	return out
}

// ReorderActive returns a copy of fonts with the active family moved to the
// front. The relative order of the others is kept.
func ReorderActive(fonts []font.Record, active string) []font.Record {
	out := make([]font.Record, 0, len(fonts))
	for _, f := range fonts {
		if f.Family == active {
			out = append(out, f)
		}
	}
	for _, f := range fonts {
		if f.Family != active {
			out = append(out, f)
		}
	}
	return out
}
