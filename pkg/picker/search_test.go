package picker

import (
	"testing"

	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/stretchr/testify/assert"
)

var sample = []font.Record{
	{Family: "Roboto", Category: font.SansSerif},
	{Family: "Inter Tight", Category: font.SansSerif},
	{Family: "Open Sans", Category: font.SansSerif},
	{Family: "Inter", Category: font.SansSerif},
}

func families(fonts []font.Record) []string {
	out := make([]string, len(fonts))
	for i, f := range fonts {
		out[i] = f.Family
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"substring", "inter", []string{"Inter Tight", "Inter"}},
		{"case and whitespace", "  INTER  ", []string{"Inter Tight", "Inter"}},
		{"middle of name", "en s", []string{"Open Sans"}},
		{"no match", "zzz", nil},
		{"empty term", "", []string{"Roboto", "Inter Tight", "Open Sans", "Inter"}},
		{"blank term", "   ", []string{"Roboto", "Inter Tight", "Open Sans", "Inter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.term, sample)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, families(got))
		})
	}
}

func TestSearchThenReorder(t *testing.T) {
	got := ReorderActive(Filter("inter", sample), "Inter")
	assert.Equal(t, []string{"Inter", "Inter Tight"}, families(got))
}

func TestReorderActiveDoesNotMutate(t *testing.T) {
	in := append([]font.Record(nil), sample...)
	got := ReorderActive(in, "Open Sans")

	assert.Equal(t, []string{"Open Sans", "Roboto", "Inter Tight", "Inter"}, families(got))
	assert.Equal(t, families(sample), families(in))
	assert.Equal(t, families(sample), families(ReorderActive(sample, "Missing")))
}
