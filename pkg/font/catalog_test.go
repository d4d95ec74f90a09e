package font

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeights(t *testing.T) {
	tests := []struct {
		name     string
		variants []string
		want     []int
	}{
		{"google style", []string{"100", "300", "regular", "700italic"}, []int{100, 300, 400, 700}},
		{"italic alone is regular", []string{"italic"}, []int{400}},
		{"empty token", []string{""}, []int{400}},
		{"duplicates collapse", []string{"regular", "italic", "400", "400italic"}, []int{400}},
		{"unsorted input", []string{"900", "200", "500italic", "200italic"}, []int{200, 500, 900}},
		{"non numeric dropped", []string{"bold", "700", "wide"}, []int{700}},
		{"nil", nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseWeights(tt.variants))
		})
	}
}

func TestParseWeightsStrictlyIncreasing(t *testing.T) {
	inputs := [][]string{
		{"800", "100italic", "regular", "800italic", "300", "italic"},
		{"700", "700", "700italic"},
		{"x", "y"},
	}
	for _, in := range inputs {
		got := ParseWeights(in)
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1], got[i], "input %v", in)
		}
	}
}

func TestItalicNormalizesLikePlain(t *testing.T) {
	for _, w := range []string{"100", "300", "700", "900"} {
		assert.Equal(t, ParseWeights([]string{w}), ParseWeights([]string{w + "italic"}), w)
	}
	assert.Equal(t, ParseWeights([]string{"regular"}), ParseWeights([]string{""}))
}

func records(cat Category, n int, prefix string) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{
			Family:   fmt.Sprintf("%s %03d", prefix, i),
			Category: cat,
			Variants: []string{"regular", "700"},
		}
	}
	return out
}

func TestNewCatalogCapsBuckets(t *testing.T) {
	var all []Record
	all = append(all, records(SansSerif, 250, "Sans")...)
	all = append(all, records(Serif, 120, "Serif")...)
	all = append(all, records(Display, 10, "Display")...)
	all = append(all, Record{Family: "Handwritten", Category: "handwriting", Variants: []string{"regular"}})

	c := NewCatalog(all, nil)

	assert.Len(t, c.Fonts(SansSerif), 200)
	assert.Len(t, c.Fonts(Serif), 100)
	assert.Len(t, c.Fonts(Display), 10)
	assert.Empty(t, c.Fonts(Monospace))
	assert.Equal(t, len(all), c.Len())
	assert.Equal(t, "Sans 000", c.Fonts(SansSerif)[0].Family, "input order is kept")
}

func TestCatalogWeightsCoverUncappedFamilies(t *testing.T) {
	all := records(SansSerif, 210, "Sans")
	all[205].Variants = []string{"300", "900italic"}

	c := NewCatalog(all, nil)

	require.Len(t, c.Fonts(SansSerif), 200)
	assert.Equal(t, []int{300, 900}, c.Weights("Sans 205"))
	assert.Nil(t, c.Weights("Missing"))
}

func TestCatalogCategoryOf(t *testing.T) {
	c := NewCatalog([]Record{
		{Family: "Inter", Category: SansSerif},
		{Family: "Lora", Category: Serif},
		{Family: "Fira Code", Category: Monospace},
	}, nil)

	assert.Equal(t, Serif, c.CategoryOf("Lora"))
	assert.Equal(t, Monospace, c.CategoryOf("Fira Code"))
	assert.Equal(t, SansSerif, c.CategoryOf("Unknown Family"))
}

func TestCatalogCustomCaps(t *testing.T) {
	c := NewCatalog(records(Serif, 20, "Serif"), map[Category]int{Serif: 5})
	assert.Len(t, c.Fonts(Serif), 5)
	assert.Equal(t, map[Category]int{SansSerif: 0, Serif: 5, Display: 0, Monospace: 0}, c.Counts())
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" Serif ")
	assert.True(t, ok)
	assert.Equal(t, Serif, c)

	_, ok = ParseCategory("handwriting")
	assert.False(t, ok)
}

func TestEmptyCatalog(t *testing.T) {
	c := EmptyCatalog()
	assert.Zero(t, c.Len())
	for _, cat := range Categories {
		assert.Empty(t, c.Fonts(cat))
	}
}
