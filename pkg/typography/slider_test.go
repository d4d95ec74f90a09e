package typography

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights []int
		current int
		want    WeightSlider
	}{
		{"found", []int{100, 400, 700}, 700, WeightSlider{Max: 2, Step: 1, Value: 2, Display: "700"}},
		{"missing falls back to first", []int{100, 400, 700}, 900, WeightSlider{Max: 2, Step: 1, Value: 0, Display: "100"}},
		{"empty shows raw weight", nil, 650, WeightSlider{Step: 1, Display: "650"}},
		{"single weight", []int{400}, 400, WeightSlider{Step: 1, Display: "400"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BindWeights(tt.weights, tt.current))
		})
	}
	assert.True(t, BindWeights(nil, 400).Fixed())
	assert.False(t, BindWeights([]int{400, 700}, 400).Fixed())
}

func TestSliderDisplays(t *testing.T) {
	assert.Equal(t, "1.25x", BindScale(1.25).Display)
	assert.Equal(t, "2.00x", BindScale(2).Display)
	assert.Equal(t, "1.50", BindLineHeight(1.5).Display)
	assert.Equal(t, "-0.05", BindLetterSpacing(-0.05).Display)
}

func TestRegistry(t *testing.T) {
	r, err := NewRegistry(DefaultElements()...)
	require.NoError(t, err)
	assert.Len(t, r.ForRole(Heading), 3)
	assert.Len(t, r.ForRole(Body), 3)

	e, ok := r.Lookup("caption")
	require.True(t, ok)
	assert.True(t, e.FixedSpacing)

	assert.Error(t, r.Register(Element{ID: "caption", Role: Body, NaturalSize: 12}))
	assert.ErrorIs(t, r.Register(Element{ID: "x", Role: "nav", NaturalSize: 12}), ErrUnknownRole)
	assert.Error(t, r.Register(Element{ID: "y", Role: Body}))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("body")
	require.NoError(t, err)
	assert.Equal(t, Body, r)
	_, err = ParseRole("Body")
	assert.ErrorIs(t, err, ErrUnknownRole)
}
