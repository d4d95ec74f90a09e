package typography

import (
	"fmt"
	"slices"
	"strconv"
)

// WeightSlider is the discrete weight control. Positions index the weight
// list; Display shows the weight itself.
type WeightSlider struct {
	Min     int    `json:"min"`
	Max     int    `json:"max"`
	Step    int    `json:"step"`
	Value   int    `json:"value"`
	Display string `json:"display"`
}

// Fixed reports whether the slider has a single position.
func (w WeightSlider) Fixed() bool {
	return w.Min == w.Max
}

// BindWeights maps a weight list to slider positions. A current weight not
// in the list selects position 0; an empty list collapses the slider and
// shows the current weight as is.
func BindWeights(weights []int, current int) WeightSlider {
	if len(weights) == 0 {
		return WeightSlider{Step: 1, Display: strconv.Itoa(current)}
	}
	idx := slices.Index(weights, current)
	if idx < 0 {
		idx = 0
	}
	return WeightSlider{
		Min:     0,
		Max:     len(weights) - 1,
		Step:    1,
		Value:   idx,
		Display: strconv.Itoa(weights[idx]),
	}
}

// Range bounds a continuous slider.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Contains reports whether v lies within the bounds.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

var (
	ScaleRange         = Range{Min: 0.5, Max: 2.5, Step: 0.05}
	LineHeightRange    = Range{Min: 0.8, Max: 2.5, Step: 0.05}
	LetterSpacingRange = Range{Min: -0.1, Max: 0.5, Step: 0.01}
)

// Slider is a continuous control with its formatted display.
type Slider struct {
	Range
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// BindScale binds a size scale, displayed as "1.25x".
func BindScale(scale float64) Slider {
	return Slider{Range: ScaleRange, Value: scale, Display: fmt.Sprintf("%.2fx", scale)}
}

// BindLineHeight binds a line height, displayed as "1.50".
func BindLineHeight(v float64) Slider {
	return Slider{Range: LineHeightRange, Value: v, Display: fmt.Sprintf("%.2f", v)}
}

// BindLetterSpacing binds a letter spacing, displayed as "0.05".
func BindLetterSpacing(v float64) Slider {
	return Slider{Range: LetterSpacingRange, Value: v, Display: fmt.Sprintf("%.2f", v)}
}
