package colors

import "fmt"

// Scheme is a background/text color pair.
type Scheme struct {
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Target is a class of preview elements colored by the scheme.
type Target string

const (
	// TargetVariable elements take the background and the text color.
	TargetVariable Target = "color=variable"
	// TargetInverse elements swap the two colors.
	TargetInverse Target = "color=inverse"
	// TargetFontBackground elements use the text color as background.
	TargetFontBackground Target = "background=font"
	// TargetBackground elements use the background color.
	TargetBackground Target = "background=background"
)

// Targets lists every target.
var Targets = []Target{TargetVariable, TargetInverse, TargetFontBackground, TargetBackground}

// Style is the colors one target receives. An empty Color leaves the text
// color alone.
type Style struct {
	Background string `json:"background"`
	Color      string `json:"color,omitempty"`
}

// CSS renders the style as an inline style attribute value.
func (s Style) CSS() string {
	if s.Color == "" {
		return fmt.Sprintf("background-color: %s;", s.Background)
	}
	return fmt.Sprintf("background-color: %s; color: %s;", s.Background, s.Color)
}

// Apply maps a scheme onto every target.
func Apply(s Scheme) map[Target]Style {
	return map[Target]Style{
		TargetVariable:       {Background: s.Background, Color: s.Text},
		TargetInverse:        {Background: s.Text, Color: s.Background},
		TargetFontBackground: {Background: s.Text},
		TargetBackground:     {Background: s.Background},
	}
}
