// Package colors manages the background/text color scheme of a customizer
// session: curated presets, custom colors and their persistence.
package colors

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// CategoryAll selects every preset in Filter.
const CategoryAll = "all"

// ErrUnknownPreset is returned when no preset has the requested name.
var ErrUnknownPreset = errors.New("unknown color preset")

// Preset is a curated background/text pair.
type Preset struct {
	Name       string `yaml:"name" json:"name" validate:"required"`
	Category   string `yaml:"category" json:"category" validate:"required"`
	Background string `yaml:"background" json:"background" validate:"required,css_color"`
	Text       string `yaml:"text" json:"text" validate:"required,css_color"`
	Default    bool   `yaml:"default,omitempty" json:"default,omitempty"`
}

// Scheme returns the colors of the preset.
func (p Preset) Scheme() Scheme {
	return Scheme{Background: p.Background, Text: p.Text}
}

type presetFile struct {
	Presets []Preset `yaml:"presets" validate:"required,min=1,dive"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("css_color", func(fl validator.FieldLevel) bool {
			return v.Var(strings.TrimSpace(fl.Field().String()), "hexcolor|rgb|rgba") == nil
		})
		validateInst = v
	})
	return validateInst
}

// ValidColor reports whether s is a hex, rgb() or rgba() color.
func ValidColor(s string) bool {
	return validatorInstance().Var(s, "required,css_color") == nil
}

// PresetSet is an immutable list of presets with exactly one default.
type PresetSet struct {
	presets []Preset
	def     int
}

// NewPresetSet validates presets. Names must be unique; the first preset
// is the default unless one is marked.
func NewPresetSet(presets []Preset) (*PresetSet, error) {
	if err := validatorInstance().Struct(presetFile{Presets: presets}); err != nil {
		return nil, fmt.Errorf("invalid presets: %w", err)
	}

	set := &PresetSet{presets: slices.Clone(presets)}
	seen := make(map[string]struct{}, len(presets))
	defaults := 0
	for i, p := range presets {
		if _, ok := seen[p.Name]; ok {
			return nil, fmt.Errorf("invalid presets: duplicate name %q", p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.Default {
			set.def = i
			defaults++
		}
	}
	if defaults > 1 {
		return nil, fmt.Errorf("invalid presets: %d defaults", defaults)
	}
	set.presets[set.def].Default = true
	return set, nil
}

// ParsePresets decodes a YAML preset file.
func ParsePresets(data []byte) (*PresetSet, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	return NewPresetSet(f.Presets)
}

// LoadPresets reads a YAML preset file. An empty path or a missing file
// yields the built-in presets.
func LoadPresets(path string) (*PresetSet, error) {
	if path == "" {
		return BuiltinPresets(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return BuiltinPresets(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return ParsePresets(data)
}

// BuiltinPresets is the preset list used without a preset file.
func BuiltinPresets() *PresetSet {
	set, err := NewPresetSet([]Preset{
		{Name: "paper", Category: "light", Background: "#FFFFFF", Text: "#111111", Default: true},
		{Name: "cream", Category: "light", Background: "#FAF3E0", Text: "#3B2F2F"},
		{Name: "mint", Category: "light", Background: "#E8F5E9", Text: "#1B5E20"},
		{Name: "ink", Category: "dark", Background: "#111111", Text: "#F5F5F5"},
		{Name: "midnight", Category: "dark", Background: "#0F172A", Text: "#E2E8F0"},
		{Name: "forest", Category: "dark", Background: "#1F3B2D", Text: "#F1E9DA"},
		{Name: "tomato", Category: "vibrant", Background: "#FF6347", Text: "#FFFFFF"},
		{Name: "electric", Category: "vibrant", Background: "#2D5BFF", Text: "#FFF35C"},
		{Name: "sand", Category: "muted", Background: "#D8CAB8", Text: "#4A4036"},
		{Name: "slate", Category: "muted", Background: "#708090", Text: "#F8F8FF"},
	})
	if err != nil {
		panic(err)
	}
	return set
}

// All returns every preset in file order.
func (s *PresetSet) All() []Preset {
	return slices.Clone(s.presets)
}

// Default returns the default preset.
func (s *PresetSet) Default() Preset {
	return s.presets[s.def]
}

// ByName finds a preset.
func (s *PresetSet) ByName(name string) (Preset, bool) {
	for _, p := range s.presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Match finds the preset with exactly these colors.
func (s *PresetSet) Match(sc Scheme) (Preset, bool) {
	for _, p := range s.presets {
		if strings.EqualFold(p.Background, sc.Background) && strings.EqualFold(p.Text, sc.Text) {
			return p, true
		}
	}
	return Preset{}, false
}

// Filter returns the presets of a category, or all of them for CategoryAll.
func (s *PresetSet) Filter(category string) []Preset {
	if category == CategoryAll || category == "" {
		return s.All()
	}
	var out []Preset
	for _, p := range s.presets {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists the preset categories in first-seen order.
func (s *PresetSet) Categories() []string {
	var out []string
	for _, p := range s.presets {
		if !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}
