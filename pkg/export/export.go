package export

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/joeblew999/plat-theme/pkg/colors"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/images"
	"github.com/joeblew999/plat-theme/pkg/log"
	"github.com/joeblew999/plat-theme/pkg/theme"
	"github.com/joeblew999/plat-theme/pkg/typography"
)

// ErrUnknownComponent is returned for components without a template.
var ErrUnknownComponent = errors.New("unknown component")

//go:embed components/*.mjml
var components embed.FS

// RoleData is the typography of one role as the templates see it.
type RoleData struct {
	Family     string  `json:"family"`
	Stack      string  `json:"stack"`
	Weight     int     `json:"weight"`
	Stylesheet string  `json:"stylesheet"`
	LineHeight string  `json:"lineHeight"`
	Spacing    string  `json:"spacing"`
	Sizes      Sizes   `json:"sizes"`
	Scale      float64 `json:"scale"`
}

// Sizes holds the scaled pixel size of each preview element of a role.
type Sizes map[string]string

// Data is passed to every component template.
type Data struct {
	Component string                         `json:"component"`
	Heading   RoleData                       `json:"heading"`
	Body      RoleData                       `json:"body"`
	Colors    colors.Scheme                  `json:"colors"`
	Styles    map[colors.Target]colors.Style `json:"styles"`
	Images    map[string]template.URL        `json:"images"`
	FontCSS   template.HTML                  `json:"fontCss,omitempty"`
}

// Variable is the style of color=variable elements.
func (d Data) Variable() colors.Style { return d.Styles[colors.TargetVariable] }

// Inverse is the style of color=inverse elements.
func (d Data) Inverse() colors.Style { return d.Styles[colors.TargetInverse] }

// Input is the session state an export reads.
type Input struct {
	Snapshot theme.Snapshot
	Styles   map[typography.Role][]typography.ElementStyle
	Images   map[string]images.Image
}

// FontSource renders @font-face rules for cached fonts.
type FontSource interface {
	Available(family string, weight int) bool
	Get(ctx context.Context, family string, weight int) (font.FontInfo, error)
}

// Exporter renders themed components.
type Exporter struct {
	renderer *Renderer
	fonts    FontSource
	category func(family string) font.Category
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithFontSource embeds @font-face rules for fonts already cached locally.
func WithFontSource(fs FontSource) Option {
	return func(e *Exporter) { e.fonts = fs }
}

// WithCategories resolves the fallback stack of a family from its category.
func WithCategories(fn func(family string) font.Category) Option {
	return func(e *Exporter) {
		if fn != nil {
			e.category = fn
		}
	}
}

// New creates an exporter with the built-in components plus the .mjml
// overrides in dir.
func New(dir string, renderer *Renderer, opts ...Option) (*Exporter, error) {
	if renderer == nil {
		renderer = NewRenderer(WithCache(true))
	}
	if err := renderer.LoadTemplatesFromFS(components); err != nil {
		return nil, err
	}
	if err := renderer.LoadTemplatesFromDir(dir); err != nil {
		return nil, fmt.Errorf("load component overrides: %w", err)
	}
	e := &Exporter{
		renderer: renderer,
		category: func(string) font.Category { return font.SansSerif },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Components lists the exportable components.
func (e *Exporter) Components() []string {
	return e.renderer.Templates()
}

// Export renders component with the session state to standalone HTML.
func (e *Exporter) Export(ctx context.Context, component string, in Input) (string, error) {
	if !e.renderer.HasTemplate(component) {
		exports.Inc("unknown")
		return "", fmt.Errorf("%w: %s", ErrUnknownComponent, component)
	}

	data := Data{
		Component: component,
		Heading:   e.roleData(in, typography.Heading),
		Body:      e.roleData(in, typography.Body),
		Colors:    in.Snapshot.Colors,
		Styles:    colors.Apply(in.Snapshot.Colors),
		Images:    make(map[string]template.URL, len(in.Images)),
		FontCSS:   template.HTML(e.fontCSS(ctx, in.Snapshot)),
	}
	for slot, img := range in.Images {
		data.Images[slot] = template.URL(img.DataURL())
	}

	html, err := e.renderer.Render(component, data)
	if err != nil {
		exports.Inc("error")
		return "", err
	}
	exports.Inc("ok")
	return html, nil
}

func (e *Exporter) roleData(in Input, role typography.Role) RoleData {
	rs := in.Snapshot.Role(role)
	sizes := make(Sizes)
	for _, st := range in.Styles[role] {
		sizes[st.ID] = fmt.Sprintf("%gpx", st.FontSizePx)
	}
	return RoleData{
		Family:     rs.Family,
		Stack:      FontStack(rs.Family, e.category(rs.Family)),
		Weight:     rs.Weight,
		Stylesheet: rs.Stylesheet,
		LineHeight: fmt.Sprintf("%gem", rs.LineHeight),
		Spacing:    fmt.Sprintf("%gem", rs.LetterSpacing),
		Sizes:      sizes,
		Scale:      rs.SizeScale,
	}
}

// fontCSS embeds @font-face rules for fonts the cache already holds. Fonts
// not cached yet are served by the stylesheet links alone.
func (e *Exporter) fontCSS(ctx context.Context, snap theme.Snapshot) string {
	if e.fonts == nil {
		return ""
	}
	var rules []string
	for _, rs := range []theme.RoleSnapshot{snap.Heading, snap.Body} {
		if !e.fonts.Available(rs.Family, rs.Weight) {
			continue
		}
		info, err := e.fonts.Get(ctx, rs.Family, rs.Weight)
		if err != nil {
			log.Warn("Cached font unavailable for export", "family", rs.Family, "weight", rs.Weight, "error", err)
			continue
		}
		rules = append(rules, font.GetFontCSS(info))
	}
	return strings.Join(rules, "\n")
}

// FontStack returns a font-family list with safe fallbacks for a category.
func FontStack(family string, category font.Category) string {
	stack := fmt.Sprintf("'%s'", family)
	switch category {
	case font.Serif:
		return stack + ", Georgia, 'Times New Roman', Times, serif"
	case font.Monospace:
		return stack + ", 'Courier New', Courier, 'Lucida Console', monospace"
	case font.Display:
		return stack + ", Impact, 'Arial Black', sans-serif"
	default:
		return stack + ", Arial, Helvetica, sans-serif"
	}
}
