package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joeblew999/plat-theme/pkg/colors"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/images"
	"github.com/joeblew999/plat-theme/pkg/theme"
	"github.com/joeblew999/plat-theme/pkg/typography"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput() Input {
	return Input{
		Snapshot: theme.Snapshot{
			Heading: theme.RoleSnapshot{
				Settings:   typography.Settings{Family: "Lora", Weight: 700, SizeScale: 1.5, LineHeight: 1.2},
				Stylesheet: font.StylesheetURL("Lora", []int{700}),
			},
			Body: theme.RoleSnapshot{
				Settings:   typography.Settings{Family: "Open Sans", Weight: 400, SizeScale: 1, LineHeight: 1.5},
				Stylesheet: font.StylesheetURL("Open Sans", []int{400}),
			},
			Mode:   colors.Popular,
			Colors: colors.Scheme{Background: "#0f172a", Text: "#e2e8f0"},
		},
		Styles: map[typography.Role][]typography.ElementStyle{
			typography.Heading: {{ID: "hero-title", FontSizePx: 72}},
		},
	}
}

func TestExportHero(t *testing.T) {
	e, err := New("", nil, WithCategories(func(string) font.Category { return font.Serif }))
	require.NoError(t, err)

	html, err := e.Export(context.Background(), "hero", testInput())
	require.NoError(t, err)

	lower := strings.ToLower(html)
	assert.Contains(t, html, "Build something people remember")
	assert.Contains(t, lower, "#0f172a")
	assert.Contains(t, lower, "#e2e8f0")
	assert.Contains(t, html, "72px")
	assert.Contains(t, html, "Georgia")
}

func TestExportWithImage(t *testing.T) {
	e, err := New("", nil)
	require.NoError(t, err)

	in := testInput()
	in.Images = map[string]images.Image{
		"card": {Slot: "card", MIME: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}},
	}
	html, err := e.Export(context.Background(), "card", in)
	require.NoError(t, err)
	assert.Contains(t, html, "data:image/png;base64,")
	assert.Contains(t, html, "A card worth reading")
}

func TestExportUnknownComponent(t *testing.T) {
	e, err := New("", nil)
	require.NoError(t, err)

	_, err = e.Export(context.Background(), "footer", testInput())
	assert.ErrorIs(t, err, ErrUnknownComponent)
}

func TestComponentOverrides(t *testing.T) {
	dir := t.TempDir()
	custom := `<mjml><mj-body><mj-section><mj-column><mj-text color="{{.Colors.Text}}">{{.Heading.Family}} custom</mj-text></mj-column></mj-section></mj-body></mjml>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.mjml"), []byte(custom), 0o644))

	e, err := New(dir, NewRenderer())
	require.NoError(t, err)
	assert.Equal(t, []string{"banner", "card", "custom", "hero"}, e.Components())

	html, err := e.Export(context.Background(), "custom", testInput())
	require.NoError(t, err)
	assert.Contains(t, html, "Lora custom")
}

const cacheTemplate = `<mjml><mj-body><mj-section><mj-column><mj-text>{{.}}</mj-text></mj-column></mj-section></mj-body></mjml>`

func TestRendererCache(t *testing.T) {
	r := NewRenderer(WithCache(true))
	require.NoError(t, r.LoadTemplate("t", cacheTemplate))

	first, err := r.Render("t", "hello")
	require.NoError(t, err)
	second, err := r.Render("t", "hello")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), r.Renders())

	_, err = r.Render("t", "other")
	require.NoError(t, err)
	assert.Equal(t, int64(2), r.Renders())

	require.Error(t, r.LoadTemplate("bad", "{{.Unclosed"))

	require.NoError(t, r.LoadTemplate("t", strings.Replace(cacheTemplate, "{{.}}", "{{.}}!", 1)))
	reloaded, err := r.Render("t", "hello")
	require.NoError(t, err)
	assert.Contains(t, reloaded, "hello!")
	assert.Equal(t, int64(3), r.Renders())
}

func TestRendererCacheIsBounded(t *testing.T) {
	r := NewRenderer(WithCache(true), WithCacheLimit(2))
	require.NoError(t, r.LoadTemplate("t", cacheTemplate))

	for _, v := range []string{"a", "b", "c"} {
		_, err := r.Render("t", v)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), r.Renders())

	_, err := r.Render("t", "c")
	require.NoError(t, err)
	assert.Equal(t, int64(3), r.Renders(), "recent render is cached")

	_, err = r.Render("t", "a")
	require.NoError(t, err)
	assert.Equal(t, int64(4), r.Renders(), "oldest render was evicted")
}

func TestRendererCacheExpires(t *testing.T) {
	r := NewRenderer(WithCache(true), WithCacheExpiry(20*time.Millisecond))
	require.NoError(t, r.LoadTemplate("t", cacheTemplate))

	_, err := r.Render("t", "hello")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		_, err := r.Render("t", "hello")
		return err == nil && r.Renders() == 2
	}, 5*time.Second, 50*time.Millisecond)
}

func TestFontStack(t *testing.T) {
	assert.Equal(t, "'Lora', Georgia, 'Times New Roman', Times, serif", FontStack("Lora", font.Serif))
	assert.Equal(t, "'Fira Code', 'Courier New', Courier, 'Lucida Console', monospace", FontStack("Fira Code", font.Monospace))
	assert.Equal(t, "'Inter', Arial, Helvetica, sans-serif", FontStack("Inter", font.SansSerif))
}

type cachedFonts struct{}

func (cachedFonts) Available(family string, weight int) bool { return family == "Lora" }

func (cachedFonts) Get(_ context.Context, family string, weight int) (font.FontInfo, error) {
	return font.FontInfo{
		Font:   font.Font{Family: family, Weight: weight, Style: "normal", Format: "ttf"},
		CDNURL: "https://fonts.gstatic.com/s/lora.ttf",
	}, nil
}

func TestFontCSSFromCache(t *testing.T) {
	e, err := New("", nil, WithFontSource(cachedFonts{}))
	require.NoError(t, err)
	css := e.fontCSS(context.Background(), testInput().Snapshot)
	assert.Contains(t, css, "font-family: 'Lora';")
	assert.NotContains(t, css, "Open Sans")
}
