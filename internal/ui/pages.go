// Package ui provides the Datastar-based theme customizer page.
package ui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joeblew999/plat-theme/pkg/colors"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/picker"
	"github.com/joeblew999/plat-theme/pkg/typography"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	data "maragu.dev/gomponents-datastar"
)

// PageView is everything the customizer page is composed from.
type PageView struct {
	Signals          map[string]any
	Links            []font.Link
	ThemeCSS         string
	ImageCSS         string
	Presets          []colors.Preset
	PresetCategories []string
	Slots            []string
	Filled           map[string]bool
	Components       []string
}

// Layout wraps content in the base HTML layout.
func Layout(title string, links []font.Link, content ...g.Node) g.Node {
	return h.HTML(
		h.Lang("en"),
		h.Head(
			h.Meta(h.Charset("utf-8")),
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.TitleEl(g.Text(title)),
			h.Script(h.Type("module"), h.Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js")),
			h.StyleEl(h.Type("text/css"), g.Raw(styles)),
		),
		h.Body(
			h.Div(h.ID("font-links"), g.Map(links, linkNode)),
			h.Nav(h.Class("navbar"),
				h.Div(h.Class("nav-brand"), g.Text("plat-theme")),
				h.Div(h.Class("nav-links"),
					h.A(h.Href("/"), g.Text("Customizer")),
					h.A(h.Href("#export"), g.Text("Export")),
				),
			),
			h.Main(h.Class("container"), g.Group(content)),
			h.Footer(h.Class("footer"),
				g.Text("plat-theme - Theme Customizer"),
			),
		),
	)
}

// CustomizerPage renders the font and color controls beside the preview.
func CustomizerPage(v PageView) g.Node {
	return Layout("Theme Customizer - plat-theme", v.Links,
		data.Signals(v.Signals),
		data.Init("@get('/ui/fonts')"),

		h.Div(h.Class("error-banner"),
			data.Show("$error !== ''"),
			data.Text("$error"),
		),

		h.Div(h.Class("customizer"),
			h.Aside(h.Class("controls"),
				FontPanel(),
				TypographyPanel(typography.Heading, "Heading"),
				TypographyPanel(typography.Body, "Body"),
				ColorPanel(v.Presets, v.PresetCategories),
				ImagePanel(v.Slots, v.Filled),
				ExportPanel(v.Components),
			),
			Preview(v.ThemeCSS, v.ImageCSS),
		),
	)
}

// FontPanel is the role toggle, category filter, search box and font list.
func FontPanel() g.Node {
	categories := make([]g.Node, 0, len(font.Categories))
	for _, c := range font.Categories {
		categories = append(categories, h.Option(h.Value(string(c)), g.Text(string(c))))
	}
	return h.Div(h.Class("section"),
		h.H2(g.Text("Fonts")),
		h.Div(h.Class("filter-bar"),
			roleButton(typography.Heading, "Heading"),
			roleButton(typography.Body, "Body"),
		),
		h.Div(h.Class("form-group"),
			h.Select(data.Bind("category"), data.On("change", "@get('/ui/fonts')"), g.Group(categories)),
		),
		h.Div(h.Class("form-group"),
			h.Input(h.Type("search"), h.Placeholder("Search fonts"),
				data.Bind("term"),
				data.On("input", "@get('/ui/search')"),
			),
		),
		h.Div(h.Class("refresh-bar"),
			h.Span(data.Show("$loading"), h.Span(h.Class("loading-spinner")), g.Text(" Loading... ")),
			h.Span(data.Text("$fontCount + ' fonts'")),
		),
		fontList(),
	)
}

func roleButton(role typography.Role, label string) g.Node {
	r := string(role)
	return h.Button(
		data.Class("active", fmt.Sprintf("$role === '%s'", r)),
		data.On("click", fmt.Sprintf("$role = '%s'; @get('/ui/fonts')", r)),
		g.Text(label),
	)
}

func fontList() g.Node {
	return h.Div(h.ID("font-list"), h.Class("font-list"))
}

// fontEntry is one row of the font list, shown in its own face.
func fontEntry(e picker.Entry) g.Node {
	return h.Button(h.Class("font-item"),
		h.StyleAttr(fmt.Sprintf("font-family: '%s', sans-serif;", strings.ReplaceAll(e.Family, "'", ""))),
		data.Class("active", "($role === 'heading' ? $headingFamily : $bodyFamily) === "+strconv.Quote(e.Family)),
		data.On("click", "@post('/ui/select?family="+url.QueryEscape(e.Family)+"')"),
		g.Text(e.Family),
	)
}

func linkNode(l font.Link) g.Node {
	return h.Link(h.ID(l.ID), h.Rel("stylesheet"), h.Href(l.Href))
}

func themeStyle(css string) g.Node {
	return h.StyleEl(h.ID("theme-style"), g.Raw(css))
}

// TypographyPanel holds the sliders of one role.
func TypographyPanel(role typography.Role, title string) g.Node {
	r := string(role)
	post := func(field string) string {
		return fmt.Sprintf("@post('/ui/typography?role=%s&field=%s')", r, field)
	}
	return h.Div(h.Class("section"),
		h.H2(g.Text(title)),
		h.P(h.Class("current-font"),
			h.Strong(data.Text("$"+r+"Family")),
			g.Text(" "),
			h.A(data.Attr("href", "$"+r+"Specimen"), h.Target("_blank"), g.Text("specimen")),
		),
		h.Div(h.Class("form-group"),
			h.Label(g.Text("Weight "), h.Span(data.Text("$"+r+"WeightLabel"))),
			h.Input(h.Type("range"), h.Min("0"), h.Step("1"),
				data.Attr("max", "$"+r+"WeightMax"),
				data.Attr("disabled", "$"+r+"WeightMax === 0"),
				data.Bind(r+"WeightIndex"),
				data.On("change", post("weight")),
			),
		),
		rangeControl("Size", r+"Scale", typography.ScaleRange, post("scale")),
		rangeControl("Line height", r+"LineHeight", typography.LineHeightRange, post("lineHeight")),
		rangeControl("Letter spacing", r+"LetterSpacing", typography.LetterSpacingRange, post("letterSpacing")),
		h.Button(h.Class("secondary"), data.On("click", "@post('/ui/reset?target=font')"), g.Text("Reset fonts")),
	)
}

func rangeControl(label, signal string, rng typography.Range, action string) g.Node {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return h.Div(h.Class("form-group"),
		h.Label(g.Text(label+" "), h.Span(data.Text("$"+signal+"Label"))),
		h.Input(h.Type("range"), h.Min(f(rng.Min)), h.Max(f(rng.Max)), h.Step(f(rng.Step)),
			data.Bind(signal),
			data.On("change", action),
		),
	)
}

// ColorPanel switches between preset and custom colors.
func ColorPanel(presets []colors.Preset, categories []string) g.Node {
	options := make([]g.Node, 0, len(categories))
	for _, c := range categories {
		options = append(options, h.Option(h.Value(c), g.Text(c)))
	}
	return h.Div(h.Class("section"),
		h.H2(g.Text("Colors")),
		h.Div(h.Class("filter-bar"),
			h.Button(data.Class("active", "$mode === 'popular'"),
				data.On("click", "$mode = 'popular'; @post('/ui/colors/mode')"), g.Text("Popular")),
			h.Button(data.Class("active", "$mode === 'custom'"),
				data.On("click", "$mode = 'custom'; @post('/ui/colors/mode')"), g.Text("Custom")),
		),
		h.Div(data.Show("$mode === 'popular'"),
			h.Div(h.Class("form-group"),
				h.Select(data.Bind("presetCategory"), data.On("change", "@get('/ui/presets')"), g.Group(options)),
			),
			PresetGrid(presets),
		),
		h.Div(data.Show("$mode === 'custom'"),
			h.Div(h.Class("form-group"),
				h.Label(g.Text("Background")),
				h.Input(h.Type("color"), data.Bind("background"), data.On("change", "@post('/ui/colors/custom')")),
			),
			h.Div(h.Class("form-group"),
				h.Label(g.Text("Text")),
				h.Input(h.Type("color"), data.Bind("text"), data.On("change", "@post('/ui/colors/custom')")),
			),
			h.Button(h.Class("secondary"),
				data.Show("'EyeDropper' in window"),
				data.On("click", "new EyeDropper().open().then(r => { $background = r.sRGBHex; @post('/ui/colors/custom') })"),
				g.Text("Pick background from screen"),
			),
		),
		h.Button(h.Class("secondary"), data.On("click", "@post('/ui/reset?target=color')"), g.Text("Reset colors")),
	)
}

// PresetGrid renders one swatch per preset.
func PresetGrid(presets []colors.Preset) g.Node {
	return h.Div(h.ID("preset-grid"), h.Class("preset-grid"),
		g.Map(presets, func(p colors.Preset) g.Node {
			return h.Button(h.Class("swatch"),
				h.StyleAttr(fmt.Sprintf("background-color: %s; color: %s;", p.Background, p.Text)),
				h.TitleAttr(p.Category),
				data.Class("active", "$preset === "+strconv.Quote(p.Name)),
				data.On("click", "@post('/ui/colors/preset?name="+url.QueryEscape(p.Name)+"')"),
				g.Text(p.Name),
			)
		}),
	)
}

// ImagePanel uploads and clears the images of the preview slots.
func ImagePanel(slots []string, filled map[string]bool) g.Node {
	return h.Div(h.Class("section"),
		h.H2(g.Text("Images")),
		g.Map(slots, func(slot string) g.Node {
			return h.Div(h.Class("form-group"),
				h.Label(g.Text(slot)),
				h.Form(h.Method("post"), h.Action("/images/"+url.PathEscape(slot)), h.EncType("multipart/form-data"),
					h.Input(h.Type("file"), h.Name("image"), h.Accept("image/*"), h.Required()),
					h.Button(h.Type("submit"), g.Text("Upload")),
				),
				g.If(filled[slot],
					h.Form(h.Method("post"), h.Action("/images/"+url.PathEscape(slot)+"/delete"),
						h.Button(h.Type("submit"), h.Class("secondary"), g.Text("Remove")),
					),
				),
			)
		}),
	)
}

// ExportPanel links the downloadable components.
func ExportPanel(components []string) g.Node {
	return h.Div(h.ID("export"), h.Class("section"),
		h.H2(g.Text("Export")),
		h.Div(h.Class("actions"),
			g.Map(components, func(c string) g.Node {
				return h.A(h.Href("/export/"+url.PathEscape(c)), h.Button(g.Text(c)))
			}),
		),
	)
}

// Preview is the sample page styled by the theme. Element ids match
// typography.DefaultElements.
func Preview(themeCSS, imageCSS string) g.Node {
	return h.Div(h.Class("preview-panel"),
		themeStyle(themeCSS),
		h.StyleEl(h.ID("image-style"), g.Raw(imageCSS)),
		h.Section(h.Class("preview-hero"), h.Data("color", "variable"), h.Data("slot", "hero"),
			h.H1(h.ID("hero-title"), g.Text("Make it yours")),
			h.P(h.ID("hero-text"), g.Text("Pick a heading and a body font, tune their weight and rhythm, then choose the colors that carry them.")),
			h.Button(h.Data("color", "inverse"), g.Text("Get started")),
		),
		h.Section(h.Class("preview-section"), h.Data("background", "background"),
			h.H2(h.ID("section-title"), g.Text("Built from your choices")),
			h.Div(h.Class("preview-card"), h.Data("color", "inverse"),
				h.Div(h.Class("preview-card-image"), h.Data("slot", "card"), h.Data("background", "font")),
				h.H3(h.ID("card-title"), g.Text("A card title")),
				h.P(h.ID("card-text"), g.Text("Body copy follows the body font, its weight and its spacing.")),
				h.Small(h.ID("caption"), g.Text("Captions keep their own spacing.")),
			),
			h.Div(h.Class("preview-gallery"), h.Data("slot", "gallery"), h.Data("background", "font")),
		),
	)
}

const styles = `
:root {
	--primary: #6366f1;
	--primary-dark: #4f46e5;
	--danger: #ef4444;
	--bg: #f8fafc;
	--card-bg: #ffffff;
	--text: #1e293b;
	--text-muted: #64748b;
	--border: #e2e8f0;
}

* {
	box-sizing: border-box;
	margin: 0;
	padding: 0;
}

body {
	font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
	background: var(--bg);
	color: var(--text);
	line-height: 1.6;
}

.navbar {
	background: var(--primary);
	color: white;
	padding: 1rem 2rem;
	display: flex;
	justify-content: space-between;
	align-items: center;
	box-shadow: 0 2px 4px rgba(0,0,0,0.1);
}

.nav-brand {
	font-size: 1.5rem;
	font-weight: bold;
}

.nav-links a {
	color: white;
	text-decoration: none;
	margin-left: 2rem;
	opacity: 0.9;
}

.container {
	max-width: 1400px;
	margin: 0 auto;
	padding: 2rem;
}

.footer {
	text-align: center;
	padding: 2rem;
	color: var(--text-muted);
	border-top: 1px solid var(--border);
	margin-top: 2rem;
}

h2 {
	margin-bottom: 1rem;
	font-size: 1.25rem;
}

.customizer {
	display: grid;
	grid-template-columns: 360px 1fr;
	gap: 1.5rem;
	align-items: start;
}

.section {
	background: var(--card-bg);
	border-radius: 12px;
	padding: 1.5rem;
	margin-bottom: 1.5rem;
	border: 1px solid var(--border);
}

.actions,
.filter-bar {
	display: flex;
	gap: 0.5rem;
	flex-wrap: wrap;
	margin-bottom: 1rem;
}

button {
	background: var(--primary);
	color: white;
	border: none;
	padding: 0.5rem 1rem;
	border-radius: 8px;
	cursor: pointer;
	font-size: 0.95rem;
	font-weight: 500;
}

button:hover {
	background: var(--primary-dark);
}

button.active {
	background: var(--primary-dark);
	box-shadow: inset 0 2px 4px rgba(0,0,0,0.2);
}

button.secondary {
	background: transparent;
	color: var(--primary);
	border: 1px solid var(--primary);
}

.form-group {
	margin-bottom: 1rem;
}

.form-group label {
	display: block;
	margin-bottom: 0.25rem;
	font-weight: 500;
}

.form-group select,
.form-group input[type="search"] {
	width: 100%;
	padding: 0.5rem;
	border: 1px solid var(--border);
	border-radius: 8px;
	font-size: 1rem;
}

.form-group input[type="range"] {
	width: 100%;
}

.refresh-bar {
	color: var(--text-muted);
	font-size: 0.875rem;
	margin-bottom: 0.5rem;
}

.font-list {
	max-height: 420px;
	overflow-y: auto;
	border: 1px solid var(--border);
	border-radius: 8px;
}

.font-item {
	display: block;
	width: 100%;
	text-align: left;
	background: transparent;
	color: var(--text);
	border-radius: 0;
	font-size: 1.1rem;
	border-bottom: 1px solid var(--border);
}

.font-item:hover {
	background: var(--bg);
}

.font-item.active {
	background: var(--primary);
	color: white;
}

.preset-grid {
	display: grid;
	grid-template-columns: repeat(2, 1fr);
	gap: 0.5rem;
	margin-bottom: 1rem;
}

.swatch {
	border: 1px solid var(--border);
	text-transform: capitalize;
}

.swatch.active {
	outline: 3px solid var(--primary);
}

.error-banner {
	background: var(--danger);
	color: white;
	padding: 0.75rem 1rem;
	border-radius: 8px;
	margin-bottom: 1rem;
}

.loading-spinner {
	display: inline-block;
	width: 12px;
	height: 12px;
	border: 2px solid var(--border);
	border-top-color: var(--primary);
	border-radius: 50%;
	animation: spin 1s linear infinite;
}

@keyframes spin {
	to { transform: rotate(360deg); }
}

.preview-panel {
	border-radius: 12px;
	overflow: hidden;
	border: 1px solid var(--border);
	position: sticky;
	top: 1rem;
}

.preview-hero {
	padding: 4rem 2rem;
	background-size: cover;
}

.preview-hero p {
	margin: 1rem 0 2rem;
	max-width: 40rem;
}

.preview-section {
	padding: 2rem;
}

.preview-card {
	border-radius: 12px;
	padding: 1.5rem;
	margin: 1rem 0;
	max-width: 24rem;
}

.preview-card-image,
.preview-gallery {
	height: 160px;
	border-radius: 8px;
	margin-bottom: 1rem;
}

@media (max-width: 900px) {
	.customizer {
		grid-template-columns: 1fr;
	}
}
`
