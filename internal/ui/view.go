package ui

import (
	"fmt"
	"maps"
	"strings"

	"github.com/joeblew999/plat-theme/internal/session"
	"github.com/joeblew999/plat-theme/pkg/colors"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/images"
	"github.com/joeblew999/plat-theme/pkg/typography"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/zeromicro/go-zero/core/logx"
	g "maragu.dev/gomponents"
)

// render writes a node to a string. Rendering into a builder cannot fail.
func render(n g.Node) string {
	var b strings.Builder
	_ = n.Render(&b)
	return b.String()
}

// styleEscaper keeps user supplied values from closing the style element.
var styleEscaper = strings.NewReplacer("<", `\3c `, ">", `\3e `)

// targetSelector turns "color=variable" into [data-color="variable"].
func targetSelector(t colors.Target) string {
	attr, value, _ := strings.Cut(string(t), "=")
	return fmt.Sprintf(`[data-%s="%s"]`, attr, value)
}

// themeCSS is the stylesheet of the preview: one rule per element id and one
// per color target.
func themeCSS(sess *session.Session) string {
	var b strings.Builder
	for _, role := range typography.Roles {
		for _, st := range sess.Theme.Fonts.Styles(role) {
			fmt.Fprintf(&b, "#%s { %s }\n", st.ID, st.CSS())
		}
	}
	styles := colors.Apply(sess.Theme.Colors.Active())
	for _, t := range colors.Targets {
		fmt.Fprintf(&b, "%s { %s }\n", targetSelector(t), styles[t].CSS())
	}
	return styleEscaper.Replace(b.String())
}

// imageCSS fills the image slots.
func imageCSS(imgs map[string]images.Image) string {
	var b strings.Builder
	for slot, img := range imgs {
		fmt.Fprintf(&b, "[data-slot=%q] { %s }\n", slot, img.CSS())
	}
	return b.String()
}

// themeSignals are the flat signals bound by the controls.
func themeSignals(sess *session.Session) map[string]any {
	signals := map[string]any{}
	for _, role := range typography.Roles {
		r := string(role)
		s := sess.Theme.Fonts.Settings(role)
		scale := typography.BindScale(s.SizeScale)
		lh := typography.BindLineHeight(s.LineHeight)
		ls := typography.BindLetterSpacing(s.LetterSpacing)

		signals[r+"Family"] = s.Family
		signals[r+"Specimen"] = font.SpecimenURL(s.Family)
		signals[r+"Scale"] = scale.Value
		signals[r+"ScaleLabel"] = scale.Display
		signals[r+"LineHeight"] = lh.Value
		signals[r+"LineHeightLabel"] = lh.Display
		signals[r+"LetterSpacing"] = ls.Value
		signals[r+"LetterSpacingLabel"] = ls.Display
	}

	maps.Copy(signals, weightSignals(sess))

	active := sess.Theme.Colors.Active()
	signals["mode"] = string(sess.Theme.Colors.Mode())
	signals["background"] = active.Background
	signals["text"] = active.Text
	signals["preset"] = ""
	if p, ok := sess.Theme.Colors.Selected(); ok && sess.Theme.Colors.Mode() == colors.Popular {
		signals["preset"] = p.Name
	}
	signals["error"] = ""
	return signals
}

// weightSignals bind the weight sliders to the weights known right now.
func weightSignals(sess *session.Session) map[string]any {
	signals := map[string]any{}
	for _, role := range typography.Roles {
		r := string(role)
		ws := sess.Theme.Fonts.WeightSlider(role)
		signals[r+"WeightIndex"] = ws.Value
		signals[r+"WeightMax"] = ws.Max
		signals[r+"WeightLabel"] = ws.Display
	}
	return signals
}

// selectedLinks registers the stylesheets of the selected families and
// returns the ones the page does not carry yet.
func selectedLinks(sess *session.Session) []font.Link {
	var added []font.Link
	for _, role := range typography.Roles {
		s := sess.Theme.Fonts.Settings(role)
		if link, ok := sess.Links.Add(s.Family, []int{s.Weight}); ok {
			added = append(added, link)
		}
	}
	return added
}

// patchWeights rebinds the weight sliders once the catalog knows the
// selected families, along with the stylesheet of any moved weight.
func patchWeights(sse *datastar.ServerSentEventGenerator, sess *session.Session) {
	patchStyle(sse, sess)
	if err := sse.MarshalAndPatchSignals(weightSignals(sess)); err != nil {
		logx.Errorf("datastar patch signals: %v", err)
	}
}

// patchTheme sends the preview stylesheet, missing font links and signals.
func patchTheme(sse *datastar.ServerSentEventGenerator, sess *session.Session) {
	patchStyle(sse, sess)
	if err := sse.MarshalAndPatchSignals(themeSignals(sess)); err != nil {
		logx.Errorf("datastar patch signals: %v", err)
	}
}

func patchStyle(sse *datastar.ServerSentEventGenerator, sess *session.Session) {
	for _, link := range selectedLinks(sess) {
		if err := sse.PatchElements(render(linkNode(link)), datastar.WithSelectorID("font-links"), datastar.WithModeAppend()); err != nil {
			logx.Errorf("datastar patch font link: %v", err)
		}
	}
	if err := sse.PatchElements(render(themeStyle(themeCSS(sess)))); err != nil {
		logx.Errorf("datastar patch theme style: %v", err)
	}
}
