package ui

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/joeblew999/plat-theme/internal/session"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/pkg/colors"
	"github.com/joeblew999/plat-theme/pkg/export"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/picker"
	"github.com/joeblew999/plat-theme/pkg/theme"
	"github.com/joeblew999/plat-theme/pkg/typography"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/pathvar"
)

// Handlers provides HTTP handlers for the UI.
type Handlers struct {
	svc *svc.ServiceContext
}

// NewHandlers creates new UI handlers.
func NewHandlers(svcCtx *svc.ServiceContext) *Handlers {
	return &Handlers{svc: svcCtx}
}

// Routes returns the standard UI routes for registration with rest.Server.
func (h *Handlers) Routes() []rest.Route {
	return []rest.Route{
		{Method: http.MethodGet, Path: "/", Handler: h.handleCustomizer},
		{Method: http.MethodPost, Path: "/images/:slot", Handler: h.handleUpload},
		{Method: http.MethodPost, Path: "/images/:slot/delete", Handler: h.handleDeleteImage},
		{Method: http.MethodGet, Path: "/export/:component", Handler: h.handleExport},
	}
}

// SSERoutes returns the SSE-based routes (require rest.WithSSE option).
func (h *Handlers) SSERoutes() []rest.Route {
	return []rest.Route{
		{Method: http.MethodGet, Path: "/ui/fonts", Handler: h.handleFonts},
		{Method: http.MethodGet, Path: "/ui/search", Handler: h.handleSearch},
		{Method: http.MethodGet, Path: "/ui/presets", Handler: h.handlePresets},
		{Method: http.MethodPost, Path: "/ui/select", Handler: h.handleSelect},
		{Method: http.MethodPost, Path: "/ui/typography", Handler: h.handleTypography},
		{Method: http.MethodPost, Path: "/ui/reset", Handler: h.handleReset},
		{Method: http.MethodPost, Path: "/ui/colors/preset", Handler: h.handlePreset},
		{Method: http.MethodPost, Path: "/ui/colors/custom", Handler: h.handleCustom},
		{Method: http.MethodPost, Path: "/ui/colors/mode", Handler: h.handleMode},
	}
}

// signals are the client signals the handlers read.
type signals struct {
	Role           string `json:"role"`
	Category       string `json:"category"`
	Term           string `json:"term"`
	PresetCategory string `json:"presetCategory"`
	Mode           string `json:"mode"`
	Background     string `json:"background"`
	Text           string `json:"text"`

	HeadingWeightIndex   float64 `json:"headingWeightIndex"`
	HeadingScale         float64 `json:"headingScale"`
	HeadingLineHeight    float64 `json:"headingLineHeight"`
	HeadingLetterSpacing float64 `json:"headingLetterSpacing"`
	BodyWeightIndex      float64 `json:"bodyWeightIndex"`
	BodyScale            float64 `json:"bodyScale"`
	BodyLineHeight       float64 `json:"bodyLineHeight"`
	BodyLetterSpacing    float64 `json:"bodyLetterSpacing"`
}

func (s signals) role() typography.Role {
	if r, err := typography.ParseRole(s.Role); err == nil {
		return r
	}
	return typography.Heading
}

// value returns the slider signal of role and field.
func (s signals) value(role typography.Role, field string) (float64, bool) {
	heading := role == typography.Heading
	switch field {
	case "weight":
		return pick(heading, s.HeadingWeightIndex, s.BodyWeightIndex), true
	case "scale":
		return pick(heading, s.HeadingScale, s.BodyScale), true
	case "lineHeight":
		return pick(heading, s.HeadingLineHeight, s.BodyLineHeight), true
	case "letterSpacing":
		return pick(heading, s.HeadingLetterSpacing, s.BodyLetterSpacing), true
	}
	return 0, false
}

func pick(first bool, a, b float64) float64 {
	if first {
		return a
	}
	return b
}

// session returns the visitor's session, issuing a cookie to new visitors.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	name := h.svc.Config.Sessions.Cookie
	if c, err := r.Cookie(name); err == nil {
		sess, err := h.svc.Sessions.Get(r.Context(), c.Value)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, session.ErrInvalidID) {
			return nil, err
		}
	}

	id := session.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.svc.Config.Sessions.Expiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return h.svc.Sessions.Get(r.Context(), id)
}

func (h *Handlers) handleCustomizer(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		logx.WithContext(r.Context()).Errorf("load session: %v", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	imgs, err := h.svc.Images.All(r.Context(), sess.ID)
	if err != nil {
		logx.WithContext(r.Context()).Errorf("load images: %v", err)
	}
	filled := make(map[string]bool, len(imgs))
	for slot := range imgs {
		filled[slot] = true
	}

	// The fresh page carries every link of the session.
	selectedLinks(sess)

	sigs := themeSignals(sess)
	sigs["role"] = string(typography.Heading)
	sigs["category"] = string(font.SansSerif)
	sigs["term"] = ""
	sigs["presetCategory"] = colors.CategoryAll
	sigs["fontCount"] = 0
	sigs["loading"] = true

	presets := sess.Theme.Colors.Presets()
	view := PageView{
		Signals:          sigs,
		Links:            sess.Links.Links(),
		ThemeCSS:         themeCSS(sess),
		ImageCSS:         imageCSS(imgs),
		Presets:          presets.All(),
		PresetCategories: presets.Categories(),
		Slots:            h.svc.Images.Slots(),
		Filled:           filled,
		Components:       h.svc.Exporter.Components(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := CustomizerPage(view).Render(w); err != nil {
		logx.Errorf("render customizer: %v", err)
	}
}

func (h *Handlers) handleFonts(w http.ResponseWriter, r *http.Request) {
	h.renderFonts(w, r, false)
}

func (h *Handlers) handleSearch(w http.ResponseWriter, r *http.Request) {
	h.renderFonts(w, r, true)
}

// renderFonts streams the filtered font list. Searches wait for the typing
// to settle and give up when a newer search arrives.
func (h *Handlers) renderFonts(w http.ResponseWriter, r *http.Request, debounce bool) {
	sess, sigs, ok := h.begin(w, r)
	if !ok {
		return
	}

	if debounce {
		settled, err := sess.Search.Settle(r.Context())
		if err != nil || !settled {
			return
		}
	}

	errMsg := ""
	catalog, err := h.svc.Catalog.Load(r.Context())
	loaded := err == nil
	if !loaded {
		logx.WithContext(r.Context()).Errorf("load font catalog: %v", err)
		catalog = font.EmptyCatalog()
		errMsg = "Font catalog unavailable"
	} else if err := sess.Theme.Fonts.Reconcile(r.Context()); err != nil {
		logx.WithContext(r.Context()).Errorf("reconcile weights: %v", err)
	}

	cat, ok := font.ParseCategory(sigs.Category)
	if !ok {
		cat = font.SansSerif
	}
	fonts := picker.Filter(sigs.Term, catalog.Fonts(cat))
	active := sess.Theme.Fonts.Settings(sigs.role()).Family

	sse := datastar.NewSSE(w, r)
	res, err := sess.Render.Render(r.Context(), newListSink(sse, sess.Links), fonts, active)
	if errors.Is(err, picker.ErrSuperseded) {
		return
	}
	if err != nil {
		logx.WithContext(r.Context()).Errorf("render font list: %v", err)
		return
	}

	if loaded {
		patchWeights(sse, sess)
	}
	if err := sse.MarshalAndPatchSignals(map[string]any{
		"fontCount": res.Rendered,
		"loading":   false,
		"error":     errMsg,
	}); err != nil {
		logx.Errorf("datastar patch signals: %v", err)
	}
}

func (h *Handlers) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess, sigs, ok := h.begin(w, r)
	if !ok {
		return
	}

	family := r.URL.Query().Get("family")
	if catalog, err := h.svc.Catalog.Load(r.Context()); err == nil && catalog.Weights(family) == nil {
		h.sendDatastarError(w, r, fmt.Errorf("unknown font family %q", family))
		return
	}
	if err := sess.Theme.Fonts.Select(r.Context(), sigs.role(), family); err != nil {
		h.sendDatastarError(w, r, err)
		return
	}
	patchTheme(datastar.NewSSE(w, r), sess)
}

func (h *Handlers) handleTypography(w http.ResponseWriter, r *http.Request) {
	sess, sigs, ok := h.begin(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	role, err := typography.ParseRole(q.Get("role"))
	if err != nil {
		h.sendDatastarError(w, r, err)
		return
	}
	field := q.Get("field")
	v, ok := sigs.value(role, field)
	if !ok {
		h.sendDatastarError(w, r, fmt.Errorf("unknown typography field %q", field))
		return
	}

	ctx := r.Context()
	switch field {
	case "weight":
		// Out of range positions leave the weight alone; the patch below
		// moves the slider back.
		_, err = sess.Theme.Fonts.SetWeight(ctx, role, int(v))
	case "scale":
		err = sess.Theme.Fonts.SetSizeScale(ctx, role, v)
	case "lineHeight":
		err = sess.Theme.Fonts.SetLineHeight(ctx, role, v)
	case "letterSpacing":
		err = sess.Theme.Fonts.SetLetterSpacing(ctx, role, v)
	}
	if err != nil {
		h.sendDatastarError(w, r, err)
		return
	}
	patchTheme(datastar.NewSSE(w, r), sess)
}

func (h *Handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.begin(w, r)
	if !ok {
		return
	}
	if err := sess.Theme.Reset(r.Context(), theme.Target(r.URL.Query().Get("target"))); err != nil {
		h.sendDatastarError(w, r, err)
		return
	}
	patchTheme(datastar.NewSSE(w, r), sess)
}

func (h *Handlers) handlePresets(w http.ResponseWriter, r *http.Request) {
	sess, sigs, ok := h.begin(w, r)
	if !ok {
		return
	}
	category := sigs.PresetCategory
	if category == "" {
		category = colors.CategoryAll
	}
	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElements(render(PresetGrid(sess.Theme.Colors.Presets().Filter(category)))); err != nil {
		logx.Errorf("datastar patch presets: %v", err)
	}
}

func (h *Handlers) handlePreset(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.begin(w, r)
	if !ok {
		return
	}
	if err := sess.Theme.Colors.SelectPreset(r.Context(), r.URL.Query().Get("name")); err != nil {
		h.sendDatastarError(w, r, err)
		return
	}
	patchTheme(datastar.NewSSE(w, r), sess)
}

func (h *Handlers) handleCustom(w http.ResponseWriter, r *http.Request) {
	sess, sigs, ok := h.begin(w, r)
	if !ok {
		return
	}
	// Outside custom mode the inputs are hidden and the edit is dropped.
	if _, err := sess.Theme.Colors.SetCustom(r.Context(), sigs.Background, sigs.Text); err != nil {
		h.sendDatastarError(w, r, err)
		return
	}
	patchTheme(datastar.NewSSE(w, r), sess)
}

func (h *Handlers) handleMode(w http.ResponseWriter, r *http.Request) {
	sess, sigs, ok := h.begin(w, r)
	if !ok {
		return
	}
	if err := sess.Theme.Colors.SetMode(r.Context(), colors.ParseMode(sigs.Mode)); err != nil {
		h.sendDatastarError(w, r, err)
		return
	}
	patchTheme(datastar.NewSSE(w, r), sess)
}

func (h *Handlers) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	slot := pathvar.Vars(r)["slot"]
	limit := h.svc.Images.MaxBytes()

	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	file, _, err := r.FormFile("image")
	if err != nil {
		logx.WithContext(r.Context()).Errorw("Image upload rejected",
			logx.Field("slot", slot), logx.Field("error", err.Error()))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err == nil {
		_, err = h.svc.Images.Put(r.Context(), sess.ID, slot, content)
	}
	if err != nil {
		logx.WithContext(r.Context()).Errorw("Image upload rejected",
			logx.Field("slot", slot), logx.Field("error", err.Error()))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	slot := pathvar.Vars(r)["slot"]
	if err := h.svc.Images.Delete(r.Context(), sess.ID, slot); err != nil {
		logx.WithContext(r.Context()).Errorw("Image delete failed",
			logx.Field("slot", slot), logx.Field("error", err.Error()))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	component := pathvar.Vars(r)["component"]

	in, err := sess.ExportInput(r.Context(), h.svc.Images)
	if err != nil {
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	out, err := h.svc.Exporter.Export(r.Context(), component, in)
	switch {
	case errors.Is(err, export.ErrUnknownComponent):
		http.NotFound(w, r)
		return
	case err != nil:
		logx.WithContext(r.Context()).Errorf("export %s: %v", component, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	warnings := export.CheckCompatibility(out)
	if len(warnings) > 0 {
		logx.WithContext(r.Context()).Infow("Exported component has compatibility warnings",
			logx.Field("component", component),
			logx.Field("warnings", warnings),
		)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+component+`.html"`)
	w.Header().Set("X-Export-Warnings", strconv.Itoa(len(warnings)))
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	if _, err := io.WriteString(w, out); err != nil {
		logx.Errorf("write export: %v", err)
	}
}

// begin loads the session and the request signals of an SSE handler.
func (h *Handlers) begin(w http.ResponseWriter, r *http.Request) (*session.Session, signals, bool) {
	var sigs signals
	sess, err := h.session(w, r)
	if err != nil {
		h.sendDatastarError(w, r, err)
		return nil, sigs, false
	}
	if err := datastar.ReadSignals(r, &sigs); err != nil {
		h.sendDatastarError(w, r, err)
		return nil, sigs, false
	}
	return sess, sigs, true
}

func (h *Handlers) sendDatastarSignals(w http.ResponseWriter, r *http.Request, signals map[string]any) {
	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(signals); err != nil {
		logx.Errorf("datastar patch signals: %v", err)
	}
}

func (h *Handlers) sendDatastarError(w http.ResponseWriter, r *http.Request, err error) {
	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}
	h.sendDatastarSignals(w, r, map[string]any{
		"loading": false,
		"error":   msg,
	})
}
