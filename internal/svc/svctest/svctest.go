// Package svctest builds service contexts backed by temporary storage and a
// fake font directory.
package svctest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/joeblew999/plat-theme/internal/config"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/stretchr/testify/require"
)

// Directory is the font directory served to tests.
var Directory = []font.Record{
	{Family: "Roboto", Category: font.SansSerif, Variants: []string{"300", "regular", "700", "700italic"}},
	{Family: "Inter", Category: font.SansSerif, Variants: []string{"regular", "700"}},
	{Family: "Open Sans", Category: font.SansSerif, Variants: []string{"regular", "600", "700"}},
	{Family: "Lato", Category: font.SansSerif, Variants: []string{"300", "regular", "700"}},
	{Family: "Merriweather", Category: font.Serif, Variants: []string{"regular", "900"}},
	{Family: "Lobster", Category: font.Display, Variants: []string{"regular"}},
	{Family: "Fira Code", Category: font.Monospace, Variants: []string{"300", "regular", "500"}},
}

// Config returns a configuration rooted in dir, reading fonts from directoryURL.
func Config(dir, directoryURL string) config.Config {
	var c config.Config
	c.Database.Path = filepath.Join(dir, "theme.db")
	c.Fonts.Dir = filepath.Join(dir, "fonts")
	c.Fonts.DirectoryURL = directoryURL
	c.Fonts.Timeout = 2 * time.Second
	c.Fonts.SansSerifCap = 200
	c.Fonts.OtherCap = 100
	c.Picker.BatchSize = 25
	c.Picker.Debounce = 20 * time.Millisecond
	c.Sessions.Cookie = "theme_session"
	c.Sessions.Expiry = time.Hour
	c.Colors.PresetFile = filepath.Join(dir, "presets.yaml")
	c.Images.MaxBytes = 1 << 20
	c.Export.Dir = filepath.Join(dir, "components")
	c.Warm.Queue = "warm"
	return c
}

// New returns a service context serving Directory. The catalog endpoint
// fails with 503 when unavailable is true.
func New(t *testing.T, unavailable bool) *svc.ServiceContext {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if unavailable {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"items": Directory})
	}))
	t.Cleanup(srv.Close)

	ctx, err := svc.NewServiceContext(Config(t.TempDir(), srv.URL))
	require.NoError(t, err)
	t.Cleanup(ctx.Close)
	return ctx
}
