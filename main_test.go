package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/joeblew999/plat-theme/internal/svc/svctest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directoryServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"items": svctest.Directory})
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--directory-url", directoryServer(t)}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestFontsList(t *testing.T) {
	out, err := run(t, "fonts", "list", "--category", "serif")
	require.NoError(t, err)
	assert.Contains(t, out, "FAMILY")
	assert.Contains(t, out, "Merriweather")
	assert.NotContains(t, out, "Roboto")

	_, err = run(t, "fonts", "list", "--category", "script")
	assert.ErrorContains(t, err, "unknown category")
}

func TestFontsSearchJSON(t *testing.T) {
	out, err := run(t, "fonts", "search", "o", "--limit", "2", "--json")
	require.NoError(t, err)

	var rows []fontRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Roboto", rows[0].Family)
	assert.Equal(t, []int{300, 400, 700}, rows[0].Weights)
}

func TestFontsWeights(t *testing.T) {
	out, err := run(t, "fonts", "weights", "Open Sans")
	require.NoError(t, err)
	assert.Contains(t, out, "400, 600, 700")
	assert.Contains(t, out, "family=Open+Sans:wght@400;600;700")

	_, err = run(t, "fonts", "weights", "Nope")
	assert.ErrorContains(t, err, "font not found")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "card.html")

	_, err := run(t, "export", "card",
		"--heading", "Lato",
		"--preset", "midnight",
		"--presets", filepath.Join(dir, "missing.yaml"),
		"--components", filepath.Join(dir, "components"),
		"--fonts-dir", filepath.Join(dir, "fonts"),
		"--out", out,
	)
	require.NoError(t, err)

	html, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Lato")

	_, err = run(t, "export", "poster", "--presets", filepath.Join(dir, "missing.yaml"),
		"--components", filepath.Join(dir, "components"))
	assert.ErrorContains(t, err, "unknown component")
}
