package colors

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const presetYAML = `
presets:
  - name: snow
    category: light
    background: "#FFFFFF"
    text: "rgb(20, 20, 20)"
  - name: night
    category: dark
    background: "#000"
    text: "rgba(255, 255, 255, 0.9)"
    default: true
`

func TestParsePresets(t *testing.T) {
	set, err := ParsePresets([]byte(presetYAML))
	require.NoError(t, err)

	assert.Len(t, set.All(), 2)
	assert.Equal(t, "night", set.Default().Name)
	assert.Equal(t, []string{"light", "dark"}, set.Categories())

	p, ok := set.Match(Scheme{Background: "#ffffff", Text: "rgb(20, 20, 20)"})
	require.True(t, ok)
	assert.Equal(t, "snow", p.Name)
}

func TestParsePresetsRejects(t *testing.T) {
	tests := map[string]string{
		"bad color":     "presets:\n  - {name: a, category: x, background: red, text: '#000'}\n",
		"no presets":    "presets: []\n",
		"duplicate":     "presets:\n  - {name: a, category: x, background: '#fff', text: '#000'}\n  - {name: a, category: x, background: '#fff', text: '#000'}\n",
		"two defaults":  "presets:\n  - {name: a, category: x, background: '#fff', text: '#000', default: true}\n  - {name: b, category: x, background: '#fff', text: '#000', default: true}\n",
		"missing field": "presets:\n  - {name: a, background: '#fff', text: '#000'}\n",
		"not yaml":      "presets: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePresets([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestFirstPresetIsDefaultWhenUnmarked(t *testing.T) {
	set, err := NewPresetSet([]Preset{
		{Name: "a", Category: "x", Background: "#fff", Text: "#000"},
		{Name: "b", Category: "x", Background: "#000", Text: "#fff"},
	})
	require.NoError(t, err)
	assert.Equal(t, "a", set.Default().Name)
	assert.True(t, set.Default().Default)
}

func TestBuiltinPresetsFilter(t *testing.T) {
	set := BuiltinPresets()
	assert.Equal(t, "paper", set.Default().Name)
	assert.Len(t, set.Filter(CategoryAll), len(set.All()))
	for _, p := range set.Filter("dark") {
		assert.Equal(t, "dark", p.Category)
	}
	assert.Empty(t, set.Filter("neon"))
}

func TestValidColor(t *testing.T) {
	for _, c := range []string{"#fff", "#FFFFFF", "#11223344", "rgb(0,0,0)", "rgba(10, 20, 30, 0.5)"} {
		assert.True(t, ValidColor(c), c)
	}
	for _, c := range []string{"", "red", "#ggg", "rgb(300,0,0)", "hsl(0, 0%, 0%)"} {
		assert.False(t, ValidColor(c), c)
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	set, err := LoadPresets(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BuiltinPresets().All(), set.All())
}

func TestLibraryWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(presetYAML), 0o644))

	lib, err := NewLibrary(path)
	require.NoError(t, err)
	require.Equal(t, "night", lib.Presets().Default().Name)

	reloaded := make(chan *PresetSet, 4)
	lib.OnReload(func(s *PresetSet) { reloaded <- s })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = lib.Watch(ctx) }()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("presets: ["), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "night", lib.Presets().Default().Name, "broken file keeps the current set")

	next := "presets:\n  - {name: sun, category: warm, background: '#FFD54F', text: '#3E2723'}\n"
	require.NoError(t, os.WriteFile(path, []byte(next), 0o644))

	require.Eventually(t, func() bool {
		return lib.Presets().Default().Name == "sun"
	}, 2*time.Second, 20*time.Millisecond)
	select {
	case s := <-reloaded:
		assert.NotNil(t, s)
	case <-time.After(time.Second):
		t.Fatal("reload callback not called")
	}
}
