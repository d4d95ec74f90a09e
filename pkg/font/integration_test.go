//go:build integration
// +build integration

package font

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joeblew999/plat-theme/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryIntegration(t *testing.T) {
	key := config.GetFontsAPIKey()
	if key == "" {
		t.Skip("GOOGLE_FONTS_API_KEY not set")
	}

	loader := NewLoader(NewHTTPFetcher("", key, 20*time.Second))
	c, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, c.Fonts(SansSerif), 200)
	assert.Contains(t, c.Weights("Inter"), 700)
	t.Logf("Loaded %d families: %v", c.Len(), c.Counts())
}

func TestManagerCachesFontFile(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	m := NewManagerWithDir(t.TempDir())
	info, err := m.Get(context.Background(), "Roboto", 400)
	require.NoError(t, err)
	assert.FileExists(t, info.Path)
	assert.NotEmpty(t, info.CDNURL)
	assert.True(t, m.Available("Roboto", 400))

	content, err := os.ReadFile(info.Path)
	require.NoError(t, err)
	require.Greater(t, len(content), 4)
	isTTF := (content[0] == 0x00 && content[1] == 0x01 && content[2] == 0x00 && content[3] == 0x00) ||
		string(content[0:4]) == "OTTO"
	assert.True(t, isTTF, "got signature % x", content[0:4])

	again, err := m.Get(context.Background(), "Roboto", 400)
	require.NoError(t, err)
	assert.Equal(t, info.Path, again.Path)
}
