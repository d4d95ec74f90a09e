package palette

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/joeblew999/plat-theme/internal/errorx"
	"github.com/joeblew999/plat-theme/internal/session"
	"github.com/joeblew999/plat-theme/internal/svc/svctest"
	"github.com/joeblew999/plat-theme/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codeOf(t *testing.T, err error) int {
	t.Helper()
	var ce *errorx.CodeError
	require.True(t, errors.As(err, &ce), "expected CodeError, got %v", err)
	return ce.Code
}

func TestListPresets(t *testing.T) {
	svcCtx := svctest.New(t, false)
	l := NewListPresetsLogic(context.Background(), svcCtx)

	all, err := l.ListPresets(&types.ListPresetsRequest{Category: "all"})
	require.NoError(t, err)
	assert.Len(t, all.Presets, 10)
	assert.Contains(t, all.Categories, "dark")

	dark, err := l.ListPresets(&types.ListPresetsRequest{Category: "dark"})
	require.NoError(t, err)
	require.NotEmpty(t, dark.Presets)
	for _, p := range dark.Presets {
		assert.Equal(t, "dark", p.Category)
	}
}

func TestColorFlow(t *testing.T) {
	svcCtx := svctest.New(t, false)
	ctx := context.Background()
	id := session.NewID()

	theme, err := NewSelectPresetLogic(ctx, svcCtx).SelectPreset(&types.SelectPresetRequest{Session: id, Name: "ink"})
	require.NoError(t, err)
	assert.Equal(t, "popular", theme.Colors.Mode)
	assert.Equal(t, "ink", theme.Colors.Preset)
	assert.Equal(t, "#111111", theme.Colors.Background)

	_, err = NewSelectPresetLogic(ctx, svcCtx).SelectPreset(&types.SelectPresetRequest{Session: id, Name: "nope"})
	assert.Equal(t, http.StatusNotFound, codeOf(t, err))

	custom := NewSetCustomColorsLogic(ctx, svcCtx)
	_, err = custom.SetCustomColors(&types.SetCustomColorsRequest{Session: id, Background: "#000000", Text: "#FFFFFF"})
	assert.Equal(t, http.StatusBadRequest, codeOf(t, err), "popular mode ignores custom colors")

	theme, err = NewSetColorModeLogic(ctx, svcCtx).SetColorMode(&types.SetColorModeRequest{Session: id, Mode: "custom"})
	require.NoError(t, err)
	assert.Equal(t, "custom", theme.Colors.Mode)

	theme, err = custom.SetCustomColors(&types.SetCustomColorsRequest{Session: id, Background: "rgb(10, 20, 30)", Text: "#FAFAFA"})
	require.NoError(t, err)
	assert.Equal(t, "rgb(10, 20, 30)", theme.Colors.Background)
	assert.Empty(t, theme.Colors.Preset)

	_, err = custom.SetCustomColors(&types.SetCustomColorsRequest{Session: id, Background: "blue-ish", Text: "#FAFAFA"})
	assert.Equal(t, http.StatusBadRequest, codeOf(t, err))
}
