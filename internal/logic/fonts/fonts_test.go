package fonts

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/joeblew999/plat-theme/internal/errorx"
	"github.com/joeblew999/plat-theme/internal/svc/svctest"
	"github.com/joeblew999/plat-theme/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFonts(t *testing.T) {
	svcCtx := svctest.New(t, false)
	l := NewListFontsLogic(context.Background(), svcCtx)

	resp, err := l.ListFonts(&types.ListFontsRequest{Category: "sans-serif", Active: "Lato", Limit: 100})
	require.NoError(t, err)
	require.Equal(t, 4, resp.Count)
	assert.Equal(t, "Lato", resp.Fonts[0].Family)
	assert.True(t, resp.Fonts[0].Active)
	assert.Equal(t, []int{300, 400, 700}, resp.Fonts[0].Weights)

	resp, err = l.ListFonts(&types.ListFontsRequest{Category: "sans-serif", Query: "  SANS ", Limit: 100})
	require.NoError(t, err)
	require.Len(t, resp.Fonts, 1)
	assert.Equal(t, "Open Sans", resp.Fonts[0].Family)

	resp, err = l.ListFonts(&types.ListFontsRequest{Category: "sans-serif", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 4, resp.Total)
}

func TestListFontsErrors(t *testing.T) {
	_, err := NewListFontsLogic(context.Background(), svctest.New(t, false)).
		ListFonts(&types.ListFontsRequest{Category: "cursive", Limit: 10})
	var ce *errorx.CodeError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, http.StatusBadRequest, ce.Code)

	_, err = NewListFontsLogic(context.Background(), svctest.New(t, true)).
		ListFonts(&types.ListFontsRequest{Category: "serif", Limit: 10})
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, http.StatusServiceUnavailable, ce.Code)
}

func TestCategoriesAndWeights(t *testing.T) {
	svcCtx := svctest.New(t, false)
	ctx := context.Background()

	cats, err := NewCategoriesLogic(ctx, svcCtx).Categories()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"sans-serif": 4, "serif": 1, "display": 1, "monospace": 1}, cats.Categories)

	w, err := NewFontWeightsLogic(ctx, svcCtx).FontWeights(&types.FontWeightsRequest{Family: "Fira Code"})
	require.NoError(t, err)
	assert.Equal(t, []int{300, 400, 500}, w.Weights)
	assert.Equal(t, "monospace", w.Category)
	assert.Contains(t, w.Stylesheet, "family=Fira+Code:wght@300;400;500")

	_, err = NewFontWeightsLogic(ctx, svcCtx).FontWeights(&types.FontWeightsRequest{Family: "Nope"})
	var ce *errorx.CodeError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, http.StatusNotFound, ce.Code)
}
