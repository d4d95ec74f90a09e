package components

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

func TestExport(t *testing.T) {
	svcCtx := svctest.New(t, false)
	ctx := context.Background()

	list, err := NewListComponentsLogic(ctx, svcCtx).ListComponents()
	require.NoError(t, err)
	assert.Equal(t, []string{"banner", "card", "hero"}, list.Components)

	resp, err := NewExportLogic(ctx, svcCtx).Export(&types.ExportRequest{Session: session.NewID(), Component: "hero"})
	require.NoError(t, err)
	assert.Equal(t, "hero", resp.Component)
	assert.Equal(t, len(resp.Html), resp.Size)
	assert.Contains(t, resp.Html, "Build something people remember")
	assert.Contains(t, resp.Html, "Inter")

	_, err = NewExportLogic(ctx, svcCtx).Export(&types.ExportRequest{Session: session.NewID(), Component: "footer"})
	var ce *errorx.CodeError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, http.StatusNotFound, ce.Code)
}
