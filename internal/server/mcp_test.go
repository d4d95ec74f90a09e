package server

import (
	"context"
	"testing"

	"github.com/joeblew999/plat-theme/internal/svc/svctest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/mcp"
)

func toolByName(t *testing.T, tools []mcp.Tool, name string) mcp.Tool {
	t.Helper()
	for _, tool := range tools {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not registered", name)
	return mcp.Tool{}
}

func TestListFontsTool(t *testing.T) {
	tools := mcpTools(svctest.New(t, false))
	ctx := context.Background()

	out, err := toolByName(t, tools, "list_fonts").Handler(ctx, map[string]any{"category": "sans-serif", "limit": 2})
	require.NoError(t, err)
	res := out.(map[string]any)
	assert.Equal(t, 4, res["total"])
	assert.Len(t, res["fonts"], 2)

	_, err = toolByName(t, tools, "list_fonts").Handler(ctx, map[string]any{"category": "script"})
	assert.ErrorContains(t, err, "unknown category")
}

func TestSearchFontsTool(t *testing.T) {
	tools := mcpTools(svctest.New(t, false))

	out, err := toolByName(t, tools, "search_fonts").Handler(context.Background(), map[string]any{"query": "CODE", "category": "monospace"})
	require.NoError(t, err)
	res := out.(map[string]any)
	assert.Equal(t, 1, res["count"])
}

func TestFontWeightsTool(t *testing.T) {
	tools := mcpTools(svctest.New(t, false))
	tool := toolByName(t, tools, "font_weights")

	out, err := tool.Handler(context.Background(), map[string]any{"family": "Lato"})
	require.NoError(t, err)
	res := out.(map[string]any)
	assert.Equal(t, []int{300, 400, 700}, res["weights"])
	assert.Contains(t, res["stylesheet"], "family=Lato:wght@300;400;700")

	_, err = tool.Handler(context.Background(), map[string]any{"family": "Nope"})
	assert.ErrorContains(t, err, "font not found")
}

func TestFontToolsWithoutCatalog(t *testing.T) {
	tools := mcpTools(svctest.New(t, true))

	_, err := toolByName(t, tools, "list_fonts").Handler(context.Background(), map[string]any{})
	assert.Error(t, err)
}

func TestStylesheetURLTool(t *testing.T) {
	tool := stylesheetURLTool()

	out, err := tool.Handler(context.Background(), map[string]any{"family": "Open Sans"})
	require.NoError(t, err)
	res := out.(map[string]any)
	assert.Equal(t, "gfont-Open-Sans-400-700", res["id"])

	_, err = tool.Handler(context.Background(), map[string]any{"family": " "})
	assert.Error(t, err)
}

func TestCategoriesResource(t *testing.T) {
	res, err := categoriesResource(svctest.New(t, false)).Handler(context.Background())
	require.NoError(t, err)
	assert.Contains(t, res.Text, "- sans-serif: 4 families")
	assert.Contains(t, res.Text, "- display: 1 families")
}
