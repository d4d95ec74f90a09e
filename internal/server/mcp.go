package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/pkg/colors"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/picker"
	"github.com/zeromicro/go-zero/mcp"
)

// RegisterMCPTools registers the catalog tools and resources.
func RegisterMCPTools(s mcp.McpServer, svcCtx *svc.ServiceContext) {
	for _, t := range mcpTools(svcCtx) {
		s.RegisterTool(t)
	}
	s.RegisterResource(categoriesResource(svcCtx))
}

func mcpTools(svcCtx *svc.ServiceContext) []mcp.Tool {
	return []mcp.Tool{
		listFontsTool(svcCtx),
		searchFontsTool(svcCtx),
		fontWeightsTool(svcCtx),
		stylesheetURLTool(),
		listPresetsTool(svcCtx),
	}
}

func categoryProperty() map[string]any {
	names := make([]string, len(font.Categories))
	for i, c := range font.Categories {
		names[i] = string(c)
	}
	return map[string]any{
		"type":        "string",
		"description": "Font category: " + strings.Join(names, ", "),
	}
}

func fontItems(records []font.Record, limit int) []map[string]any {
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	items := make([]map[string]any, 0, len(records))
	for _, r := range records {
		items = append(items, map[string]any{
			"family":   r.Family,
			"category": r.Category,
			"weights":  font.ParseWeights(r.Variants),
		})
	}
	return items
}

func parseCategory(s string) (font.Category, error) {
	if s == "" {
		return font.SansSerif, nil
	}
	cat, ok := font.ParseCategory(s)
	if !ok {
		return "", fmt.Errorf("unknown category: %s", s)
	}
	return cat, nil
}

func listFontsTool(svcCtx *svc.ServiceContext) mcp.Tool {
	return mcp.Tool{
		Name:        "list_fonts",
		Description: "List the Google Fonts families offered by the customizer for one category, in popularity order.",
		InputSchema: mcp.InputSchema{
			Properties: map[string]any{
				"category": categoryProperty(),
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of families (default 50)",
				},
			},
		},
		Handler: func(ctx context.Context, p map[string]any) (any, error) {
			var args struct {
				Category string `json:"category"`
				Limit    int    `json:"limit"`
			}
			if err := mcp.ParseArguments(p, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			cat, err := parseCategory(args.Category)
			if err != nil {
				return nil, err
			}
			if args.Limit <= 0 {
				args.Limit = 50
			}

			catalog, err := svcCtx.Catalog.Load(ctx)
			if err != nil {
				return nil, err
			}
			all := catalog.Fonts(cat)
			return map[string]any{
				"category": cat,
				"fonts":    fontItems(all, args.Limit),
				"total":    len(all),
			}, nil
		},
	}
}

func searchFontsTool(svcCtx *svc.ServiceContext) mcp.Tool {
	return mcp.Tool{
		Name:        "search_fonts",
		Description: "Search font families by name, ignoring case.",
		InputSchema: mcp.InputSchema{
			Properties: map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Part of the family name (e.g., sans, mono, lato)",
				},
				"category": categoryProperty(),
			},
			Required: []string{"query"},
		},
		Handler: func(ctx context.Context, p map[string]any) (any, error) {
			var args struct {
				Query    string `json:"query"`
				Category string `json:"category"`
			}
			if err := mcp.ParseArguments(p, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			cat, err := parseCategory(args.Category)
			if err != nil {
				return nil, err
			}

			catalog, err := svcCtx.Catalog.Load(ctx)
			if err != nil {
				return nil, err
			}
			matches := picker.Filter(args.Query, catalog.Fonts(cat))
			return map[string]any{
				"query": args.Query,
				"fonts": fontItems(matches, 0),
				"count": len(matches),
			}, nil
		},
	}
}

func fontWeightsTool(svcCtx *svc.ServiceContext) mcp.Tool {
	return mcp.Tool{
		Name:        "font_weights",
		Description: "Get the weights a font family is available in, with its stylesheet and specimen links.",
		InputSchema: mcp.InputSchema{
			Properties: map[string]any{
				"family": map[string]any{
					"type":        "string",
					"description": "Font family name (e.g., Inter, Open Sans)",
				},
			},
			Required: []string{"family"},
		},
		Handler: func(ctx context.Context, p map[string]any) (any, error) {
			var args struct {
				Family string `json:"family"`
			}
			if err := mcp.ParseArguments(p, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}

			catalog, err := svcCtx.Catalog.Load(ctx)
			if err != nil {
				return nil, err
			}
			weights := catalog.Weights(args.Family)
			if weights == nil {
				return nil, fmt.Errorf("font not found: %s", args.Family)
			}
			return map[string]any{
				"family":     args.Family,
				"category":   catalog.CategoryOf(args.Family),
				"weights":    weights,
				"stylesheet": font.StylesheetURL(args.Family, weights),
				"specimen":   font.SpecimenURL(args.Family),
			}, nil
		},
	}
}

func stylesheetURLTool() mcp.Tool {
	return mcp.Tool{
		Name:        "stylesheet_url",
		Description: "Build the Google Fonts stylesheet URL for a family and weights.",
		InputSchema: mcp.InputSchema{
			Properties: map[string]any{
				"family": map[string]any{
					"type":        "string",
					"description": "Font family name",
				},
				"weights": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "integer"},
					"description": "Weights to include (default 400 and 700)",
				},
			},
			Required: []string{"family"},
		},
		Handler: func(ctx context.Context, p map[string]any) (any, error) {
			var args struct {
				Family  string `json:"family"`
				Weights []int  `json:"weights"`
			}
			if err := mcp.ParseArguments(p, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			if strings.TrimSpace(args.Family) == "" {
				return nil, fmt.Errorf("family is required")
			}
			if len(args.Weights) == 0 {
				args.Weights = font.FallbackWeights
			}
			return map[string]any{
				"id":  font.StylesheetID(args.Family, args.Weights),
				"url": font.StylesheetURL(args.Family, args.Weights),
			}, nil
		},
	}
}

func listPresetsTool(svcCtx *svc.ServiceContext) mcp.Tool {
	return mcp.Tool{
		Name:        "list_color_presets",
		Description: "List the background/text color presets, optionally of one category.",
		InputSchema: mcp.InputSchema{
			Properties: map[string]any{
				"category": map[string]any{
					"type":        "string",
					"description": "Preset category (e.g., light, dark) or all",
				},
			},
		},
		Handler: func(ctx context.Context, p map[string]any) (any, error) {
			var args struct {
				Category string `json:"category"`
			}
			if err := mcp.ParseArguments(p, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			set := svcCtx.Presets.Presets()
			presets := set.Filter(args.Category)
			if presets == nil {
				presets = []colors.Preset{}
			}
			return map[string]any{
				"presets":    presets,
				"categories": set.Categories(),
			}, nil
		},
	}
}

func categoriesResource(svcCtx *svc.ServiceContext) mcp.Resource {
	return mcp.Resource{
		Name:        "categories",
		URI:         "theme://categories",
		Description: "Font categories with the number of families in each",
		MimeType:    "text/plain",
		Handler: func(ctx context.Context) (mcp.ResourceContent, error) {
			var b strings.Builder
			b.WriteString("Font categories:\n")
			catalog, err := svcCtx.Catalog.Load(ctx)
			if err != nil {
				b.WriteString("catalog unavailable\n")
				catalog = font.EmptyCatalog()
			}
			counts := catalog.Counts()
			for _, c := range font.Categories {
				fmt.Fprintf(&b, "- %s: %d families\n", c, counts[c])
			}
			return mcp.ResourceContent{
				URI:      "theme://categories",
				MimeType: "text/plain",
				Text:     b.String(),
			}, nil
		},
	}
}
