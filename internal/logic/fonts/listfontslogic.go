// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package fonts

import (
	"context"

	"github.com/joeblew999/plat-theme/internal/errorx"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/picker"

	"github.com/zeromicro/go-zero/core/logx"
)

type ListFontsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListFontsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListFontsLogic {
	return &ListFontsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ListFonts returns one category bucket, filtered by the search term, with
// the active family first.
func (l *ListFontsLogic) ListFonts(req *types.ListFontsRequest) (resp *types.ListFontsResponse, err error) {
	cat, ok := font.ParseCategory(req.Category)
	if !ok {
		return nil, errorx.ErrBadRequest("unknown category: " + req.Category)
	}
	catalog, err := l.svcCtx.Catalog.Load(l.ctx)
	if err != nil {
		return nil, errorx.From(err)
	}

	matches := picker.ReorderActive(picker.Filter(req.Query, catalog.Fonts(cat)), req.Active)
	total := len(matches)
	if len(matches) > req.Limit {
		matches = matches[:req.Limit]
	}

	items := make([]types.FontItem, 0, len(matches))
	for _, r := range matches {
		items = append(items, types.FontItem{
			Family:   r.Family,
			Category: string(r.Category),
			Weights:  catalog.Weights(r.Family),
			Active:   r.Family == req.Active,
		})
	}
	return &types.ListFontsResponse{
		Fonts: items,
		Count: len(items),
		Total: total,
	}, nil
}
