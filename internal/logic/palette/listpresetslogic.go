// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package palette

import (
	"context"

	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type ListPresetsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListPresetsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListPresetsLogic {
	return &ListPresetsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListPresetsLogic) ListPresets(req *types.ListPresetsRequest) (resp *types.ListPresetsResponse, err error) {
	set := l.svcCtx.Presets.Presets()
	presets := set.Filter(req.Category)

	items := make([]types.PresetItem, 0, len(presets))
	for _, p := range presets {
		items = append(items, types.PresetItem{
			Name:       p.Name,
			Category:   p.Category,
			Background: p.Background,
			Text:       p.Text,
			Default:    p.Default,
		})
	}
	return &types.ListPresetsResponse{
		Presets:    items,
		Categories: set.Categories(),
	}, nil
}
