// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package fonts

import (
	"context"

	"github.com/joeblew999/plat-theme/internal/errorx"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"
	"github.com/joeblew999/plat-theme/pkg/font"

	"github.com/zeromicro/go-zero/core/logx"
)

type FontWeightsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewFontWeightsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *FontWeightsLogic {
	return &FontWeightsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *FontWeightsLogic) FontWeights(req *types.FontWeightsRequest) (resp *types.FontWeightsResponse, err error) {
	catalog, err := l.svcCtx.Catalog.Load(l.ctx)
	if err != nil {
		return nil, errorx.From(err)
	}

	weights := catalog.Weights(req.Family)
	if weights == nil {
		return nil, errorx.ErrNotFound("font not found: " + req.Family)
	}
	return &types.FontWeightsResponse{
		Family:     req.Family,
		Category:   string(catalog.CategoryOf(req.Family)),
		Weights:    weights,
		Stylesheet: font.StylesheetURL(req.Family, weights),
		Specimen:   font.SpecimenURL(req.Family),
	}, nil
}
