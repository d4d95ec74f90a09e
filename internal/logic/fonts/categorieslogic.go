// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package fonts

import (
	"context"

	"github.com/joeblew999/plat-theme/internal/errorx"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type CategoriesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCategoriesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CategoriesLogic {
	return &CategoriesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CategoriesLogic) Categories() (resp *types.CategoriesResponse, err error) {
	catalog, err := l.svcCtx.Catalog.Load(l.ctx)
	if err != nil {
		return nil, errorx.From(err)
	}

	counts := make(map[string]int)
	for cat, n := range catalog.Counts() {
		counts[string(cat)] = n
	}
	return &types.CategoriesResponse{Categories: counts}, nil
}
