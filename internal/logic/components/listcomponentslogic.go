// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package components

import (
	"context"

	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type ListComponentsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListComponentsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListComponentsLogic {
	return &ListComponentsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListComponentsLogic) ListComponents() (resp *types.ComponentsResponse, err error) {
	return &types.ComponentsResponse{Components: l.svcCtx.Exporter.Components()}, nil
}
