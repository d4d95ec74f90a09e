// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package settings

import (
	"context"

	"github.com/joeblew999/plat-theme/internal/errorx"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type GetThemeLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetThemeLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetThemeLogic {
	return &GetThemeLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetThemeLogic) GetTheme(req *types.SessionRequest) (resp *types.ThemeResponse, err error) {
	sess, err := l.svcCtx.Sessions.Get(l.ctx, req.Session)
	if err != nil {
		return nil, errorx.From(err)
	}
	return ThemeView(sess), nil
}
