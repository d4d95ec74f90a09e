// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package palette

import (
	"context"

	"github.com/joeblew999/plat-theme/internal/errorx"
	"github.com/joeblew999/plat-theme/internal/logic/settings"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"
	"github.com/joeblew999/plat-theme/pkg/colors"

	"github.com/zeromicro/go-zero/core/logx"
)

type SetColorModeLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSetColorModeLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SetColorModeLogic {
	return &SetColorModeLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SetColorModeLogic) SetColorMode(req *types.SetColorModeRequest) (resp *types.ThemeResponse, err error) {
	sess, err := l.svcCtx.Sessions.Get(l.ctx, req.Session)
	if err != nil {
		return nil, errorx.From(err)
	}
	if err := sess.Theme.Colors.SetMode(l.ctx, colors.ParseMode(req.Mode)); err != nil {
		return nil, errorx.From(err)
	}
	return settings.ThemeView(sess), nil
}
