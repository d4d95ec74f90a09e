// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package palette

import (
	"context"

	"github.com/joeblew999/plat-theme/internal/errorx"
	"github.com/joeblew999/plat-theme/internal/logic/settings"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type SetCustomColorsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSetCustomColorsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SetCustomColorsLogic {
	return &SetCustomColorsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SetCustomColorsLogic) SetCustomColors(req *types.SetCustomColorsRequest) (resp *types.ThemeResponse, err error) {
	sess, err := l.svcCtx.Sessions.Get(l.ctx, req.Session)
	if err != nil {
		return nil, errorx.From(err)
	}
	ok, err := sess.Theme.Colors.SetCustom(l.ctx, req.Background, req.Text)
	if err != nil {
		return nil, errorx.From(err)
	}
	if !ok {
		return nil, errorx.ErrBadRequest("custom colors need custom mode")
	}
	return settings.ThemeView(sess), nil
}
