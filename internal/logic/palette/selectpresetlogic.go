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

type SelectPresetLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSelectPresetLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SelectPresetLogic {
	return &SelectPresetLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SelectPresetLogic) SelectPreset(req *types.SelectPresetRequest) (resp *types.ThemeResponse, err error) {
	sess, err := l.svcCtx.Sessions.Get(l.ctx, req.Session)
	if err != nil {
		return nil, errorx.From(err)
	}
	if err := sess.Theme.Colors.SelectPreset(l.ctx, req.Name); err != nil {
		return nil, errorx.From(err)
	}
	return settings.ThemeView(sess), nil
}
