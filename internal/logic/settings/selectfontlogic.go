// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package settings

import (
	"context"

	"github.com/joeblew999/plat-theme/internal/errorx"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"
	"github.com/joeblew999/plat-theme/pkg/typography"

	"github.com/zeromicro/go-zero/core/logx"
)

type SelectFontLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSelectFontLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SelectFontLogic {
	return &SelectFontLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SelectFontLogic) SelectFont(req *types.SelectFontRequest) (resp *types.ThemeResponse, err error) {
	role, err := typography.ParseRole(req.Role)
	if err != nil {
		return nil, errorx.From(err)
	}
	sess, err := l.svcCtx.Sessions.Get(l.ctx, req.Session)
	if err != nil {
		return nil, errorx.From(err)
	}
	// Weights come from the catalog, so make sure it is loaded.
	if _, err := l.svcCtx.Catalog.Load(l.ctx); err != nil {
		l.Infof("selecting %q without catalog weights: %v", req.Family, err)
	}
	if err := sess.Theme.Fonts.Select(l.ctx, role, req.Family); err != nil {
		return nil, errorx.From(err)
	}
	return ThemeView(sess), nil
}
