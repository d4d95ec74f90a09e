// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package settings

import (
	"context"
	"fmt"

	"github.com/joeblew999/plat-theme/internal/errorx"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"
	"github.com/joeblew999/plat-theme/pkg/typography"

	"github.com/zeromicro/go-zero/core/logx"
)

type SetTypographyLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSetTypographyLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SetTypographyLogic {
	return &SetTypographyLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SetTypographyLogic) SetTypography(req *types.SetTypographyRequest) (resp *types.ThemeResponse, err error) {
	role, err := typography.ParseRole(req.Role)
	if err != nil {
		return nil, errorx.From(err)
	}
	sess, err := l.svcCtx.Sessions.Get(l.ctx, req.Session)
	if err != nil {
		return nil, errorx.From(err)
	}

	fonts := sess.Theme.Fonts
	switch req.Field {
	case "weight":
		ok, err := fonts.SetWeight(l.ctx, role, int(req.Value))
		if err != nil {
			return nil, errorx.From(err)
		}
		if !ok {
			return nil, errorx.ErrBadRequest(fmt.Sprintf("weight index %d out of range", int(req.Value)))
		}
	case "scale":
		err = fonts.SetSizeScale(l.ctx, role, req.Value)
	case "lineHeight":
		err = fonts.SetLineHeight(l.ctx, role, req.Value)
	case "letterSpacing":
		err = fonts.SetLetterSpacing(l.ctx, role, req.Value)
	default:
		return nil, errorx.ErrBadRequest("unknown field: " + req.Field)
	}
	if err != nil {
		return nil, errorx.From(err)
	}
	return ThemeView(sess), nil
}
