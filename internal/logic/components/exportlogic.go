// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package components

import (
	"context"

	"github.com/joeblew999/plat-theme/internal/errorx"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"
	"github.com/joeblew999/plat-theme/pkg/export"

	"github.com/zeromicro/go-zero/core/logx"
)

type ExportLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewExportLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ExportLogic {
	return &ExportLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ExportLogic) Export(req *types.ExportRequest) (resp *types.ExportResponse, err error) {
	sess, err := l.svcCtx.Sessions.Get(l.ctx, req.Session)
	if err != nil {
		return nil, errorx.From(err)
	}
	in, err := sess.ExportInput(l.ctx, l.svcCtx.Images)
	if err != nil {
		return nil, errorx.From(err)
	}
	html, err := l.svcCtx.Exporter.Export(l.ctx, req.Component, in)
	if err != nil {
		return nil, errorx.From(err)
	}
	warnings := export.CheckCompatibility(html)
	if len(warnings) > 0 {
		l.Infow("Exported component has compatibility warnings",
			logx.Field("component", req.Component),
			logx.Field("warnings", len(warnings)),
		)
	}
	return &types.ExportResponse{
		Component: req.Component,
		Html:      html,
		Size:      len(html),
		Warnings:  warnings,
	}, nil
}
