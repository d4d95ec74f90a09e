// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package jobs

import (
	"context"
	"time"

	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/mr"
)

type ListWarmJobsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListWarmJobsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListWarmJobsLogic {
	return &ListWarmJobsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListWarmJobsLogic) ListWarmJobs(req *types.ListWarmJobsRequest) (resp *types.ListWarmJobsResponse, err error) {
	resp = &types.ListWarmJobsResponse{}

	err = mr.Finish(
		func() error {
			jobs, err := l.svcCtx.Queue.List(l.ctx, req.Status, req.Limit)
			if err != nil {
				return err
			}
			resp.Jobs = make([]types.WarmJobItem, 0, len(jobs))
			for _, j := range jobs {
				resp.Jobs = append(resp.Jobs, types.WarmJobItem{
					ID:        j.ID,
					Family:    j.Family,
					Weights:   j.Weights,
					Status:    j.Status,
					Attempts:  j.Attempts,
					Error:     j.Error,
					CreatedAt: j.CreatedAt.Format(time.RFC3339),
				})
			}
			return nil
		},
		func() error {
			stats, err := l.svcCtx.Queue.Stats(l.ctx)
			resp.Stats = stats
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	if req.History {
		if err := l.attachHistory(resp.Jobs); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (l *ListWarmJobsLogic) attachHistory(jobs []types.WarmJobItem) error {
	events := l.svcCtx.Queue.Events
	if events == nil {
		return nil
	}
	events.Flush()
	for i := range jobs {
		history, err := events.History(l.ctx, jobs[i].ID)
		if err != nil {
			return err
		}
		for _, e := range history {
			jobs[i].History = append(jobs[i].History, types.WarmEventItem{
				Kind:    string(e.Kind),
				At:      e.At.Format(time.RFC3339),
				Details: e.Details,
			})
		}
	}
	return nil
}
