// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package jobs

import (
	"net/http"

	"github.com/joeblew999/plat-theme/internal/logic/jobs"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func ListWarmJobsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ListWarmJobsRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := jobs.NewListWarmJobsLogic(r.Context(), svcCtx)
		resp, err := l.ListWarmJobs(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
