// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package fonts

import (
	"net/http"

	"github.com/joeblew999/plat-theme/internal/logic/fonts"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/joeblew999/plat-theme/internal/types"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func FontWeightsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.FontWeightsRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := fonts.NewFontWeightsLogic(r.Context(), svcCtx)
		resp, err := l.FontWeights(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
