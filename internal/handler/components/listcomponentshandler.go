// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package components

import (
	"net/http"

	"github.com/joeblew999/plat-theme/internal/logic/components"
	"github.com/joeblew999/plat-theme/internal/svc"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func ListComponentsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := components.NewListComponentsLogic(r.Context(), svcCtx)
		resp, err := l.ListComponents()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
