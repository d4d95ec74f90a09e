package errorx

import (
	"context"
	"errors"
	"net/http"

	"github.com/joeblew999/plat-theme/internal/session"
	"github.com/joeblew999/plat-theme/pkg/colors"
	"github.com/joeblew999/plat-theme/pkg/export"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/images"
	"github.com/joeblew999/plat-theme/pkg/queue"
	"github.com/joeblew999/plat-theme/pkg/theme"
	"github.com/joeblew999/plat-theme/pkg/typography"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// CodeError is a typed error that carries an HTTP status code.
// Logic functions return these so the global error handler can map
// them to the correct HTTP response.
type CodeError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *CodeError) Error() string {
	return e.Msg
}

// ErrNotFound returns a 404 error.
func ErrNotFound(msg string) error {
	return &CodeError{Code: http.StatusNotFound, Msg: msg}
}

// ErrBadRequest returns a 400 error.
func ErrBadRequest(msg string) error {
	return &CodeError{Code: http.StatusBadRequest, Msg: msg}
}

// ErrUnavailable returns a 503 error.
func ErrUnavailable(msg string) error {
	return &CodeError{Code: http.StatusServiceUnavailable, Msg: msg}
}

// ErrInternal returns a 500 error.
func ErrInternal(msg string) error {
	return &CodeError{Code: http.StatusInternalServerError, Msg: msg}
}

var (
	badRequest = []error{
		typography.ErrUnknownRole,
		typography.ErrInvalidScale,
		typography.ErrOutOfRange,
		colors.ErrInvalidColor,
		theme.ErrUnknownTarget,
		images.ErrNotImage,
		images.ErrUnknownSlot,
		images.ErrTooLarge,
		session.ErrInvalidID,
	}
	notFound = []error{
		colors.ErrUnknownPreset,
		export.ErrUnknownComponent,
		images.ErrNotFound,
		queue.ErrNotFound,
	}
)

// From maps a domain error to a CodeError. Unknown errors pass through.
func From(err error) error {
	if err == nil {
		return nil
	}
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return ErrBadRequest(err.Error())
		}
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			return ErrNotFound(err.Error())
		}
	}
	if errors.Is(err, font.ErrCatalogUnavailable) {
		return ErrUnavailable(err.Error())
	}
	return err
}

// RegisterErrorHandler installs a global error handler that maps CodeError
// and known domain errors to their HTTP status. Other errors become 500.
func RegisterErrorHandler() {
	httpx.SetErrorHandlerCtx(func(ctx context.Context, err error) (int, any) {
		var e *CodeError
		if errors.As(From(err), &e) {
			return e.Code, &CodeError{Code: e.Code, Msg: e.Msg}
		}
		logx.WithContext(ctx).Errorf("unexpected error: %v", err)
		return http.StatusInternalServerError, &CodeError{
			Code: http.StatusInternalServerError,
			Msg:  "internal server error",
		}
	})
}
