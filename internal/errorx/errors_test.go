package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/joeblew999/plat-theme/pkg/colors"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/typography"
	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"role", fmt.Errorf("select: %w", typography.ErrUnknownRole), http.StatusBadRequest},
		{"preset", fmt.Errorf("%w: nope", colors.ErrUnknownPreset), http.StatusNotFound},
		{"catalog", fmt.Errorf("%w: timeout", font.ErrCatalogUnavailable), http.StatusServiceUnavailable},
		{"typed", ErrBadRequest("bad"), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ce *CodeError
			assert.True(t, errors.As(From(tt.err), &ce))
			assert.Equal(t, tt.code, ce.Code)
		})
	}

	plain := errors.New("boom")
	assert.Same(t, plain, From(plain))
	assert.NoError(t, From(nil))
}
