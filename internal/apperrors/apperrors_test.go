package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("no token"), http.StatusUnauthorized},
		{"invalid credentials", InvalidCredentials(), http.StatusUnauthorized},
		{"not found", NotFound("bookmark"), http.StatusNotFound},
		{"conflict", Conflict("tag already exists"), http.StatusConflict},
		{"unavailable", Unavailable(context.DeadlineExceeded), http.StatusServiceUnavailable},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("while updating: %w", NotFound("category"))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestFromDB(t *testing.T) {
	assert.Equal(t, KindNotFound, FromDB(gorm.ErrRecordNotFound, "tag").Kind)
	assert.Equal(t, KindConflict, FromDB(gorm.ErrDuplicatedKey, "tag").Kind)
	assert.Equal(t, KindUnavailable, FromDB(context.DeadlineExceeded, "tag").Kind)
	assert.Equal(t, KindInternal, FromDB(errors.New("connection refused"), "tag").Kind)
}

func TestInvalidCredentials_Uniform(t *testing.T) {
	// Unknown account and wrong password must be indistinguishable.
	assert.Equal(t, InvalidCredentials().Error(), InvalidCredentials().Error())
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Wrap(KindUnavailable, "storage temporarily unavailable", inner)
	assert.True(t, errors.Is(err, inner))
}
