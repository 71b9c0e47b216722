package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yigit/eduverse/internal/app/models/dto"
	"github.com/yigit/eduverse/internal/pkg/apperrors"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"invalid scope", apperrors.NewInvalidScopeError("invalid course code"), http.StatusBadRequest, dto.ErrorCodeInvalidScope},
		{"store down", apperrors.NewDataStoreUnavailableError("failed to load posts", errors.New("eof")), http.StatusServiceUnavailable, dto.ErrorCodeDatabaseError},
		{"wrapped store down", fmt.Errorf("digest: %w", apperrors.NewDataStoreUnavailableError("x", nil)), http.StatusServiceUnavailable, dto.ErrorCodeDatabaseError},
		{"canceled", fmt.Errorf("collecting posts: %w", context.Canceled), statusClientClosedRequest, dto.ErrorCodeInternalServer},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, dto.ErrorCodeDatabaseError},
		{"permission", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := errorResponse(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, detail.Code)
		})
	}
}

func TestErrorResponse_InvalidScopeKeepsMessage(t *testing.T) {
	_, detail := errorResponse(apperrors.NewInvalidScopeError(`invalid course code "cs-101"`))
	assert.Equal(t, `invalid course code "cs-101"`, detail.Message)
}
