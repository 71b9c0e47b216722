package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/eduverse/internal/app/models/dto"
	"github.com/yigit/eduverse/internal/pkg/apperrors"
	"github.com/yigit/eduverse/internal/pkg/logger"
)

// statusClientClosedRequest is the de facto status for requests the client abandoned
const statusClientClosedRequest = 499

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorResponse(err)

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Str("requestID", c.GetString(ctxRequestID)).
		Str("path", c.FullPath()).
		Int("status", status).
		Msg("Request failed")

	if gin.Mode() == gin.DebugMode {
		detail = detail.WithDebugInfo("%v", err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorAPIResponse(detail))
}

func errorResponse(err error) (int, *dto.ErrorDetail) {
	var custom *apperrors.CustomError
	hasCustom := errors.As(err, &custom)
	message := func(fallback string) string {
		if hasCustom && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidScope):
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidScope, message("Invalid report scope"))
		if hasCustom && custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
		return http.StatusBadRequest, detail
	case errors.Is(err, apperrors.ErrDataStoreUnavailable):
		return http.StatusServiceUnavailable,
			dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Data store unavailable, please retry later").
				WithSeverity(dto.ErrorSeverityCritical)
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Request canceled").
				WithSeverity(dto.ErrorSeverityInfo)
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Report timed out")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message("Resource not found"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message("Validation failed"))
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
