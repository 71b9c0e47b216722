package middleware

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	appauth "github.com/yigit/eduverse/internal/app/auth"
	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/app/models/dto"
	"github.com/yigit/eduverse/internal/pkg/apperrors"
	"github.com/yigit/eduverse/internal/pkg/auth"
)

const (
	ctxUserID   = "userID"
	ctxEmail    = "email"
	ctxRoleType = "roleType"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	required   bool
}

// NewAuthMiddleware creates a new AuthMiddleware. When required is false,
// requests without a token pass through anonymously.
func NewAuthMiddleware(jwtService *auth.JWTService, required bool) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		required:   required,
	}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if !m.required {
				c.Next()
				return
			}
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorAPIResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err == nil {
			var claims *auth.Claims
			if claims, err = m.jwtService.ValidateAndExtractClaims(tokenString); err == nil {
				c.Set(ctxUserID, claims.UserID)
				c.Set(ctxEmail, claims.Email)
				c.Set(ctxRoleType, claims.Role)
				c.Next()
				return
			}
		}

		errorCode := dto.ErrorCodeInvalidToken
		errorDetails := "Invalid token"
		switch {
		case errors.Is(err, apperrors.ErrTokenExpired):
			errorCode = dto.ErrorCodeExpiredToken
			errorDetails = "Token has expired"
		case errors.Is(err, apperrors.ErrInvalidFormat):
			errorDetails = "Invalid token format"
		}

		errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
		errorDetail = errorDetail.WithDetails(errorDetails)
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorAPIResponse(errorDetail))
	}
}

// RoleRequired middleware to check if user has one of the allowed roles.
// Anonymous requests are let through only when authentication is optional.
func (m *AuthMiddleware) RoleRequired(allowed ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRoleType)
		if !exists {
			if !m.required {
				c.Next()
				return
			}
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("User role not found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorAPIResponse(errorDetail))
			return
		}

		roleType, ok := role.(models.RoleType)
		if !ok || !slices.Contains(allowed, roleType) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorAPIResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// CurrentPrincipal returns the authenticated caller, or nil for anonymous requests
func CurrentPrincipal(c *gin.Context) *appauth.Principal {
	userID, ok := c.Get(ctxUserID)
	if !ok {
		return nil
	}
	id, _ := userID.(int64)
	role, _ := c.Get(ctxRoleType)
	roleType, _ := role.(models.RoleType)
	return &appauth.Principal{UserID: id, Role: roleType}
}
