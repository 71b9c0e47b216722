package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/eduverse/internal/app/models/dto"
)

// BindQuery binds the query string into obj. On malformed input it writes a
// 400 response and returns false.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorAPIResponse(errorDetail))
		return false
	}
	return true
}
