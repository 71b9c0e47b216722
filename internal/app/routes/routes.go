package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/eduverse/internal/app/controllers"
	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/app/models/dto"
	"github.com/yigit/eduverse/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	reportController *controllers.ReportController,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		}))
	})

	// Everything below may carry a bearer token; whether it must is configured
	protected := v1.Group("")
	protected.Use(authMiddleware.JWTAuth())

	reports := protected.Group("/reports")
	{
		public := reports.Group("", rateLimiter.Middleware())
		public.GET("/courses/engagement", reportController.GetCourseEngagement)
		public.GET("/contributors", reportController.GetTopContributors)
		public.GET("/reactions", reportController.GetReactionDistribution)
		public.GET("/posts/popular", reportController.GetPopularPosts)

		instructors := reports.Group("/instructors",
			authMiddleware.RoleRequired(models.RoleInstructor, models.RoleAdmin),
			rateLimiter.Middleware(),
		)
		instructors.GET("/courses", reportController.GetInstructorCourses)
		instructors.GET("/workload", reportController.GetInstructorWorkload)
	}

	users := protected.Group("/users", rateLimiter.Middleware())
	{
		users.GET("/:id/stats", reportController.GetUserStats)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found")))
	})
}

// NewEngine builds the gin engine with the standard middleware chain
// (request id, access log, recovery) followed by the application routes
func NewEngine(
	log zerolog.Logger,
	reportController *controllers.ReportController,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.Recovery(log),
	)
	SetupRouter(router, reportController, authMiddleware, rateLimiter)
	return router
}
