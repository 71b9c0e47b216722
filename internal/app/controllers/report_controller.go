package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/yigit/eduverse/internal/app/auth"
	"github.com/yigit/eduverse/internal/app/models/dto"
	"github.com/yigit/eduverse/internal/app/services"
	"github.com/yigit/eduverse/internal/middleware"
	"github.com/yigit/eduverse/internal/pkg/helpers"
)

// ReportController serves the analytics reports
type ReportController struct {
	reportService services.ReportService
	policy        *appauth.ReportPolicy
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService, policy *appauth.ReportPolicy) *ReportController {
	return &ReportController{
		reportService: reportService,
		policy:        policy,
	}
}

// GetCourseEngagement returns every course ranked by engagement score
// @Summary Course engagement analytics
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseEngagementResponse}
// @Failure 503 {object} dto.APIResponse "Data store unavailable"
// @Router /reports/courses/engagement [get]
func (c *ReportController) GetCourseEngagement(ctx *gin.Context) {
	rows, err := c.reportService.GetCourseEngagementAnalytics(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}

// GetTopContributors returns the contributors leaderboard
// @Summary Top contributors leaderboard
// @Tags reports
// @Produce json
// @Param limit query int false "Number of entries" minimum(1)
// @Param role query string false "Restrict to one role" Enums(student, instructor, ta, admin)
// @Param courseId query string false "Restrict to one course"
// @Param weights query string false "Weight preset" Enums(received, authored, activity)
// @Success 200 {object} dto.APIResponse{data=[]dto.ContributorResponse}
// @Failure 400 {object} dto.APIResponse "Invalid scope"
// @Failure 503 {object} dto.APIResponse "Data store unavailable"
// @Router /reports/contributors [get]
func (c *ReportController) GetTopContributors(ctx *gin.Context) {
	var req dto.ContributorsRequest
	if !middleware.BindQuery(ctx, &req) {
		return
	}

	rows, err := c.reportService.GetTopContributorsLeaderboard(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}

// GetReactionDistribution returns reaction counts by type
// @Summary Reaction distribution analysis
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ReactionDistributionResponse}
// @Failure 503 {object} dto.APIResponse "Data store unavailable"
// @Router /reports/reactions [get]
func (c *ReportController) GetReactionDistribution(ctx *gin.Context) {
	res, err := c.reportService.GetReactionDistributionAnalysis(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// GetInstructorCourses returns the course performance report
// @Summary Instructor course performance
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param instructorId query int false "Instructor user id"
// @Success 200 {object} dto.APIResponse{data=[]dto.InstructorCourseResponse}
// @Failure 400 {object} dto.APIResponse "Invalid scope"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Router /reports/instructors/courses [get]
func (c *ReportController) GetInstructorCourses(ctx *gin.Context) {
	var instructorID int64
	if raw := ctx.Query("instructorId"); raw != "" {
		id, err := helpers.ParseID(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		instructorID = id
	}

	instructorID, err := c.policy.InstructorScope(middleware.CurrentPrincipal(ctx), instructorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rows, err := c.reportService.GetInstructorCoursePerformanceReport(ctx.Request.Context(), instructorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}

// GetInstructorWorkload returns instructors by teaching load
// @Summary Instructor workload
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.InstructorWorkloadResponse}
// @Router /reports/instructors/workload [get]
func (c *ReportController) GetInstructorWorkload(ctx *gin.Context) {
	rows, err := c.reportService.GetInstructorWorkloadReport(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}

// GetPopularPosts returns posts ranked by reactions and comments
// @Summary Popular posts
// @Tags reports
// @Produce json
// @Param limit query int false "Number of entries" minimum(1)
// @Param courseId query string false "Restrict to one course"
// @Success 200 {object} dto.APIResponse{data=[]dto.PopularPostResponse}
// @Router /reports/posts/popular [get]
func (c *ReportController) GetPopularPosts(ctx *gin.Context) {
	var req dto.PopularPostsRequest
	if !middleware.BindQuery(ctx, &req) {
		return
	}

	rows, err := c.reportService.GetPopularPostsReport(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}

// GetUserStats returns one user's activity summary
// @Summary User activity stats
// @Tags users
// @Produce json
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.UserStatsResponse}
// @Failure 400 {object} dto.APIResponse "Invalid user id"
// @Router /users/{id}/stats [get]
func (c *ReportController) GetUserStats(ctx *gin.Context) {
	userID, err := helpers.ParseID(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.policy.CanViewUserStats(middleware.CurrentPrincipal(ctx), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stats, err := c.reportService.GetUserActivityStats(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
