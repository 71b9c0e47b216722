package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/eduverse/internal/app/analytics"
	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/app/models/dto"
	"github.com/yigit/eduverse/internal/pkg/helpers"
	"github.com/yigit/eduverse/internal/pkg/validation"
)

// ReportService defines the read-only analytics operations
type ReportService interface {
	GetCourseEngagementAnalytics(ctx context.Context) ([]dto.CourseEngagementResponse, error)
	GetTopContributorsLeaderboard(ctx context.Context, req dto.ContributorsRequest) ([]dto.ContributorResponse, error)
	GetReactionDistributionAnalysis(ctx context.Context) (*dto.ReactionDistributionResponse, error)
	GetInstructorCoursePerformanceReport(ctx context.Context, instructorID int64) ([]dto.InstructorCourseResponse, error)
	GetInstructorWorkloadReport(ctx context.Context) ([]dto.InstructorWorkloadResponse, error)
	GetPopularPostsReport(ctx context.Context, req dto.PopularPostsRequest) ([]dto.PopularPostResponse, error)
	GetUserActivityStats(ctx context.Context, userID int64) (*dto.UserStatsResponse, error)
}

// ReportOptions holds the report tuning knobs taken from configuration
type ReportOptions struct {
	DefaultLimit  int
	MaxLimit      int
	WeightsPreset string
	QueryTimeout  time.Duration
}

// reportServiceImpl implements the ReportService interface
type reportServiceImpl struct {
	collector *analytics.Collector
	opts      ReportOptions
	logger    zerolog.Logger
}

// NewReportService creates a new report service instance
func NewReportService(source analytics.FactSource, opts ReportOptions, logger zerolog.Logger) ReportService {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	if opts.WeightsPreset == "" {
		opts.WeightsPreset = analytics.DefaultWeightsPreset
	}
	return &reportServiceImpl{
		collector: analytics.NewCollector(source, logger),
		opts:      opts,
		logger:    logger,
	}
}

func (s *reportServiceImpl) collect(ctx context.Context, report string, scope analytics.Scope) (*analytics.FactSet, error) {
	if s.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.QueryTimeout)
		defer cancel()
	}

	start := time.Now()
	facts, err := s.collector.Collect(ctx, scope)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Str("report", report).
		Str("scope", scope.String()).
		Dur("collectTime", time.Since(start)).
		Msg("Report facts ready")
	return facts, nil
}

// GetCourseEngagementAnalytics ranks every course by engagement score
func (s *reportServiceImpl) GetCourseEngagementAnalytics(ctx context.Context) ([]dto.CourseEngagementResponse, error) {
	facts, err := s.collect(ctx, "course_engagement", analytics.GlobalScope())
	if err != nil {
		return nil, err
	}

	ranked := analytics.Rank(analytics.AggregateCourses(facts), courseEngagement, 0)
	result := make([]dto.CourseEngagementResponse, 0, len(ranked))
	for _, r := range ranked {
		m := r.Item
		row := dto.CourseEngagementResponse{
			CourseID:           m.Course.ID,
			CourseName:         m.Course.Name,
			Enrolled:           m.Course.Enrolled,
			TotalPosts:         m.TotalPosts,
			Announcements:      m.Announcements,
			Questions:          m.Questions,
			Discussions:        m.Discussions,
			AnsweredQuestions:  m.AnsweredQuestions,
			TotalComments:      m.TotalComments,
			TotalReactions:     m.TotalReactions,
			UniqueContributors: m.UniqueContributors,
			EngagementScore:    r.Score,
			AvgCommentsPerPost: analytics.Ratio(m.TotalComments, m.TotalPosts, 2),
		}
		if m.Questions > 0 {
			rate := analytics.Ratio(m.AnsweredQuestions*100, m.Questions, 0)
			row.AnswerRate = &rate
		}
		result = append(result, row)
	}
	return result, nil
}

func courseEngagement(m *analytics.CourseMetrics) int {
	return analytics.EngagementScore(m.TotalPosts, m.TotalComments, m.TotalReactions)
}

// GetTopContributorsLeaderboard ranks users by contribution score, optionally
// restricted to one course and one role
func (s *reportServiceImpl) GetTopContributorsLeaderboard(ctx context.Context, req dto.ContributorsRequest) ([]dto.ContributorResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	limit, err := helpers.ResolveLimit(req.Limit, s.opts.DefaultLimit, s.opts.MaxLimit)
	if err != nil {
		return nil, err
	}
	preset := req.Weights
	if preset == "" {
		preset = s.opts.WeightsPreset
	}
	weights, err := analytics.WeightsPreset(preset)
	if err != nil {
		return nil, err
	}

	scope := analytics.GlobalScope()
	if req.CourseID != "" {
		scope = analytics.CourseScope(req.CourseID)
	}
	facts, err := s.collect(ctx, "top_contributors", scope)
	if err != nil {
		return nil, err
	}

	metrics := analytics.AggregateUsers(facts)
	if req.Role != "" {
		filtered := metrics[:0]
		for _, m := range metrics {
			if m.User.Role == models.RoleType(req.Role) {
				filtered = append(filtered, m)
			}
		}
		metrics = filtered
	}

	ranked := analytics.Rank(metrics, weights.Score, limit)
	result := make([]dto.ContributorResponse, 0, len(ranked))
	for _, r := range ranked {
		m := r.Item
		result = append(result, dto.ContributorResponse{
			UserID:                m.User.ID,
			Name:                  m.User.Name,
			Email:                 m.User.Email,
			Role:                  string(m.User.Role),
			PostsCount:            m.PostsCount,
			CommentsCount:         m.CommentsGiven,
			ReactionsCount:        m.ReactionsGiven,
			CommentsOnPostsCount:  m.CommentsReceived,
			ReactionsOnPostsCount: m.ReactionsReceived,
			QuestionsAsked:        m.QuestionsAsked,
			AnnouncementsMade:     m.AnnouncementsMade,
			Score:                 r.Score,
		})
	}
	return result, nil
}

// GetReactionDistributionAnalysis breaks reactions down by type
func (s *reportServiceImpl) GetReactionDistributionAnalysis(ctx context.Context) (*dto.ReactionDistributionResponse, error) {
	facts, err := s.collect(ctx, "reaction_distribution", analytics.GlobalScope())
	if err != nil {
		return nil, err
	}

	breakdown, total := analytics.AggregateReactions(facts)
	analytics.SortDesc(breakdown, func(m *analytics.ReactionTypeMetrics) int { return m.TotalCount })

	result := &dto.ReactionDistributionResponse{
		GrandTotal:        total,
		ReactionBreakdown: make([]dto.ReactionTypeResponse, 0, len(breakdown)),
	}
	for _, m := range breakdown {
		result.ReactionBreakdown = append(result.ReactionBreakdown, dto.ReactionTypeResponse{
			ReactionType:        m.Type,
			TotalCount:          m.TotalCount,
			UniqueUsersCount:    m.UniqueUsers,
			UniquePostsCount:    m.UniquePosts,
			CoursesReached:      m.CoursesReached,
			AvgReactionsPerUser: analytics.Ratio(m.TotalCount, m.UniqueUsers, 2),
		})
	}
	if len(result.ReactionBreakdown) > 0 {
		result.MostPopularReaction = result.ReactionBreakdown[0].ReactionType
	}
	return result, nil
}

// GetInstructorCoursePerformanceReport reports enrollment and activity per
// course. A zero instructorID covers every course.
func (s *reportServiceImpl) GetInstructorCoursePerformanceReport(ctx context.Context, instructorID int64) ([]dto.InstructorCourseResponse, error) {
	if instructorID != 0 {
		if err := analytics.ValidateUserID(instructorID); err != nil {
			return nil, err
		}
	}

	facts, err := s.collect(ctx, "instructor_course_performance", analytics.GlobalScope())
	if err != nil {
		return nil, err
	}

	users := make(map[int64]models.User, len(facts.Users))
	for _, u := range facts.Users {
		users[u.ID] = u
	}

	var metrics []*analytics.CourseMetrics
	for _, m := range analytics.AggregateCourses(facts) {
		if instructorID == 0 || m.Course.HasInstructor(instructorID) {
			metrics = append(metrics, m)
		}
	}
	analytics.SortDesc(metrics, func(m *analytics.CourseMetrics) int { return m.Course.Enrolled })

	result := make([]dto.InstructorCourseResponse, 0, len(metrics))
	for _, m := range metrics {
		instructors := make([]dto.InstructorContact, 0, len(m.Course.InstructorIDs))
		for _, id := range m.Course.InstructorIDs {
			if u, ok := users[id]; ok {
				instructors = append(instructors, dto.InstructorContact{ID: u.ID, Name: u.Name, Email: u.Email})
			}
		}
		result = append(result, dto.InstructorCourseResponse{
			CourseID:       m.Course.ID,
			CourseName:     m.Course.Name,
			Description:    m.Course.Description,
			CreditHours:    m.Course.CreditHours,
			Enrolled:       m.Course.Enrolled,
			Capacity:       m.Course.Capacity,
			Instructors:    instructors,
			EnrollmentRate: analytics.Round(float64(m.Course.Enrolled)/float64(max(m.Course.Capacity, 1))*100, 1),
			TotalPosts:     m.TotalPosts,
			PostsByType: dto.PostsByType{
				Questions:     m.Questions,
				Announcements: m.Announcements,
				Discussions:   m.Discussions,
			},
			TotalComments:        m.TotalComments,
			TotalReactions:       m.TotalReactions,
			UniqueContributors:   m.UniqueContributors,
			AvgEngagementPerPost: analytics.Ratio(m.TotalComments+m.TotalReactions, m.TotalPosts, 2),
		})
	}
	return result, nil
}

// GetInstructorWorkloadReport lists instructors by total credit hours taught
func (s *reportServiceImpl) GetInstructorWorkloadReport(ctx context.Context) ([]dto.InstructorWorkloadResponse, error) {
	facts, err := s.collect(ctx, "instructor_workload", analytics.GlobalScope())
	if err != nil {
		return nil, err
	}

	workload := analytics.AggregateWorkload(facts)
	analytics.SortDesc(workload, func(w *analytics.InstructorWorkload) int { return w.TotalCreditHours })

	result := make([]dto.InstructorWorkloadResponse, 0, len(workload))
	for _, w := range workload {
		courses := make([]dto.CourseSummary, 0, len(w.Courses))
		for _, c := range w.Courses {
			courses = append(courses, dto.CourseSummary{CourseID: c.ID, CourseName: c.Name, CreditHours: c.CreditHours})
		}
		result = append(result, dto.InstructorWorkloadResponse{
			InstructorID:     w.Instructor.ID,
			InstructorName:   w.Instructor.Name,
			Email:            w.Instructor.Email,
			CoursesTeaching:  courses,
			TotalCourses:     len(courses),
			TotalCreditHours: w.TotalCreditHours,
			TotalStudents:    w.TotalStudents,
		})
	}
	return result, nil
}

// GetPopularPostsReport ranks posts by reactions and comments received
func (s *reportServiceImpl) GetPopularPostsReport(ctx context.Context, req dto.PopularPostsRequest) ([]dto.PopularPostResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	limit, err := helpers.ResolveLimit(req.Limit, s.opts.DefaultLimit, s.opts.MaxLimit)
	if err != nil {
		return nil, err
	}

	scope := analytics.GlobalScope()
	if req.CourseID != "" {
		scope = analytics.CourseScope(req.CourseID)
	}
	facts, err := s.collect(ctx, "popular_posts", scope)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(facts.Users))
	for _, u := range facts.Users {
		names[u.ID] = u.Name
	}

	ranked := analytics.Rank(analytics.AggregatePosts(facts), func(m *analytics.PostMetrics) int {
		return analytics.PostEngagementScore(m.Comments, m.Reactions)
	}, limit)

	result := make([]dto.PopularPostResponse, 0, len(ranked))
	for _, r := range ranked {
		p := r.Item.Post
		author := p.SenderName
		if author == "" {
			author = names[p.SenderID]
		}
		result = append(result, dto.PopularPostResponse{
			PostID:          p.ID,
			PostTitle:       p.Title,
			PostType:        string(p.Type),
			Author:          author,
			CourseID:        p.CourseID,
			CourseName:      r.Item.CourseName,
			TotalReactions:  r.Item.Reactions,
			TotalComments:   r.Item.Comments,
			EngagementScore: r.Score,
			CreatedAt:       p.CreatedAt,
		})
	}
	return result, nil
}

// GetUserActivityStats summarizes one user's authored and received activity.
// An unknown user yields all-zero stats.
func (s *reportServiceImpl) GetUserActivityStats(ctx context.Context, userID int64) (*dto.UserStatsResponse, error) {
	weights, err := analytics.WeightsPreset(s.opts.WeightsPreset)
	if err != nil {
		return nil, err
	}
	facts, err := s.collect(ctx, "user_stats", analytics.UserScope(userID))
	if err != nil {
		return nil, err
	}

	result := &dto.UserStatsResponse{UserID: userID}
	for _, m := range analytics.AggregateUsers(facts) {
		if m.User.ID != userID {
			continue
		}
		result.Posts = m.PostsCount
		result.Comments = m.CommentsGiven
		result.Reactions = m.ReactionsGiven
		result.CommentsReceived = m.CommentsReceived
		result.ReactionsReceived = m.ReactionsReceived
		result.Score = weights.Score(m)
	}
	return result, nil
}
