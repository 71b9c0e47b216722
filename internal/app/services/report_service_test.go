package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/eduverse/internal/app/analytics"
	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/app/models/dto"
	"github.com/yigit/eduverse/internal/app/repositories/inmem"
	"github.com/yigit/eduverse/internal/pkg/apperrors"
)

func setup(t *testing.T, opts ...ReportOptions) ReportService {
	t.Helper()
	db, err := inmem.LoadFile("testdata/campus.yaml")
	require.NoError(t, err)

	o := ReportOptions{DefaultLimit: 10, MaxLimit: 100}
	if len(opts) > 0 {
		o = opts[0]
	}
	return NewReportService(db, o, zerolog.Nop())
}

type brokenStore struct {
	analytics.FactSource
}

func (brokenStore) ListPosts(context.Context, analytics.PostFilter) ([]models.Post, error) {
	return nil, errors.New("server closed the connection unexpectedly")
}

func contributorIDs(rows []dto.ContributorResponse) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	return ids
}

func TestGetCourseEngagementAnalytics(t *testing.T) {
	svc := setup(t)
	rows, err := svc.GetCourseEngagementAnalytics(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	cs := rows[0]
	assert.Equal(t, "CS101", cs.CourseID)
	assert.Equal(t, 28, cs.EngagementScore)
	assert.Equal(t, 1.5, cs.AvgCommentsPerPost)
	require.NotNil(t, cs.AnswerRate)
	assert.Equal(t, 50.0, *cs.AnswerRate)

	assert.Equal(t, "MATH201", rows[1].CourseID)
	assert.Equal(t, 6, rows[1].EngagementScore)

	phys := rows[2]
	assert.Equal(t, "PHYS301", phys.CourseID)
	assert.Zero(t, phys.EngagementScore)
	assert.Zero(t, phys.AvgCommentsPerPost)
	assert.Nil(t, phys.AnswerRate)
}

func TestGetTopContributorsLeaderboard(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.ContributorsRequest
		want []int64
	}{
		{name: "default weights", req: dto.ContributorsRequest{}, want: []int64{2, 3, 1, 4}},
		{name: "limit", req: dto.ContributorsRequest{Limit: 2}, want: []int64{2, 3}},
		{name: "role", req: dto.ContributorsRequest{Role: "student"}, want: []int64{2, 3}},
		{name: "authored weights", req: dto.ContributorsRequest{Weights: "authored"}, want: []int64{2, 3, 1, 4}},
		{name: "course", req: dto.ContributorsRequest{CourseID: "CS101"}, want: []int64{2, 1, 3, 4}},
		{name: "unknown course", req: dto.ContributorsRequest{CourseID: "ZZZ999"}, want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := svc.GetTopContributorsLeaderboard(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, contributorIDs(rows))
		})
	}

	rows, err := svc.GetTopContributorsLeaderboard(ctx, dto.ContributorsRequest{})
	require.NoError(t, err)
	bob := rows[0]
	assert.Equal(t, 25, bob.Score)
	assert.Equal(t, 3, bob.PostsCount)
	assert.Equal(t, 4, bob.CommentsOnPostsCount)
	assert.Equal(t, 2, bob.QuestionsAsked)
}

func TestGetTopContributorsLeaderboardCapsLimit(t *testing.T) {
	svc := setup(t, ReportOptions{DefaultLimit: 2, MaxLimit: 3})
	ctx := context.Background()

	rows, err := svc.GetTopContributorsLeaderboard(ctx, dto.ContributorsRequest{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.GetTopContributorsLeaderboard(ctx, dto.ContributorsRequest{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestGetTopContributorsLeaderboardInvalid(t *testing.T) {
	svc := setup(t)
	for name, req := range map[string]dto.ContributorsRequest{
		"negative limit": {Limit: -1},
		"unknown role":   {Role: "dean"},
		"bad course":     {CourseID: "cs101"},
		"unknown preset": {Weights: "karma"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.GetTopContributorsLeaderboard(context.Background(), req)
			assert.ErrorIs(t, err, apperrors.ErrInvalidScope)
		})
	}
}

func TestGetReactionDistributionAnalysis(t *testing.T) {
	svc := setup(t)
	res, err := svc.GetReactionDistributionAnalysis(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, res.GrandTotal)
	assert.Equal(t, "love", res.MostPopularReaction)
	require.Len(t, res.ReactionBreakdown, 3)
	assert.Equal(t, "love", res.ReactionBreakdown[0].ReactionType)
	assert.Equal(t, "like", res.ReactionBreakdown[1].ReactionType)
	assert.Equal(t, "shocked", res.ReactionBreakdown[2].ReactionType)
	assert.Equal(t, 1.0, res.ReactionBreakdown[0].AvgReactionsPerUser)
}

func TestGetReactionDistributionAnalysisEmpty(t *testing.T) {
	svc := NewReportService(inmem.Open(), ReportOptions{}, zerolog.Nop())
	res, err := svc.GetReactionDistributionAnalysis(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.GrandTotal)
	assert.Empty(t, res.ReactionBreakdown)
	assert.Empty(t, res.MostPopularReaction)
}

func TestGetInstructorCoursePerformanceReport(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	rows, err := svc.GetInstructorCoursePerformanceReport(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "CS101", rows[0].CourseID)
	assert.Equal(t, 90.0, rows[0].EnrollmentRate)
	assert.Equal(t, 2.5, rows[0].AvgEngagementPerPost)
	assert.Equal(t, dto.PostsByType{Questions: 2, Announcements: 1, Discussions: 1}, rows[0].PostsByType)
	require.Len(t, rows[0].Instructors, 1)
	assert.Equal(t, "Alice Instructor", rows[0].Instructors[0].Name)
	assert.Equal(t, "PHYS301", rows[2].CourseID)
	assert.Equal(t, 1200.0, rows[2].EnrollmentRate, "zero capacity divides by one")
	assert.Empty(t, rows[2].Instructors)

	rows, err = svc.GetInstructorCoursePerformanceReport(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.GetInstructorCoursePerformanceReport(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = svc.GetInstructorCoursePerformanceReport(ctx, -2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidScope)
}

func TestGetInstructorWorkloadReport(t *testing.T) {
	rows, err := setup(t).GetInstructorWorkloadReport(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice Instructor", rows[0].InstructorName)
	assert.Equal(t, 2, rows[0].TotalCourses)
	assert.Equal(t, 7, rows[0].TotalCreditHours)
	assert.Equal(t, 3, rows[0].TotalStudents)
}

func TestGetPopularPostsReport(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	rows, err := svc.GetPopularPostsReport(ctx, dto.PopularPostsRequest{})
	require.NoError(t, err)
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.PostID)
	}
	assert.Equal(t, []int64{10, 11, 12, 20, 13}, ids)
	assert.Equal(t, 6, rows[0].EngagementScore)
	assert.Equal(t, "Alice Instructor", rows[0].Author)
	assert.Equal(t, "Intro to CS", rows[0].CourseName)

	rows, err = svc.GetPopularPostsReport(ctx, dto.PopularPostsRequest{CourseID: "MATH201", Limit: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(20), rows[0].PostID)
}

func TestGetUserActivityStats(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	stats, err := svc.GetUserActivityStats(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, &dto.UserStatsResponse{
		UserID:            2,
		Posts:             3,
		Comments:          3,
		Reactions:         1,
		CommentsReceived:  4,
		ReactionsReceived: 1,
		Score:             25,
	}, stats)

	stats, err = svc.GetUserActivityStats(ctx, 404)
	require.NoError(t, err)
	assert.Equal(t, &dto.UserStatsResponse{UserID: 404}, stats)

	_, err = svc.GetUserActivityStats(ctx, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidScope)
}

func TestReportsFailWholeOnStoreError(t *testing.T) {
	db, err := inmem.LoadFile("testdata/campus.yaml")
	require.NoError(t, err)
	svc := NewReportService(brokenStore{FactSource: db}, ReportOptions{}, zerolog.Nop())
	ctx := context.Background()

	rows, err := svc.GetCourseEngagementAnalytics(ctx)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, apperrors.ErrDataStoreUnavailable)

	leaders, err := svc.GetTopContributorsLeaderboard(ctx, dto.ContributorsRequest{})
	assert.Nil(t, leaders)
	assert.ErrorIs(t, err, apperrors.ErrDataStoreUnavailable)

	dist, err := svc.GetReactionDistributionAnalysis(ctx)
	assert.Nil(t, dist)
	assert.ErrorIs(t, err, apperrors.ErrDataStoreUnavailable)

	_, err = svc.GetUserActivityStats(ctx, 2)
	assert.ErrorIs(t, err, apperrors.ErrDataStoreUnavailable)
}

func TestReportsAreIdempotent(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	first, err := svc.GetCourseEngagementAnalytics(ctx)
	require.NoError(t, err)
	second, err := svc.GetCourseEngagementAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
