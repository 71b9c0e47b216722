package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/eduverse/internal/app/analytics"
	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/app/repositories/inmem"
)

func globalFacts(f inmem.Fixture) *analytics.FactSet {
	return &analytics.FactSet{
		Scope:     analytics.GlobalScope(),
		Users:     f.Users,
		Courses:   f.Courses,
		Posts:     f.Posts,
		Comments:  f.Comments,
		Reactions: f.Reactions,
	}
}

func TestDedupeReactions(t *testing.T) {
	t.Run("latest record wins at first position", func(t *testing.T) {
		in := []models.Reaction{
			{ID: 1, PostID: 10, SenderID: 2, Type: "like", CreatedAt: at(0)},
			{ID: 2, PostID: 10, SenderID: 3, Type: "love", CreatedAt: at(1)},
			{ID: 3, PostID: 10, SenderID: 2, Type: "shocked", CreatedAt: at(2)},
		}
		out := analytics.DedupeReactions(in)
		require.Len(t, out, 2)
		assert.Equal(t, int64(3), out[0].ID)
		assert.Equal(t, "shocked", out[0].Type)
		assert.Equal(t, int64(2), out[1].ID)
	})

	t.Run("older duplicate does not replace", func(t *testing.T) {
		in := []models.Reaction{
			{ID: 5, PostID: 1, SenderID: 1, Type: "love", CreatedAt: at(5)},
			{ID: 4, PostID: 1, SenderID: 1, Type: "like", CreatedAt: at(1)},
		}
		out := analytics.DedupeReactions(in)
		require.Len(t, out, 1)
		assert.Equal(t, "love", out[0].Type)
	})

	t.Run("same timestamp falls back to id", func(t *testing.T) {
		in := []models.Reaction{
			{ID: 8, PostID: 1, SenderID: 1, Type: "like", CreatedAt: at(0)},
			{ID: 9, PostID: 1, SenderID: 1, Type: "love", CreatedAt: at(0)},
		}
		out := analytics.DedupeReactions(in)
		require.Len(t, out, 1)
		assert.Equal(t, int64(9), out[0].ID)
	})

	t.Run("same user on different posts counts twice", func(t *testing.T) {
		in := []models.Reaction{
			{ID: 1, PostID: 1, SenderID: 1, Type: "like"},
			{ID: 2, PostID: 2, SenderID: 1, Type: "like"},
		}
		assert.Len(t, analytics.DedupeReactions(in), 2)
	})
}

func TestAggregateCourses(t *testing.T) {
	metrics := analytics.AggregateCourses(globalFacts(campusFixture()))
	require.Len(t, metrics, 3)

	cs := metrics[0]
	assert.Equal(t, "CS101", cs.Course.ID)
	assert.Equal(t, 4, cs.TotalPosts)
	assert.Equal(t, 1, cs.Announcements)
	assert.Equal(t, 2, cs.Questions)
	assert.Equal(t, 1, cs.AnsweredQuestions)
	assert.Equal(t, 1, cs.Discussions)
	assert.Equal(t, 6, cs.TotalComments)
	assert.Equal(t, 4, cs.TotalReactions, "replaced reaction is counted once")
	assert.Equal(t, 4, cs.UniqueContributors)

	math := metrics[1]
	assert.Equal(t, "MATH201", math.Course.ID)
	assert.Equal(t, 1, math.TotalPosts)
	assert.Equal(t, 1, math.TotalComments)
	assert.Equal(t, 1, math.TotalReactions)
	assert.Equal(t, 2, math.UniqueContributors)

	phys := metrics[2]
	assert.Equal(t, "PHYS301", phys.Course.ID)
	assert.Zero(t, phys.TotalPosts)
	assert.Zero(t, phys.TotalComments)
	assert.Zero(t, phys.TotalReactions)
	assert.Zero(t, phys.UniqueContributors)
}

func TestAggregateCoursesExcludesOrphans(t *testing.T) {
	f := campusFixture()
	metrics := analytics.AggregateCourses(globalFacts(f))

	comments, reactions := 0, 0
	for _, m := range metrics {
		comments += m.TotalComments
		reactions += m.TotalReactions
	}
	// 107 has no post and 108 sits on a post of an unknown course
	assert.Equal(t, len(f.Comments)-2, comments)
	// 200 is replaced by 203 and 205 has no post
	assert.Equal(t, len(f.Reactions)-2, reactions)
}

func TestAggregateUsers(t *testing.T) {
	metrics := analytics.AggregateUsers(globalFacts(campusFixture()))
	require.Len(t, metrics, 4)

	tests := []struct {
		name string
		got  *analytics.UserMetrics
		want analytics.UserMetrics
	}{
		{
			name: "instructor",
			got:  metrics[0],
			want: analytics.UserMetrics{PostsCount: 1, AnnouncementsMade: 1, CommentsGiven: 1, ReactionsGiven: 2, CommentsReceived: 2, ReactionsReceived: 2},
		},
		{
			name: "student with orphan reaction",
			got:  metrics[1],
			want: analytics.UserMetrics{PostsCount: 3, QuestionsAsked: 2, CommentsGiven: 3, ReactionsGiven: 1, CommentsReceived: 4, ReactionsReceived: 1},
		},
		{
			name: "student with orphan comment",
			got:  metrics[2],
			want: analytics.UserMetrics{PostsCount: 2, QuestionsAsked: 1, CommentsGiven: 3, ReactionsGiven: 1, CommentsReceived: 2, ReactionsReceived: 2},
		},
		{
			name: "assistant without posts",
			got:  metrics[3],
			want: analytics.UserMetrics{CommentsGiven: 1, ReactionsGiven: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.User = tt.got.User
			assert.Equal(t, tt.want, *tt.got)
		})
	}
}

func TestAggregatePosts(t *testing.T) {
	metrics := analytics.AggregatePosts(globalFacts(campusFixture()))
	require.Len(t, metrics, 5, "post on an unknown course is dropped")

	byID := make(map[int64]*analytics.PostMetrics)
	for _, m := range metrics {
		byID[m.Post.ID] = m
	}
	assert.Equal(t, 2, byID[10].Comments)
	assert.Equal(t, 2, byID[10].Reactions)
	assert.Equal(t, "Intro to CS", byID[10].CourseName)
	assert.Equal(t, 1, byID[20].Reactions)
	assert.Zero(t, byID[13].Reactions)
	assert.NotContains(t, byID, int64(30))
}

func TestAggregateReactions(t *testing.T) {
	breakdown, total := analytics.AggregateReactions(globalFacts(campusFixture()))
	assert.Equal(t, 5, total)
	require.Len(t, breakdown, 3)

	love, like, shocked := breakdown[0], breakdown[1], breakdown[2]
	assert.Equal(t, "love", love.Type)
	assert.Equal(t, 2, love.TotalCount)
	assert.Equal(t, 2, love.UniqueUsers)
	assert.Equal(t, 1, love.UniquePosts)
	assert.Equal(t, 1, love.CoursesReached)

	assert.Equal(t, "like", like.Type)
	assert.Equal(t, 2, like.TotalCount)
	assert.Equal(t, 2, like.UniqueUsers)
	assert.Equal(t, 2, like.UniquePosts)
	assert.Equal(t, 1, like.CoursesReached)

	assert.Equal(t, "shocked", shocked.Type)
	assert.Equal(t, 1, shocked.TotalCount)
	assert.Equal(t, 1, shocked.CoursesReached)

	sum := 0
	for _, m := range breakdown {
		sum += m.TotalCount
	}
	assert.Equal(t, total, sum)
}

func TestAggregateReactionsEmpty(t *testing.T) {
	breakdown, total := analytics.AggregateReactions(&analytics.FactSet{})
	assert.Empty(t, breakdown)
	assert.Zero(t, total)
}

func TestAggregateWorkload(t *testing.T) {
	workload := analytics.AggregateWorkload(globalFacts(campusFixture()))
	require.Len(t, workload, 1)

	w := workload[0]
	assert.Equal(t, int64(1), w.Instructor.ID)
	require.Len(t, w.Courses, 2)
	assert.Equal(t, "CS101", w.Courses[0].ID)
	assert.Equal(t, "MATH201", w.Courses[1].ID)
	assert.Equal(t, 7, w.TotalCreditHours)
	assert.Equal(t, 3, w.TotalStudents)
}

func TestAggregationIsIdempotent(t *testing.T) {
	facts := globalFacts(campusFixture())
	assert.Equal(t, analytics.AggregateCourses(facts), analytics.AggregateCourses(facts))
	assert.Equal(t, analytics.AggregateUsers(facts), analytics.AggregateUsers(facts))

	first, firstTotal := analytics.AggregateReactions(facts)
	second, secondTotal := analytics.AggregateReactions(facts)
	assert.Equal(t, first, second)
	assert.Equal(t, firstTotal, secondTotal)
}
