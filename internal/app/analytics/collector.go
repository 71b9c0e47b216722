package analytics

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/pkg/apperrors"
	"github.com/yigit/eduverse/internal/pkg/dberrors"
)

// Collector gathers the facts relevant to a scope from a FactSource
type Collector struct {
	source FactSource
	logger zerolog.Logger
}

// NewCollector creates a new Collector
func NewCollector(source FactSource, logger zerolog.Logger) *Collector {
	return &Collector{
		source: source,
		logger: logger,
	}
}

// Collect returns the FactSet for scope. An id that does not resolve yields an
// empty set, not an error. Any store failure aborts the whole collection.
func (c *Collector) Collect(ctx context.Context, scope Scope) (*FactSet, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var (
		facts *FactSet
		err   error
	)
	switch scope.Kind {
	case ScopeCourse:
		facts, err = c.collectCourse(ctx, scope)
	case ScopeUser:
		facts, err = c.collectUser(ctx, scope)
	default:
		facts, err = c.collectGlobal(ctx, scope)
	}
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("scope", scope.String()).
		Int("users", len(facts.Users)).
		Int("courses", len(facts.Courses)).
		Int("posts", len(facts.Posts)).
		Int("comments", len(facts.Comments)).
		Int("reactions", len(facts.Reactions)).
		Msg("Collected report facts")
	return facts, nil
}

func (c *Collector) collectGlobal(ctx context.Context, scope Scope) (*FactSet, error) {
	facts := &FactSet{Scope: scope}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		facts.Users, err = c.source.ListUsers(gctx, UserFilter{})
		return c.wrap(ctx, "users", err)
	})
	g.Go(func() (err error) {
		facts.Courses, err = c.source.ListCourses(gctx, CourseFilter{})
		return c.wrap(ctx, "courses", err)
	})
	g.Go(func() (err error) {
		facts.Posts, err = c.source.ListPosts(gctx, PostFilter{})
		return c.wrap(ctx, "posts", err)
	})
	g.Go(func() (err error) {
		facts.Comments, err = c.source.ListComments(gctx, CommentFilter{})
		return c.wrap(ctx, "comments", err)
	})
	g.Go(func() (err error) {
		facts.Reactions, err = c.source.ListReactions(gctx, ReactionFilter{})
		return c.wrap(ctx, "reactions", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return facts, nil
}

func (c *Collector) collectCourse(ctx context.Context, scope Scope) (*FactSet, error) {
	courses, err := c.source.ListCourses(ctx, CourseFilter{IDs: []string{scope.CourseID}})
	if err := c.wrap(ctx, "courses", err); err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return &FactSet{Scope: scope}, nil
	}

	posts, err := c.source.ListPosts(ctx, PostFilter{CourseID: scope.CourseID})
	if err := c.wrap(ctx, "posts", err); err != nil {
		return nil, err
	}

	facts := &FactSet{Scope: scope, Courses: courses, Posts: posts}
	if postIDs := postIDsOf(posts); len(postIDs) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			facts.Comments, err = c.source.ListComments(gctx, CommentFilter{PostIDs: postIDs})
			return c.wrap(ctx, "comments", err)
		})
		g.Go(func() (err error) {
			facts.Reactions, err = c.source.ListReactions(gctx, ReactionFilter{PostIDs: postIDs})
			return c.wrap(ctx, "reactions", err)
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	userIDs := referencedUserIDs(facts)
	for _, course := range courses {
		userIDs = append(userIDs, course.InstructorIDs...)
	}
	if facts.Users, err = c.listUsers(ctx, userIDs); err != nil {
		return nil, err
	}
	return facts, nil
}

func (c *Collector) collectUser(ctx context.Context, scope Scope) (*FactSet, error) {
	users, err := c.source.ListUsers(ctx, UserFilter{IDs: []int64{scope.UserID}})
	if err := c.wrap(ctx, "users", err); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return &FactSet{Scope: scope}, nil
	}

	// What the user authored
	var (
		authoredPosts     []models.Post
		authoredComments  []models.Comment
		authoredReactions []models.Reaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		authoredPosts, err = c.source.ListPosts(gctx, PostFilter{SenderID: scope.UserID})
		return c.wrap(ctx, "posts", err)
	})
	g.Go(func() (err error) {
		authoredComments, err = c.source.ListComments(gctx, CommentFilter{SenderID: scope.UserID})
		return c.wrap(ctx, "comments", err)
	})
	g.Go(func() (err error) {
		authoredReactions, err = c.source.ListReactions(gctx, ReactionFilter{SenderID: scope.UserID})
		return c.wrap(ctx, "reactions", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// What landed on the user's posts, and the posts the user commented on or reacted to
	authoredIDs := postIDsOf(authoredPosts)
	var (
		receivedComments  []models.Comment
		receivedReactions []models.Reaction
		referencedPosts   []models.Post
	)
	g, gctx = errgroup.WithContext(ctx)
	if len(authoredIDs) > 0 {
		g.Go(func() (err error) {
			receivedComments, err = c.source.ListComments(gctx, CommentFilter{PostIDs: authoredIDs})
			return c.wrap(ctx, "comments", err)
		})
		g.Go(func() (err error) {
			receivedReactions, err = c.source.ListReactions(gctx, ReactionFilter{PostIDs: authoredIDs})
			return c.wrap(ctx, "reactions", err)
		})
	}
	if otherIDs := foreignPostIDs(authoredIDs, authoredComments, authoredReactions); len(otherIDs) > 0 {
		g.Go(func() (err error) {
			referencedPosts, err = c.source.ListPosts(gctx, PostFilter{IDs: otherIDs})
			return c.wrap(ctx, "posts", err)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	facts := &FactSet{
		Scope:     scope,
		Posts:     mergeByID(authoredPosts, referencedPosts, func(p models.Post) int64 { return p.ID }),
		Comments:  mergeByID(authoredComments, receivedComments, func(c models.Comment) int64 { return c.ID }),
		Reactions: mergeByID(authoredReactions, receivedReactions, func(r models.Reaction) int64 { return r.ID }),
	}

	if facts.Users, err = c.listUsers(ctx, append(referencedUserIDs(facts), scope.UserID)); err != nil {
		return nil, err
	}

	courseIDs := make([]string, 0, len(facts.Posts))
	seen := make(map[string]struct{}, len(facts.Posts))
	for _, p := range facts.Posts {
		if _, ok := seen[p.CourseID]; ok || p.CourseID == "" {
			continue
		}
		seen[p.CourseID] = struct{}{}
		courseIDs = append(courseIDs, p.CourseID)
	}
	if len(courseIDs) > 0 {
		facts.Courses, err = c.source.ListCourses(ctx, CourseFilter{IDs: courseIDs})
		if err := c.wrap(ctx, "courses", err); err != nil {
			return nil, err
		}
	}
	return facts, nil
}

func (c *Collector) listUsers(ctx context.Context, ids []int64) ([]models.User, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	users, err := c.source.ListUsers(ctx, UserFilter{IDs: ids})
	if err := c.wrap(ctx, "users", err); err != nil {
		return nil, err
	}
	return users, nil
}

// wrap tags a store failure. A request abandoned by the caller is reported as
// context.Canceled; a timeout counts as the store being unavailable.
func (c *Collector) wrap(ctx context.Context, what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.Canceled) || dberrors.IsCanceled(err) {
		return fmt.Errorf("collecting %s: %w", what, context.Canceled)
	}

	event := c.logger.Error().Err(err).Str("facts", what)
	if dberrors.IsConnectionError(err) {
		event.Msg("Data store unreachable while collecting report facts")
	} else {
		event.Msg("Failed to collect report facts")
	}
	return apperrors.NewDataStoreUnavailableError(fmt.Sprintf("failed to load %s", what), err)
}

func postIDsOf(posts []models.Post) []int64 {
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

// foreignPostIDs lists posts referenced by the user's comments and reactions
// that are not among the user's own posts
func foreignPostIDs(own []int64, comments []models.Comment, reactions []models.Reaction) []int64 {
	skip := make(map[int64]struct{}, len(own))
	for _, id := range own {
		skip[id] = struct{}{}
	}
	ids := make([]int64, 0, len(comments)+len(reactions))
	for _, cm := range comments {
		if _, ok := skip[cm.PostID]; !ok {
			ids = append(ids, cm.PostID)
		}
	}
	for _, r := range reactions {
		if _, ok := skip[r.PostID]; !ok {
			ids = append(ids, r.PostID)
		}
	}
	return uniqueIDs(ids)
}

func referencedUserIDs(facts *FactSet) []int64 {
	ids := make([]int64, 0, len(facts.Posts)+len(facts.Comments)+len(facts.Reactions))
	for _, p := range facts.Posts {
		ids = append(ids, p.SenderID)
	}
	for _, cm := range facts.Comments {
		ids = append(ids, cm.SenderID)
	}
	for _, r := range facts.Reactions {
		ids = append(ids, r.SenderID)
	}
	return ids
}

func uniqueIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// mergeByID unions two id-ordered row sets, keeping one row per id
func mergeByID[T any](a, b []T, id func(T) int64) []T {
	out := make([]T, 0, len(a)+len(b))
	seen := make(map[int64]struct{}, len(a)+len(b))
	for _, rows := range [][]T{a, b} {
		for _, row := range rows {
			if _, ok := seen[id(row)]; ok {
				continue
			}
			seen[id(row)] = struct{}{}
			out = append(out, row)
		}
	}
	slices.SortStableFunc(out, func(x, y T) int { return cmp.Compare(id(x), id(y)) })
	return out
}
