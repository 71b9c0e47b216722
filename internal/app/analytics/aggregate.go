package analytics

import (
	"github.com/yigit/eduverse/internal/app/models"
)

// CourseMetrics holds the per-course counts shared by the engagement and
// instructor performance reports
type CourseMetrics struct {
	Course             models.Course
	TotalPosts         int
	Announcements      int
	Questions          int
	Discussions        int
	AnsweredQuestions  int
	TotalComments      int
	TotalReactions     int
	UniqueContributors int

	contributors map[int64]struct{}
}

// UserMetrics holds authored and received interaction counts for one user.
// Given and received counts are tracked separately and never merged.
type UserMetrics struct {
	User              models.User
	PostsCount        int
	QuestionsAsked    int
	AnnouncementsMade int
	CommentsGiven     int
	ReactionsGiven    int
	CommentsReceived  int
	ReactionsReceived int
}

// PostMetrics holds the engagement counts of a single post
type PostMetrics struct {
	Post       models.Post
	CourseName string
	Comments   int
	Reactions  int
}

// ReactionTypeMetrics holds the distribution numbers for one reaction type
type ReactionTypeMetrics struct {
	Type           string
	TotalCount     int
	UniqueUsers    int
	UniquePosts    int
	CoursesReached int

	users   map[int64]struct{}
	posts   map[int64]struct{}
	courses map[string]struct{}
}

// InstructorWorkload holds the teaching load of one instructor
type InstructorWorkload struct {
	Instructor       models.User
	Courses          []models.Course
	TotalCreditHours int
	TotalStudents    int
}

// indexPosts maps post id to post. It is built once per report and is the only
// join structure; comments and reactions are attributed through it in one pass each.
func indexPosts(posts []models.Post) map[int64]*models.Post {
	index := make(map[int64]*models.Post, len(posts))
	for i := range posts {
		index[posts[i].ID] = &posts[i]
	}
	return index
}

// DedupeReactions keeps one reaction per (post, user) pair. The most recent
// record wins; the pair keeps the position of its first occurrence.
func DedupeReactions(reactions []models.Reaction) []models.Reaction {
	type pair struct{ post, user int64 }
	pos := make(map[pair]int, len(reactions))
	out := make([]models.Reaction, 0, len(reactions))
	for _, r := range reactions {
		key := pair{r.PostID, r.SenderID}
		i, ok := pos[key]
		if !ok {
			pos[key] = len(out)
			out = append(out, r)
			continue
		}
		prev := out[i]
		if r.CreatedAt.After(prev.CreatedAt) || (r.CreatedAt.Equal(prev.CreatedAt) && r.ID > prev.ID) {
			out[i] = r
		}
	}
	return out
}

// AggregateCourses returns one CourseMetrics per course in facts.Courses, in
// the same order. Posts whose course does not resolve and comments/reactions
// whose post does not resolve are dropped.
func AggregateCourses(facts *FactSet) []*CourseMetrics {
	byCourse := make(map[string]*CourseMetrics, len(facts.Courses))
	out := make([]*CourseMetrics, 0, len(facts.Courses))
	for _, course := range facts.Courses {
		m := &CourseMetrics{Course: course, contributors: make(map[int64]struct{})}
		byCourse[course.ID] = m
		out = append(out, m)
	}

	postCourse := make(map[int64]*CourseMetrics, len(facts.Posts))
	for _, p := range facts.Posts {
		m, ok := byCourse[p.CourseID]
		if !ok {
			continue
		}
		postCourse[p.ID] = m
		m.TotalPosts++
		switch p.Type {
		case models.PostTypeAnnouncement:
			m.Announcements++
		case models.PostTypeQuestion:
			m.Questions++
			if p.Answered {
				m.AnsweredQuestions++
			}
		case models.PostTypeDiscussion:
			m.Discussions++
		}
		m.contributors[p.SenderID] = struct{}{}
	}

	for _, c := range facts.Comments {
		m, ok := postCourse[c.PostID]
		if !ok {
			continue
		}
		m.TotalComments++
		m.contributors[c.SenderID] = struct{}{}
	}

	for _, r := range DedupeReactions(facts.Reactions) {
		if m, ok := postCourse[r.PostID]; ok {
			m.TotalReactions++
		}
	}

	for _, m := range out {
		m.UniqueContributors = len(m.contributors)
	}
	return out
}

// AggregateUsers returns one UserMetrics per user in facts.Users, in the same order
func AggregateUsers(facts *FactSet) []*UserMetrics {
	byUser := make(map[int64]*UserMetrics, len(facts.Users))
	out := make([]*UserMetrics, 0, len(facts.Users))
	for _, u := range facts.Users {
		m := &UserMetrics{User: u}
		byUser[u.ID] = m
		out = append(out, m)
	}

	posts := indexPosts(facts.Posts)
	for _, p := range facts.Posts {
		m, ok := byUser[p.SenderID]
		if !ok {
			continue
		}
		m.PostsCount++
		switch p.Type {
		case models.PostTypeQuestion:
			m.QuestionsAsked++
		case models.PostTypeAnnouncement:
			m.AnnouncementsMade++
		}
	}

	for _, c := range facts.Comments {
		post, ok := posts[c.PostID]
		if !ok {
			continue
		}
		if giver, ok := byUser[c.SenderID]; ok {
			giver.CommentsGiven++
		}
		if author, ok := byUser[post.SenderID]; ok {
			author.CommentsReceived++
		}
	}

	for _, r := range DedupeReactions(facts.Reactions) {
		post, ok := posts[r.PostID]
		if !ok {
			continue
		}
		if giver, ok := byUser[r.SenderID]; ok {
			giver.ReactionsGiven++
		}
		if author, ok := byUser[post.SenderID]; ok {
			author.ReactionsReceived++
		}
	}

	return out
}

// AggregatePosts returns one PostMetrics per post whose course resolves, in
// the order of facts.Posts
func AggregatePosts(facts *FactSet) []*PostMetrics {
	courseNames := make(map[string]string, len(facts.Courses))
	for _, c := range facts.Courses {
		courseNames[c.ID] = c.Name
	}

	byPost := make(map[int64]*PostMetrics, len(facts.Posts))
	out := make([]*PostMetrics, 0, len(facts.Posts))
	for _, p := range facts.Posts {
		name, ok := courseNames[p.CourseID]
		if !ok {
			continue
		}
		m := &PostMetrics{Post: p, CourseName: name}
		byPost[p.ID] = m
		out = append(out, m)
	}

	for _, c := range facts.Comments {
		if m, ok := byPost[c.PostID]; ok {
			m.Comments++
		}
	}
	for _, r := range DedupeReactions(facts.Reactions) {
		if m, ok := byPost[r.PostID]; ok {
			m.Reactions++
		}
	}
	return out
}

// AggregateReactions groups resolvable reactions by type, in order of first
// appearance, and returns the grand total across all types
func AggregateReactions(facts *FactSet) ([]*ReactionTypeMetrics, int) {
	posts := indexPosts(facts.Posts)
	knownCourses := make(map[string]struct{}, len(facts.Courses))
	for _, c := range facts.Courses {
		knownCourses[c.ID] = struct{}{}
	}

	byType := make(map[string]*ReactionTypeMetrics)
	var out []*ReactionTypeMetrics
	total := 0
	for _, r := range DedupeReactions(facts.Reactions) {
		post, ok := posts[r.PostID]
		if !ok {
			continue
		}
		m, ok := byType[r.Type]
		if !ok {
			m = &ReactionTypeMetrics{
				Type:    r.Type,
				users:   make(map[int64]struct{}),
				posts:   make(map[int64]struct{}),
				courses: make(map[string]struct{}),
			}
			byType[r.Type] = m
			out = append(out, m)
		}
		m.TotalCount++
		total++
		m.users[r.SenderID] = struct{}{}
		m.posts[r.PostID] = struct{}{}
		if _, ok := knownCourses[post.CourseID]; ok {
			m.courses[post.CourseID] = struct{}{}
		}
	}

	for _, m := range out {
		m.UniqueUsers = len(m.users)
		m.UniquePosts = len(m.posts)
		m.CoursesReached = len(m.courses)
	}
	return out, total
}

// AggregateWorkload returns one InstructorWorkload per instructor in facts.Users.
// Students are counted once per course they are enrolled in.
func AggregateWorkload(facts *FactSet) []*InstructorWorkload {
	studentsPerCourse := make(map[string]int, len(facts.Courses))
	for _, u := range facts.Users {
		if u.Role != models.RoleStudent {
			continue
		}
		for _, code := range u.Courses {
			studentsPerCourse[code]++
		}
	}

	byInstructor := make(map[int64]*InstructorWorkload)
	var out []*InstructorWorkload
	for _, u := range facts.Users {
		if u.Role != models.RoleInstructor {
			continue
		}
		w := &InstructorWorkload{Instructor: u}
		byInstructor[u.ID] = w
		out = append(out, w)
	}

	for _, course := range facts.Courses {
		for _, id := range course.InstructorIDs {
			w, ok := byInstructor[id]
			if !ok {
				continue
			}
			w.Courses = append(w.Courses, course)
			w.TotalCreditHours += course.CreditHours
			w.TotalStudents += studentsPerCourse[course.ID]
		}
	}
	return out
}
