package dto

import "time"

// CourseEngagementResponse is one row of the course engagement report
type CourseEngagementResponse struct {
	CourseID           string   `json:"courseId" example:"CS101"`
	CourseName         string   `json:"courseName" example:"Introduction to Computer Science"`
	Enrolled           int      `json:"enrolled" example:"45"`
	TotalPosts         int      `json:"totalPosts" example:"4"`
	Announcements      int      `json:"announcements" example:"1"`
	Questions          int      `json:"questions" example:"2"`
	Discussions        int      `json:"discussions" example:"1"`
	AnsweredQuestions  int      `json:"answeredQuestions" example:"1"`
	AnswerRate         *float64 `json:"answerRate" example:"50"`
	TotalComments      int      `json:"totalComments" example:"10"`
	TotalReactions     int      `json:"totalReactions" example:"6"`
	UniqueContributors int      `json:"uniqueContributors" example:"5"`
	EngagementScore    int      `json:"engagementScore" example:"38"`
	AvgCommentsPerPost float64  `json:"avgCommentsPerPost" example:"2.5"`
}

// ContributorResponse is one row of the contributors leaderboard
type ContributorResponse struct {
	UserID                int64  `json:"userId" example:"2"`
	Name                  string `json:"name" example:"Alice Smith"`
	Email                 string `json:"email,omitempty" example:"alice@edu.test"`
	Role                  string `json:"role" example:"student"`
	PostsCount            int    `json:"postsCount" example:"2"`
	CommentsCount         int    `json:"commentsCount" example:"3"`
	ReactionsCount        int    `json:"reactionsCount" example:"1"`
	CommentsOnPostsCount  int    `json:"commentsOnPostsCount" example:"5"`
	ReactionsOnPostsCount int    `json:"reactionsOnPostsCount" example:"4"`
	QuestionsAsked        int    `json:"questionsAsked" example:"1"`
	AnnouncementsMade     int    `json:"announcementsMade" example:"0"`
	Score                 int    `json:"score" example:"27"`
}

// ReactionTypeResponse is one reaction type in the distribution report
type ReactionTypeResponse struct {
	ReactionType        string  `json:"reactionType" example:"like"`
	TotalCount          int     `json:"totalCount" example:"12"`
	UniqueUsersCount    int     `json:"uniqueUsersCount" example:"6"`
	UniquePostsCount    int     `json:"uniquePostsCount" example:"8"`
	CoursesReached      int     `json:"coursesReached" example:"3"`
	AvgReactionsPerUser float64 `json:"avgReactionsPerUser" example:"2"`
}

// ReactionDistributionResponse is the reaction distribution report
type ReactionDistributionResponse struct {
	GrandTotal          int                    `json:"grandTotal" example:"20"`
	ReactionBreakdown   []ReactionTypeResponse `json:"reactionBreakdown"`
	MostPopularReaction string                 `json:"mostPopularReaction" example:"like"`
}

// InstructorContact identifies a course instructor
type InstructorContact struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Dr. Sarah Johnson"`
	Email string `json:"email" example:"sarah@edu.test"`
}

// PostsByType splits a course's posts by kind
type PostsByType struct {
	Questions     int `json:"questions"`
	Announcements int `json:"announcements"`
	Discussions   int `json:"discussions"`
}

// InstructorCourseResponse is one row of the instructor course performance report
type InstructorCourseResponse struct {
	CourseID             string              `json:"courseId" example:"CS101"`
	CourseName           string              `json:"courseName" example:"Introduction to Computer Science"`
	Description          string              `json:"description"`
	CreditHours          int                 `json:"creditHours" example:"3"`
	Enrolled             int                 `json:"enrolled" example:"45"`
	Capacity             int                 `json:"capacity" example:"50"`
	Instructors          []InstructorContact `json:"instructors"`
	EnrollmentRate       float64             `json:"enrollmentRate" example:"90"`
	TotalPosts           int                 `json:"totalPosts" example:"4"`
	PostsByType          PostsByType         `json:"postsByType"`
	TotalComments        int                 `json:"totalComments" example:"10"`
	TotalReactions       int                 `json:"totalReactions" example:"6"`
	UniqueContributors   int                 `json:"uniqueContributors" example:"5"`
	AvgEngagementPerPost float64             `json:"avgEngagementPerPost" example:"4"`
}

// CourseSummary is a course listed in the workload report
type CourseSummary struct {
	CourseID    string `json:"courseId" example:"CS101"`
	CourseName  string `json:"courseName" example:"Introduction to Computer Science"`
	CreditHours int    `json:"creditHours" example:"3"`
}

// InstructorWorkloadResponse is one row of the instructor workload report
type InstructorWorkloadResponse struct {
	InstructorID     int64           `json:"instructorId" example:"1"`
	InstructorName   string          `json:"instructorName" example:"Dr. Sarah Johnson"`
	Email            string          `json:"email" example:"sarah@edu.test"`
	CoursesTeaching  []CourseSummary `json:"coursesTeaching"`
	TotalCourses     int             `json:"totalCourses" example:"2"`
	TotalCreditHours int             `json:"totalCreditHours" example:"7"`
	TotalStudents    int             `json:"totalStudents" example:"75"`
}

// PopularPostResponse is one row of the popular posts report
type PopularPostResponse struct {
	PostID          int64     `json:"postId" example:"10"`
	PostTitle       string    `json:"postTitle" example:"Welcome to CS101!"`
	PostType        string    `json:"postType" example:"announcement"`
	Author          string    `json:"author" example:"Dr. Sarah Johnson"`
	CourseID        string    `json:"courseId" example:"CS101"`
	CourseName      string    `json:"courseName" example:"Introduction to Computer Science"`
	TotalReactions  int       `json:"totalReactions" example:"5"`
	TotalComments   int       `json:"totalComments" example:"3"`
	EngagementScore int       `json:"engagementScore" example:"11"`
	CreatedAt       time.Time `json:"createdAt" example:"2024-01-15T10:00:00Z"`
}

// UserStatsResponse is the activity summary of one user
type UserStatsResponse struct {
	UserID            int64 `json:"userId" example:"2"`
	Posts             int   `json:"posts" example:"2"`
	Comments          int   `json:"comments" example:"3"`
	Reactions         int   `json:"reactions" example:"1"`
	CommentsReceived  int   `json:"commentsReceived" example:"5"`
	ReactionsReceived int   `json:"reactionsReceived" example:"4"`
	Score             int   `json:"score" example:"27"`
}

// ContributorsRequest carries the leaderboard query parameters
type ContributorsRequest struct {
	Limit    int    `form:"limit" json:"limit" validate:"omitempty,min=1"`
	Role     string `form:"role" json:"role" validate:"omitempty,oneof=student instructor ta admin"`
	CourseID string `form:"courseId" json:"courseId" validate:"omitempty,coursecode"`
	Weights  string `form:"weights" json:"weights" validate:"omitempty,oneof=received authored activity"`
}

// PopularPostsRequest carries the popular posts query parameters
type PopularPostsRequest struct {
	Limit    int    `form:"limit" json:"limit" validate:"omitempty,min=1"`
	CourseID string `form:"courseId" json:"courseId" validate:"omitempty,coursecode"`
}
