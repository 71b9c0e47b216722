package analytics_test

import (
	"time"

	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/app/repositories/inmem"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

// campusFixture has three courses (one without posts), a post on an unknown
// course, an orphan comment and reaction, and a replaced reaction.
func campusFixture() inmem.Fixture {
	return inmem.Fixture{
		Users: []models.User{
			{ID: 1, Name: "Alice Instructor", Email: "alice@edu.test", Role: models.RoleInstructor},
			{ID: 2, Name: "Bob Student", Email: "bob@edu.test", Role: models.RoleStudent, Courses: []string{"CS101", "MATH201"}},
			{ID: 3, Name: "Carol Student", Email: "carol@edu.test", Role: models.RoleStudent, Courses: []string{"CS101"}},
			{ID: 4, Name: "Dan Assistant", Email: "dan@edu.test", Role: models.RoleTA},
		},
		Courses: []models.Course{
			{ID: "CS101", Name: "Intro to CS", CreditHours: 3, Enrolled: 45, Capacity: 50, InstructorIDs: []int64{1}},
			{ID: "MATH201", Name: "Linear Algebra", CreditHours: 4, Enrolled: 30, Capacity: 40, InstructorIDs: []int64{1}},
			{ID: "PHYS301", Name: "Quantum Physics", CreditHours: 4, Enrolled: 12, Capacity: 0},
		},
		Posts: []models.Post{
			{ID: 10, SenderID: 1, CourseID: "CS101", Title: "Welcome", Type: models.PostTypeAnnouncement, CreatedAt: at(0)},
			{ID: 11, SenderID: 2, CourseID: "CS101", Title: "Pointers?", Type: models.PostTypeQuestion, Answered: true, CreatedAt: at(1)},
			{ID: 12, SenderID: 3, CourseID: "CS101", Title: "Study group", Type: models.PostTypeDiscussion, CreatedAt: at(2)},
			{ID: 13, SenderID: 2, CourseID: "CS101", Title: "Recursion?", Type: models.PostTypeQuestion, CreatedAt: at(3)},
			{ID: 20, SenderID: 3, CourseID: "MATH201", Title: "Eigenvalues?", Type: models.PostTypeQuestion, CreatedAt: at(4)},
			{ID: 30, SenderID: 2, CourseID: "BIO999", Title: "Lost post", Type: models.PostTypeDiscussion, CreatedAt: at(5)},
		},
		Comments: []models.Comment{
			{ID: 100, PostID: 10, SenderID: 2, CreatedAt: at(10)},
			{ID: 101, PostID: 10, SenderID: 3, CreatedAt: at(11)},
			{ID: 102, PostID: 11, SenderID: 1, CreatedAt: at(12)},
			{ID: 103, PostID: 11, SenderID: 3, CreatedAt: at(13)},
			{ID: 104, PostID: 12, SenderID: 2, CreatedAt: at(14)},
			{ID: 105, PostID: 13, SenderID: 4, CreatedAt: at(15)},
			{ID: 106, PostID: 20, SenderID: 2, CreatedAt: at(16)},
			{ID: 107, PostID: 999, SenderID: 3, CreatedAt: at(17)},
			{ID: 108, PostID: 30, SenderID: 3, CreatedAt: at(18)},
		},
		Reactions: []models.Reaction{
			{ID: 200, PostID: 10, SenderID: 2, Type: "like", CreatedAt: at(20)},
			{ID: 201, PostID: 10, SenderID: 3, Type: "love", CreatedAt: at(21)},
			{ID: 202, PostID: 11, SenderID: 1, Type: "like", CreatedAt: at(22)},
			{ID: 203, PostID: 10, SenderID: 2, Type: "love", CreatedAt: at(23)},
			{ID: 204, PostID: 12, SenderID: 4, Type: "like", CreatedAt: at(24)},
			{ID: 205, PostID: 999, SenderID: 2, Type: "like", CreatedAt: at(25)},
			{ID: 206, PostID: 20, SenderID: 1, Type: "shocked", CreatedAt: at(26)},
		},
	}
}
