package seed

import (
	"time"

	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/app/repositories/inmem"
)

func day(year int, month time.Month, d, hour, minute int) time.Time {
	return time.Date(year, month, d, hour, minute, 0, 0, time.UTC)
}

// Demo returns the demo campus: eight accounts, twelve courses and a handful
// of posts, comments and reactions
func Demo() inmem.Fixture {
	const (
		sarah   = 1
		michael = 2
		emma    = 3
		james   = 4
		sophia  = 5
		admin   = 6
		david   = 7
		alex    = 8
	)

	users := []models.User{
		{ID: sarah, Name: "Dr. Sarah Johnson", Email: "sarah.johnson@educonnect.edu", Level: "PhD in Computer Science",
			Role: models.RoleInstructor, Courses: []string{"CS101", "CS301"}, CreatedAt: day(2024, 1, 15, 0, 0)},
		{ID: michael, Name: "Prof. Michael Chen", Email: "michael.chen@educonnect.edu", Level: "Professor of Mathematics",
			Role: models.RoleInstructor, Courses: []string{"MATH201"}, CreatedAt: day(2024, 1, 20, 0, 0)},
		{ID: emma, Name: "Emma Williams", Email: "emma.williams@student.edu", Level: "Sophomore",
			Role: models.RoleStudent, Courses: []string{"CS101", "MATH201"}, CreatedAt: day(2024, 2, 1, 0, 0)},
		{ID: james, Name: "James Rodriguez", Email: "james.rodriguez@student.edu", Level: "Junior",
			Role: models.RoleStudent, Courses: []string{"CS101", "CS301"}, CreatedAt: day(2024, 2, 5, 0, 0)},
		{ID: sophia, Name: "Sophia Lee", Email: "sophia.lee@student.edu", Level: "Freshman",
			Role: models.RoleStudent, Courses: []string{"CS101"}, CreatedAt: day(2024, 2, 10, 0, 0)},
		{ID: admin, Name: "Admin User", Email: "admin@educonnect.edu", Level: "System Administrator",
			Role: models.RoleAdmin, Courses: []string{}, CreatedAt: day(2024, 1, 1, 0, 0)},
		{ID: david, Name: "Prof. David Martinez", Email: "david.martinez@educonnect.edu", Level: "Professor of Computer Science",
			Role: models.RoleInstructor, Courses: []string{"CS201", "CS401"}, CreatedAt: day(2024, 1, 10, 0, 0)},
		{ID: alex, Name: "Alex Thompson", Email: "alex.thompson@educonnect.edu", Level: "Graduate Teaching Assistant",
			Role: models.RoleTA, Courses: []string{"CS101", "CS201"}, CreatedAt: day(2024, 2, 15, 0, 0)},
	}

	course := func(id, name string, credits, enrolled, capacity int, instructor int64, description string) models.Course {
		return models.Course{
			ID: id, Name: name, Description: description, CreditHours: credits,
			Enrolled: enrolled, Capacity: capacity, InstructorIDs: []int64{instructor},
		}
	}
	courses := []models.Course{
		course("CS101", "Introduction to Programming", 3, 45, 60, sarah,
			"Learn the fundamentals of programming using Python. Perfect for beginners."),
		course("CS301", "Data Structures and Algorithms", 4, 32, 40, sarah,
			"Advanced course covering essential data structures and algorithmic techniques."),
		course("MATH201", "Calculus II", 4, 38, 50, michael,
			"Continuation of Calculus I, covering integration techniques and series."),
		course("CS201", "Web Development", 3, 28, 35, sarah,
			"Build modern web applications using HTML, CSS, JavaScript, and popular frameworks."),
		course("CS401", "Machine Learning", 4, 25, 30, sarah,
			"Introduction to machine learning algorithms, neural networks, and AI applications."),
		course("MATH101", "Calculus I", 4, 52, 60, michael,
			"Introduction to differential calculus, limits, derivatives, and applications."),
		course("MATH301", "Linear Algebra", 3, 30, 40, michael,
			"Vector spaces, matrices, eigenvalues, and linear transformations."),
		course("PHYS101", "Physics I", 4, 40, 50, michael,
			"Classical mechanics, Newton's laws, energy, and momentum."),
		course("ENG201", "Technical Writing", 3, 22, 30, sarah,
			"Professional communication, documentation, and technical report writing."),
		course("CS202", "Database Systems", 3, 35, 40, sarah,
			"Relational databases, SQL, NoSQL, database design, and optimization."),
		course("CS302", "Operating Systems", 4, 28, 35, sarah,
			"Process management, memory management, file systems, and concurrency."),
		course("CS402", "Computer Networks", 3, 24, 30, sarah,
			"Network protocols, TCP/IP, routing, security, and network programming."),
	}

	posts := []models.Post{
		{ID: 1, SenderID: sarah, SenderName: "Dr. Sarah Johnson", CourseID: "CS101",
			Title: "Welcome to Introduction to Programming!",
			Body:  "Hello everyone! Welcome to CS101. Please introduce yourselves and share what you hope to learn.",
			Type:  models.PostTypeAnnouncement, CreatedAt: day(2024, 9, 1, 0, 0)},
		{ID: 2, SenderID: emma, SenderName: "Emma Williams", CourseID: "CS101",
			Title: "Question about loops",
			Body:  "Can someone explain the difference between while and for loops?",
			Type:  models.PostTypeQuestion, Answered: true, CreatedAt: day(2024, 9, 15, 0, 0)},
		{ID: 3, SenderID: james, SenderName: "James Rodriguez", CourseID: "CS301",
			Title: "Binary Search Tree Implementation",
			Body:  "I'm working on the BST assignment. Anyone want to discuss approaches?",
			Type:  models.PostTypeDiscussion, CreatedAt: day(2024, 10, 1, 0, 0)},
		{ID: 4, SenderID: michael, SenderName: "Prof. Michael Chen", CourseID: "MATH201",
			Title: "Midterm Exam Schedule",
			Body:  "The midterm exam will be held on November 15th. Please review chapters 5-8.",
			Type:  models.PostTypeAnnouncement, CreatedAt: day(2024, 10, 20, 0, 0)},
	}

	comments := []models.Comment{
		{ID: 1, PostID: 2, SenderID: james, SenderName: "James Rodriguez",
			Body:      "For loops are better when you know how many iterations you need. While loops are for when the condition is more dynamic.",
			CreatedAt: day(2024, 9, 15, 10, 30)},
		{ID: 2, PostID: 2, SenderID: sarah, SenderName: "Dr. Sarah Johnson",
			Body:      "Great question! James is correct. I'll post a detailed explanation in the course materials.",
			CreatedAt: day(2024, 9, 15, 14, 0)},
		{ID: 3, PostID: 3, SenderID: sophia, SenderName: "Sophia Lee",
			Body:      "I'd love to discuss! I'm thinking of using recursion for insertion.",
			CreatedAt: day(2024, 10, 1, 16, 20)},
	}

	reactions := []models.Reaction{
		{ID: 1, PostID: 1, SenderID: emma, Type: "love", CreatedAt: day(2024, 9, 1, 12, 0)},
		{ID: 2, PostID: 1, SenderID: james, Type: "like", CreatedAt: day(2024, 9, 1, 13, 0)},
		{ID: 3, PostID: 2, SenderID: sophia, Type: "like", CreatedAt: day(2024, 9, 15, 11, 0)},
		{ID: 4, PostID: 4, SenderID: emma, Type: "shocked", CreatedAt: day(2024, 10, 20, 15, 0)},
	}

	return inmem.Fixture{
		Users:     users,
		Courses:   courses,
		Posts:     posts,
		Comments:  comments,
		Reactions: reactions,
	}
}
