// Package inmem is an in-memory fact store. It backs the CLI fixture mode and tests.
package inmem

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yigit/eduverse/internal/app/analytics"
	"github.com/yigit/eduverse/internal/app/models"
)

// Fixture is a snapshot of every fact table. It is the YAML layout read by LoadFile.
type Fixture struct {
	Users     []models.User     `yaml:"users"`
	Courses   []models.Course   `yaml:"courses"`
	Posts     []models.Post     `yaml:"posts"`
	Comments  []models.Comment  `yaml:"comments"`
	Reactions []models.Reaction `yaml:"reactions"`
}

// DB holds the fact tables
type DB struct {
	mutex     sync.RWMutex
	users     map[int64]models.User
	courses   map[string]models.Course
	posts     map[int64]models.Post
	comments  map[int64]models.Comment
	reactions map[int64]models.Reaction
	lastID    int64
}

var _ analytics.FactSource = (*DB)(nil)

// Open returns an empty store
func Open() *DB {
	return &DB{
		users:     make(map[int64]models.User),
		courses:   make(map[string]models.Course),
		posts:     make(map[int64]models.Post),
		comments:  make(map[int64]models.Comment),
		reactions: make(map[int64]models.Reaction),
	}
}

// New returns a store preloaded with f
func New(f Fixture) *DB {
	db := Open()
	db.Load(f)
	return db
}

// LoadFile reads a YAML fixture into a new store
func LoadFile(path string) (*DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file: %w", err)
	}
	return New(f), nil
}

// Load inserts every row of f. Rows without an id get the next free one.
func (db *DB) Load(f Fixture) {
	for _, u := range f.Users {
		db.AddUser(u)
	}
	for _, c := range f.Courses {
		db.AddCourse(c)
	}
	for _, p := range f.Posts {
		db.AddPost(p)
	}
	for _, c := range f.Comments {
		db.AddComment(c)
	}
	for _, r := range f.Reactions {
		db.AddReaction(r)
	}
}

func (db *DB) nextID(id int64) int64 {
	if id == 0 {
		db.lastID++
		return db.lastID
	}
	db.lastID = max(db.lastID, id)
	return id
}

func (db *DB) AddUser(u models.User) models.User {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	u.ID = db.nextID(u.ID)
	db.users[u.ID] = u
	return u
}

func (db *DB) AddCourse(c models.Course) models.Course {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.courses[c.ID] = c
	return c
}

func (db *DB) AddPost(p models.Post) models.Post {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	p.ID = db.nextID(p.ID)
	db.posts[p.ID] = p
	return p
}

func (db *DB) AddComment(c models.Comment) models.Comment {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	c.ID = db.nextID(c.ID)
	db.comments[c.ID] = c
	return c
}

// AddReaction stores a reaction as given. Duplicate (post, user) pairs are kept
// so that callers can model stores that do not enforce the pair constraint.
func (db *DB) AddReaction(r models.Reaction) models.Reaction {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	r.ID = db.nextID(r.ID)
	db.reactions[r.ID] = r
	return r
}

func (db *DB) ListUsers(ctx context.Context, filter analytics.UserFilter) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	ids := idSet(filter.IDs)
	out := make([]models.User, 0, len(db.users))
	for _, u := range db.users {
		if !ids.has(u.ID) || (filter.Role != "" && u.Role != filter.Role) {
			continue
		}
		u.Courses = slices.Clone(u.Courses)
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b models.User) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (db *DB) ListCourses(ctx context.Context, filter analytics.CourseFilter) ([]models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	out := make([]models.Course, 0, len(db.courses))
	for _, c := range db.courses {
		if filter.IDs != nil && !slices.Contains(filter.IDs, c.ID) {
			continue
		}
		if filter.InstructorID != 0 && !c.HasInstructor(filter.InstructorID) {
			continue
		}
		c.InstructorIDs = slices.Clone(c.InstructorIDs)
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b models.Course) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (db *DB) ListPosts(ctx context.Context, filter analytics.PostFilter) ([]models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	ids := idSet(filter.IDs)
	out := make([]models.Post, 0, len(db.posts))
	for _, p := range db.posts {
		if !ids.has(p.ID) ||
			(filter.CourseID != "" && p.CourseID != filter.CourseID) ||
			(filter.SenderID != 0 && p.SenderID != filter.SenderID) {
			continue
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b models.Post) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (db *DB) ListComments(ctx context.Context, filter analytics.CommentFilter) ([]models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	postIDs := idSet(filter.PostIDs)
	out := make([]models.Comment, 0, len(db.comments))
	for _, c := range db.comments {
		if !postIDs.has(c.PostID) || (filter.SenderID != 0 && c.SenderID != filter.SenderID) {
			continue
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b models.Comment) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (db *DB) ListReactions(ctx context.Context, filter analytics.ReactionFilter) ([]models.Reaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	postIDs := idSet(filter.PostIDs)
	out := make([]models.Reaction, 0, len(db.reactions))
	for _, r := range db.reactions {
		if !postIDs.has(r.PostID) || (filter.SenderID != 0 && r.SenderID != filter.SenderID) {
			continue
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b models.Reaction) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// ids is nil when the filter does not restrict by id
type ids map[int64]struct{}

func idSet(list []int64) ids {
	if list == nil {
		return nil
	}
	set := make(ids, len(list))
	for _, id := range list {
		set[id] = struct{}{}
	}
	return set
}

func (s ids) has(id int64) bool {
	if s == nil {
		return true
	}
	_, ok := s[id]
	return ok
}
