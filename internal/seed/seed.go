// Package seed populates the store with demo data for development. Everything
// goes through the service layer so the seeded rows satisfy the same
// validation and referential rules as API-created ones.
package seed

import (
	"context"
	"fmt"
	"math/rand"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	NumComments int
	ShouldClean bool
}

// Seeder creates demo users, posts and comments.
type Seeder struct {
	db       *gorm.DB
	users    *service.UserService
	posts    *service.PostService
	comments *service.CommentService
}

// NewSeeder returns a Seeder over the given database and services.
func NewSeeder(db *gorm.DB, users *service.UserService, posts *service.PostService, comments *service.CommentService) *Seeder {
	return &Seeder{db: db, users: users, posts: posts, comments: comments}
}

// ClearAll removes every seeded entity. Join rows go through the tag link
// table first so foreign keys never dangle mid-cleanup.
func (s *Seeder) ClearAll() error {
	for _, stmt := range []string{
		"DELETE FROM post_tags",
		"DELETE FROM comments",
		"DELETE FROM posts",
		"DELETE FROM tags",
		"DELETE FROM users",
		"DELETE FROM locations",
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("cleanup failed on %q: %w", stmt, err)
		}
	}
	return nil
}

// Seed creates the requested volume of demo data and returns a summary of
// what was written.
func (s *Seeder) Seed(ctx context.Context, opts Options) (string, error) {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return "", err
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.users.CreateUser(ctx, fakeUser())
		if err != nil {
			return "", fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return "no users requested, nothing else to seed", nil
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		owner := users[rand.Intn(len(users))]
		post, err := s.posts.CreatePost(ctx, fakePost(owner.ID))
		if err != nil {
			return "", fmt.Errorf("seeding post %d: %w", i, err)
		}
		posts = append(posts, post)
	}

	comments := 0
	for i := 0; i < opts.NumComments && len(posts) > 0; i++ {
		owner := users[rand.Intn(len(users))]
		post := posts[rand.Intn(len(posts))]
		if _, err := s.comments.CreateComment(ctx, fakeComment(owner.ID, post.ID)); err != nil {
			return "", fmt.Errorf("seeding comment %d: %w", i, err)
		}
		comments++
	}

	return fmt.Sprintf("seeded %d users, %d posts, %d comments", len(users), len(posts), comments), nil
}
