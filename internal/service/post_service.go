package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// PostService validates and executes post mutations and queries.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// CreatePostInput carries the createPost mutation fields.
type CreatePostInput struct {
	Text  string
	Image string
	Likes int
	Link  string
	Tags  []string
	Owner uint
}

// UpdatePostInput carries the updatePost mutation fields. Nil pointers mean
// the caller did not supply the field; a nil Tags slice leaves connections
// untouched.
type UpdatePostInput struct {
	Text  *string
	Image *string
	Likes *int
	Link  *string
	Tags  []string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// ListPosts runs the paginated list convention over all posts.
func (s *PostService) ListPosts(ctx context.Context, params models.ListParams) (*models.Page[models.Post], error) {
	posts, total, err := s.postRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return models.NewPage(posts, total, params), nil
}

// ListPostsByUser scopes the list to one owner.
func (s *PostService) ListPostsByUser(ctx context.Context, userID uint, params models.ListParams) (*models.Page[models.Post], error) {
	posts, total, err := s.postRepo.ListByOwner(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return models.NewPage(posts, total, params), nil
}

// ListPostsByTag scopes the list to posts connected to the named tag.
func (s *PostService) ListPostsByTag(ctx context.Context, tag string, params models.ListParams) (*models.Page[models.Post], error) {
	posts, total, err := s.postRepo.ListByTag(ctx, tag, params)
	if err != nil {
		return nil, err
	}
	return models.NewPage(posts, total, params), nil
}

// GetPost fetches one post with its owner and tags.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// CreatePost verifies the owner exists, then persists the post and its tag
// connections in one transaction. Duplicate tag names in the input collapse
// to a single connection.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Text == "" || in.Tags == nil || in.Owner == 0 {
		return nil, models.NewValidationError("All fields are required")
	}

	exists, err := s.userRepo.Exists(ctx, in.Owner)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewUserNotFound(in.Owner)
	}

	post := &models.Post{
		Text:    in.Text,
		Image:   in.Image,
		Likes:   in.Likes,
		Link:    in.Link,
		OwnerID: in.Owner,
	}
	if err := s.postRepo.Create(ctx, post, in.Tags); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost applies the supplied fields. Supplied tags are upserted one by
// one and connected; connections absent from the new list are left in place.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in UpdatePostInput) (*models.Post, error) {
	exists, err := s.postRepo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewPostNotFound(id)
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Text != nil {
		post.Text = *in.Text
	}
	if in.Image != nil {
		post.Image = *in.Image
	}
	if in.Likes != nil {
		post.Likes = *in.Likes
	}
	if in.Link != nil {
		post.Link = *in.Link
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	if len(in.Tags) > 0 {
		if err := s.postRepo.ConnectTags(ctx, post, in.Tags); err != nil {
			return nil, err
		}
	}

	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes the post by id and returns the id.
func (s *PostService) DeletePost(ctx context.Context, id uint) (uint, error) {
	exists, err := s.postRepo.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, models.NewPostNotFound(id)
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}
