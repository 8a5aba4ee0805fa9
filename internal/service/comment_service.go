package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// CommentService validates and executes comment mutations and queries.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

// CreateCommentInput carries the createComment mutation fields. All three are
// required.
type CreateCommentInput struct {
	Message string
	Owner   uint
	Post    uint
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// ListComments runs the paginated list convention over all comments.
func (s *CommentService) ListComments(ctx context.Context, params models.ListParams) (*models.Page[models.Comment], error) {
	comments, total, err := s.commentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return models.NewPage(comments, total, params), nil
}

// ListCommentsByPost scopes the list to one post.
func (s *CommentService) ListCommentsByPost(ctx context.Context, postID uint, params models.ListParams) (*models.Page[models.Comment], error) {
	comments, total, err := s.commentRepo.ListByPost(ctx, postID, params)
	if err != nil {
		return nil, err
	}
	return models.NewPage(comments, total, params), nil
}

// ListCommentsByUser scopes the list to one owner.
func (s *CommentService) ListCommentsByUser(ctx context.Context, userID uint, params models.ListParams) (*models.Page[models.Comment], error) {
	comments, total, err := s.commentRepo.ListByOwner(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return models.NewPage(comments, total, params), nil
}

// CreateComment verifies both references before writing: a missing owner is
// USER_NOT_FOUND, a missing post is POST_NOT_FOUND.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Message == "" || in.Owner == 0 || in.Post == 0 {
		return nil, models.NewValidationError("All fields are required")
	}

	ownerExists, err := s.userRepo.Exists(ctx, in.Owner)
	if err != nil {
		return nil, err
	}
	if !ownerExists {
		return nil, models.NewUserNotFound(in.Owner)
	}

	postExists, err := s.postRepo.Exists(ctx, in.Post)
	if err != nil {
		return nil, err
	}
	if !postExists {
		return nil, models.NewPostNotFound(in.Post)
	}

	comment := &models.Comment{
		Message: in.Message,
		OwnerID: in.Owner,
		PostID:  in.Post,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes the comment by id and returns the id.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) (uint, error) {
	if _, err := s.commentRepo.GetByID(ctx, id); err != nil {
		return 0, err
	}
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}
