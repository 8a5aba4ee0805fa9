package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params models.ListParams) ([]models.Comment, int64, error)
	ListByPost(ctx context.Context, postID uint, params models.ListParams) ([]models.Comment, int64, error)
	ListByOwner(ctx context.Context, ownerID uint, params models.ListParams) ([]models.Comment, int64, error)
	ListByPostIDs(ctx context.Context, postIDs []uint) ([]models.Comment, error)
	ListByOwnerIDs(ctx context.Context, ownerIDs []uint) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewCommentNotFound(id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// list runs the shared count-then-bounded-fetch convention over an optionally
// scoped comment query.
func (r *commentRepository) list(scope func(*gorm.DB) *gorm.DB, params models.ListParams) ([]models.Comment, int64, error) {
	var total int64
	if err := scope(r.db.Model(&models.Comment{})).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var comments []models.Comment
	err := scope(r.db).
		Preload("Owner").
		Order(orderClause("publish_date", params.Descending())).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&comments).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return comments, total, nil
}

func (r *commentRepository) List(ctx context.Context, params models.ListParams) ([]models.Comment, int64, error) {
	defer observability.TrackQuery("list", "comments")()
	return r.list(func(db *gorm.DB) *gorm.DB {
		return db.WithContext(ctx)
	}, params)
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, params models.ListParams) ([]models.Comment, int64, error) {
	defer observability.TrackQuery("list_by_post", "comments")()
	return r.list(func(db *gorm.DB) *gorm.DB {
		return db.WithContext(ctx).Where("post_id = ?", postID)
	}, params)
}

func (r *commentRepository) ListByOwner(ctx context.Context, ownerID uint, params models.ListParams) ([]models.Comment, int64, error) {
	defer observability.TrackQuery("list_by_owner", "comments")()
	return r.list(func(db *gorm.DB) *gorm.DB {
		return db.WithContext(ctx).Where("owner_id = ?", ownerID)
	}, params)
}

func (r *commentRepository) ListByPostIDs(ctx context.Context, postIDs []uint) ([]models.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("publish_date DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) ListByOwnerIDs(ctx context.Context, ownerIDs []uint) ([]models.Comment, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("owner_id IN ?", ownerIDs).
		Order("publish_date DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
