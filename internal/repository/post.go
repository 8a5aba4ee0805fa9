package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts and their tag links.
type PostRepository interface {
	// Create persists the post and its tag connections atomically: every tag
	// name is upserted and connected inside one transaction.
	Create(ctx context.Context, post *models.Post, tagNames []string) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, post *models.Post) error
	// ConnectTags upserts each tag name individually (no surrounding
	// transaction) and adds the missing connections. Existing connections
	// are never removed.
	ConnectTags(ctx context.Context, post *models.Post, tagNames []string) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params models.ListParams) ([]models.Post, int64, error)
	ListByOwner(ctx context.Context, ownerID uint, params models.ListParams) ([]models.Post, int64, error)
	ListByTag(ctx context.Context, tag string, params models.ListParams) ([]models.Post, int64, error)
	ListByOwnerIDs(ctx context.Context, ownerIDs []uint) ([]models.Post, error)
	TagsByPostIDs(ctx context.Context, postIDs []uint) (map[uint][]models.Tag, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// dedupeNames keeps the first occurrence of each tag name, preserving order.
func dedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func (r *postRepository) Create(ctx context.Context, post *models.Post, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags := make([]models.Tag, 0, len(tagNames))
		for _, name := range dedupeNames(tagNames) {
			var tag models.Tag
			if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		post.Tags = tags
		return tx.Create(post).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Owner").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []models.Post
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	// Omit the association so Save never rewrites tag links; ConnectTags owns those.
	if err := r.db.WithContext(ctx).Omit("Tags").Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) ConnectTags(ctx context.Context, post *models.Post, tagNames []string) error {
	for _, name := range dedupeNames(tagNames) {
		var tag models.Tag
		if err := r.db.WithContext(ctx).Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := r.db.WithContext(ctx).Model(post).Association("Tags").Append(&tag); err != nil {
			return models.NewInternalError(err)
		}
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Select("Tags", "Comments").Delete(&models.Post{ID: id}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, params models.ListParams) ([]models.Post, int64, error) {
	defer observability.TrackQuery("list", "posts")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Owner").
		Order(orderClause("publish_date", params.Descending())).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) ListByOwner(ctx context.Context, ownerID uint, params models.ListParams) ([]models.Post, int64, error) {
	defer observability.TrackQuery("list_by_owner", "posts")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order(orderClause("publish_date", params.Descending())).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

// byTag scopes a post query to posts connected to the named tag.
func (r *postRepository) byTag(ctx context.Context, tag string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("tags.name = ?", tag)
}

func (r *postRepository) ListByTag(ctx context.Context, tag string, params models.ListParams) ([]models.Post, int64, error) {
	defer observability.TrackQuery("list_by_tag", "posts")()

	var total int64
	if err := r.byTag(ctx, tag).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []models.Post
	err := r.byTag(ctx, tag).
		Preload("Tags").
		Preload("Owner").
		Order(orderClause("publish_date", params.Descending())).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) ListByOwnerIDs(ctx context.Context, ownerIDs []uint) ([]models.Post, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("owner_id IN ?", ownerIDs).
		Order("publish_date DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) TagsByPostIDs(ctx context.Context, postIDs []uint) (map[uint][]models.Tag, error) {
	if len(postIDs) == 0 {
		return map[uint][]models.Tag{}, nil
	}

	var rows []struct {
		TagID  uint
		Name   string
		PostID uint
	}
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Select("tags.id AS tag_id, tags.name AS name, post_tags.post_id AS post_id").
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id IN ?", postIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	byPost := make(map[uint][]models.Tag, len(postIDs))
	for _, row := range rows {
		byPost[row.PostID] = append(byPost[row.PostID], models.Tag{ID: row.TagID, Name: row.Name})
	}
	return byPost, nil
}
