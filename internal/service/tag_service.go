package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// TagService serves tag queries. Tag writes only happen through post
// mutations, so there is no mutation surface here.
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService returns a new TagService.
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// ListTagNames returns every tag name.
func (s *TagService) ListTagNames(ctx context.Context) ([]string, error) {
	return s.tagRepo.Names(ctx)
}

// GetTag returns the named tag, or nil when it does not exist.
func (s *TagService) GetTag(ctx context.Context, name string) (*models.Tag, error) {
	return s.tagRepo.GetByName(ctx, name)
}
