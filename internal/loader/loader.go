// Package loader provides request-scoped batching and deduplication for the
// relationship resolvers. One Loaders value is created per incoming request;
// sibling resolvers selecting the same related entity share a single query.
package loader

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"github.com/graph-gophers/dataloader/v7"
)

type ctxKey struct{}

// Loaders bundles every per-request dataloader.
type Loaders struct {
	UserByID          *dataloader.Loader[uint, *models.User]
	PostByID          *dataloader.Loader[uint, *models.Post]
	LocationByID      *dataloader.Loader[uint, *models.Location]
	TagsByPostID      *dataloader.Loader[uint, []models.Tag]
	CommentsByPostID  *dataloader.Loader[uint, []models.Comment]
	PostsByOwnerID    *dataloader.Loader[uint, []models.Post]
	CommentsByOwnerID *dataloader.Loader[uint, []models.Comment]
}

// New builds a fresh Loaders set over the repositories. The default in-memory
// cache deduplicates keys for the lifetime of the request only, since each
// request gets its own set.
func New(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *Loaders {
	return &Loaders{
		UserByID:          dataloader.NewBatchedLoader(userByIDBatch(userRepo)),
		PostByID:          dataloader.NewBatchedLoader(postByIDBatch(postRepo)),
		LocationByID:      dataloader.NewBatchedLoader(locationByIDBatch(userRepo)),
		TagsByPostID:      dataloader.NewBatchedLoader(tagsByPostIDBatch(postRepo)),
		CommentsByPostID:  dataloader.NewBatchedLoader(commentsByPostIDBatch(commentRepo)),
		PostsByOwnerID:    dataloader.NewBatchedLoader(postsByOwnerIDBatch(postRepo)),
		CommentsByOwnerID: dataloader.NewBatchedLoader(commentsByOwnerIDBatch(commentRepo)),
	}
}

// With attaches the loaders to the request context.
func With(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// For extracts the request's loaders, or nil when none are attached.
func For(ctx context.Context) *Loaders {
	l, _ := ctx.Value(ctxKey{}).(*Loaders)
	return l
}

// errResults fans a single fetch error out to every requested key.
func errResults[V any](keys []uint, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i := range keys {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

func userByIDBatch(repo repository.UserRepository) dataloader.BatchFunc[uint, *models.User] {
	return func(ctx context.Context, keys []uint) []*dataloader.Result[*models.User] {
		observability.LoaderBatchSize.WithLabelValues("user_by_id").Observe(float64(len(keys)))

		users, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errResults[*models.User](keys, err)
		}
		byID := make(map[uint]*models.User, len(users))
		for i := range users {
			byID[users[i].ID] = &users[i]
		}
		results := make([]*dataloader.Result[*models.User], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[*models.User]{Data: byID[key]}
		}
		return results
	}
}

func postByIDBatch(repo repository.PostRepository) dataloader.BatchFunc[uint, *models.Post] {
	return func(ctx context.Context, keys []uint) []*dataloader.Result[*models.Post] {
		observability.LoaderBatchSize.WithLabelValues("post_by_id").Observe(float64(len(keys)))

		posts, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errResults[*models.Post](keys, err)
		}
		byID := make(map[uint]*models.Post, len(posts))
		for i := range posts {
			byID[posts[i].ID] = &posts[i]
		}
		results := make([]*dataloader.Result[*models.Post], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[*models.Post]{Data: byID[key]}
		}
		return results
	}
}

func locationByIDBatch(repo repository.UserRepository) dataloader.BatchFunc[uint, *models.Location] {
	return func(ctx context.Context, keys []uint) []*dataloader.Result[*models.Location] {
		observability.LoaderBatchSize.WithLabelValues("location_by_id").Observe(float64(len(keys)))

		locs, err := repo.GetLocationByIDs(ctx, keys)
		if err != nil {
			return errResults[*models.Location](keys, err)
		}
		byID := make(map[uint]*models.Location, len(locs))
		for i := range locs {
			byID[locs[i].ID] = &locs[i]
		}
		results := make([]*dataloader.Result[*models.Location], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[*models.Location]{Data: byID[key]}
		}
		return results
	}
}

func tagsByPostIDBatch(repo repository.PostRepository) dataloader.BatchFunc[uint, []models.Tag] {
	return func(ctx context.Context, keys []uint) []*dataloader.Result[[]models.Tag] {
		observability.LoaderBatchSize.WithLabelValues("tags_by_post_id").Observe(float64(len(keys)))

		byPost, err := repo.TagsByPostIDs(ctx, keys)
		if err != nil {
			return errResults[[]models.Tag](keys, err)
		}
		results := make([]*dataloader.Result[[]models.Tag], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[[]models.Tag]{Data: byPost[key]}
		}
		return results
	}
}

func commentsByPostIDBatch(repo repository.CommentRepository) dataloader.BatchFunc[uint, []models.Comment] {
	return func(ctx context.Context, keys []uint) []*dataloader.Result[[]models.Comment] {
		observability.LoaderBatchSize.WithLabelValues("comments_by_post_id").Observe(float64(len(keys)))

		comments, err := repo.ListByPostIDs(ctx, keys)
		if err != nil {
			return errResults[[]models.Comment](keys, err)
		}
		byPost := make(map[uint][]models.Comment, len(keys))
		for _, c := range comments {
			byPost[c.PostID] = append(byPost[c.PostID], c)
		}
		results := make([]*dataloader.Result[[]models.Comment], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[[]models.Comment]{Data: byPost[key]}
		}
		return results
	}
}

func postsByOwnerIDBatch(repo repository.PostRepository) dataloader.BatchFunc[uint, []models.Post] {
	return func(ctx context.Context, keys []uint) []*dataloader.Result[[]models.Post] {
		observability.LoaderBatchSize.WithLabelValues("posts_by_owner_id").Observe(float64(len(keys)))

		posts, err := repo.ListByOwnerIDs(ctx, keys)
		if err != nil {
			return errResults[[]models.Post](keys, err)
		}
		byOwner := make(map[uint][]models.Post, len(keys))
		for _, p := range posts {
			byOwner[p.OwnerID] = append(byOwner[p.OwnerID], p)
		}
		results := make([]*dataloader.Result[[]models.Post], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[[]models.Post]{Data: byOwner[key]}
		}
		return results
	}
}

func commentsByOwnerIDBatch(repo repository.CommentRepository) dataloader.BatchFunc[uint, []models.Comment] {
	return func(ctx context.Context, keys []uint) []*dataloader.Result[[]models.Comment] {
		observability.LoaderBatchSize.WithLabelValues("comments_by_owner_id").Observe(float64(len(keys)))

		comments, err := repo.ListByOwnerIDs(ctx, keys)
		if err != nil {
			return errResults[[]models.Comment](keys, err)
		}
		byOwner := make(map[uint][]models.Comment, len(keys))
		for _, c := range comments {
			byOwner[c.OwnerID] = append(byOwner[c.OwnerID], c)
		}
		results := make([]*dataloader.Result[[]models.Comment], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[[]models.Comment]{Data: byOwner[key]}
		}
		return results
	}
}
