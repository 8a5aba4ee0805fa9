package repository

import (
	"fmt"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedComments(t *testing.T, db *gorm.DB, repo CommentRepository, ownerID, postID uint, n int, base time.Time) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		c := &models.Comment{Message: fmt.Sprintf("comment %d", i), OwnerID: ownerID, PostID: postID}
		require.NoError(t, repo.Create(t.Context(), c))
		require.NoError(t, db.Model(c).Update("publish_date", base.Add(time.Duration(i)*time.Minute)).Error)
		ids = append(ids, c.ID)
	}
	return ids
}

func TestCommentRepository_CreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	postRepo := NewPostRepository(db)
	user := createTestUser(t, db, "reader@example.com", time.Now())
	post := createTestPost(t, db, postRepo, user.ID, "post", nil, time.Now())

	comment := &models.Comment{Message: "Nice post!", OwnerID: user.ID, PostID: post.ID}
	require.NoError(t, repo.Create(t.Context(), comment))
	require.NotZero(t, comment.ID)

	got, err := repo.GetByID(t.Context(), comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nice post!", got.Message)
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	_, err := repo.GetByID(t.Context(), 777)
	require.Error(t, err)
	assert.Equal(t, models.CodeCommentNotFound, models.ErrorCode(err))
}

func TestCommentRepository_ListByPost_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	postRepo := NewPostRepository(db)
	user := createTestUser(t, db, "reader@example.com", time.Now())
	post := createTestPost(t, db, postRepo, user.ID, "post", nil, time.Now())
	other := createTestPost(t, db, postRepo, user.ID, "other", nil, time.Now())

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	ids := seedComments(t, db, repo, user.ID, post.ID, 5, base)
	seedComments(t, db, repo, user.ID, other.ID, 2, base)

	comments, total, err := repo.ListByPost(t.Context(), post.ID, models.ListParams{Page: 1, Limit: 3, Order: "desc"})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, comments, 3)
	assert.Equal(t, ids[4], comments[0].ID, "newest first")
	require.NotNil(t, comments[0].Owner, "owner should be preloaded")

	comments, total, err = repo.ListByPost(t.Context(), post.ID, models.ListParams{Page: 2, Limit: 3, Order: "desc"})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, comments, 2)
}

func TestCommentRepository_ListByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	postRepo := NewPostRepository(db)
	author := createTestUser(t, db, "a@example.com", time.Now())
	lurker := createTestUser(t, db, "b@example.com", time.Now())
	post := createTestPost(t, db, postRepo, author.ID, "post", nil, time.Now())

	seedComments(t, db, repo, author.ID, post.ID, 2, time.Now())
	seedComments(t, db, repo, lurker.ID, post.ID, 1, time.Now())

	_, total, err := repo.ListByOwner(t.Context(), author.ID, models.ListParams{Page: 1, Limit: 10, Order: "desc"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestCommentRepository_ListByPostIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	postRepo := NewPostRepository(db)
	user := createTestUser(t, db, "reader@example.com", time.Now())
	p1 := createTestPost(t, db, postRepo, user.ID, "one", nil, time.Now())
	p2 := createTestPost(t, db, postRepo, user.ID, "two", nil, time.Now())

	seedComments(t, db, repo, user.ID, p1.ID, 2, time.Now())
	seedComments(t, db, repo, user.ID, p2.ID, 1, time.Now())

	comments, err := repo.ListByPostIDs(t.Context(), []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.Len(t, comments, 3)

	comments, err = repo.ListByPostIDs(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	postRepo := NewPostRepository(db)
	user := createTestUser(t, db, "reader@example.com", time.Now())
	post := createTestPost(t, db, postRepo, user.ID, "post", nil, time.Now())

	comment := &models.Comment{Message: "bye", OwnerID: user.ID, PostID: post.ID}
	require.NoError(t, repo.Create(t.Context(), comment))
	require.NoError(t, repo.Delete(t.Context(), comment.ID))

	_, err := repo.GetByID(t.Context(), comment.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeCommentNotFound, models.ErrorCode(err))
}
