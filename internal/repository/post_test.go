package repository

import (
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create_CollapsesDuplicateTags(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com", time.Now())

	post := &models.Post{Text: "about water and salt", OwnerID: user.ID}
	require.NoError(t, repo.Create(t.Context(), post, []string{"a", "a", "b"}))

	got, err := repo.GetByID(t.Context(), post.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 2)

	var tagCount int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tagCount).Error)
	assert.EqualValues(t, 2, tagCount)
}

func TestPostRepository_Create_ReusesExistingTags(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com", time.Now())

	first := &models.Post{Text: "first", OwnerID: user.ID}
	require.NoError(t, repo.Create(t.Context(), first, []string{"water", "ice"}))

	second := &models.Post{Text: "second", OwnerID: user.ID}
	require.NoError(t, repo.Create(t.Context(), second, []string{"ice", "salt"}))

	var tagCount int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tagCount).Error)
	assert.EqualValues(t, 3, tagCount, "ice must be shared, not duplicated")
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(t.Context(), 404)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestPostRepository_ConnectTags_OnlyAdds(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com", time.Now())

	post := createTestPost(t, db, repo, user.ID, "tagged", []string{"x", "y"}, time.Now())

	require.NoError(t, repo.ConnectTags(t.Context(), post, []string{"z"}))

	got, err := repo.GetByID(t.Context(), post.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(got.Tags))
	for _, tag := range got.Tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"x", "y", "z"}, names, "previous connections survive")
}

func TestPostRepository_ListByTag(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com", time.Now())

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	tagged := createTestPost(t, db, repo, user.ID, "has tag", []string{"ocean"}, base)
	createTestPost(t, db, repo, user.ID, "no tag", []string{"desert"}, base.Add(time.Hour))

	posts, total, err := repo.ListByTag(t.Context(), "ocean", models.ListParams{Page: 1, Limit: 10, Order: "desc"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, tagged.ID, posts[0].ID)

	posts, total, err = repo.ListByTag(t.Context(), "unknown", models.ListParams{Page: 1, Limit: 10, Order: "desc"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, posts)
}

func TestPostRepository_List_OrderAndPreloads(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com", time.Now())

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	older := createTestPost(t, db, repo, user.ID, "older", []string{"one"}, base)
	newer := createTestPost(t, db, repo, user.ID, "newer", []string{"two"}, base.Add(time.Hour))

	posts, total, err := repo.List(t.Context(), models.ListParams{Page: 1, Limit: 10, Order: "desc"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)
	require.NotNil(t, posts[0].Owner, "owner should be preloaded")
	assert.Equal(t, user.ID, posts[0].Owner.ID)
	assert.Len(t, posts[0].Tags, 1)
}

func TestPostRepository_ListByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	owner := createTestUser(t, db, "owner@example.com", time.Now())
	other := createTestUser(t, db, "other@example.com", time.Now())

	createTestPost(t, db, repo, owner.ID, "mine", nil, time.Now())
	createTestPost(t, db, repo, other.ID, "theirs", nil, time.Now())

	posts, total, err := repo.ListByOwner(t.Context(), owner.ID, models.ListParams{Page: 1, Limit: 10, Order: "desc"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, "mine", posts[0].Text)
}

func TestPostRepository_TagsByPostIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com", time.Now())

	p1 := createTestPost(t, db, repo, user.ID, "one", []string{"water", "ice"}, time.Now())
	p2 := createTestPost(t, db, repo, user.ID, "two", []string{"ice"}, time.Now())
	p3 := createTestPost(t, db, repo, user.ID, "three", nil, time.Now())

	byPost, err := repo.TagsByPostIDs(t.Context(), []uint{p1.ID, p2.ID, p3.ID})
	require.NoError(t, err)
	assert.Len(t, byPost[p1.ID], 2)
	assert.Len(t, byPost[p2.ID], 1)
	assert.Empty(t, byPost[p3.ID])
	assert.Equal(t, "ice", byPost[p2.ID][0].Name)
}

func TestPostRepository_Delete_RemovesTagConnections(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com", time.Now())

	post := createTestPost(t, db, repo, user.ID, "doomed", []string{"water"}, time.Now())
	require.NoError(t, repo.Delete(t.Context(), post.ID))

	_, err := repo.GetByID(t.Context(), post.ID)
	require.Error(t, err)

	posts, total, err := repo.ListByTag(t.Context(), "water", models.ListParams{Page: 1, Limit: 10, Order: "desc"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, posts)
}
