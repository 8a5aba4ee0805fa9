package repository

import (
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	created := createTestUser(t, db, "jane@example.com", time.Now())

	got, err := repo.GetByID(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)
	require.NotNil(t, got.Location, "location should be preloaded")
	assert.Equal(t, "Springfield", got.Location.City)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(t.Context(), 9999)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	createTestUser(t, db, "dup@example.com", time.Now())

	err := repo.Create(t.Context(), &models.User{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "dup@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicate, models.ErrorCode(err))
}

func TestUserRepository_GetByEmail_AbsentIsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByEmail(t.Context(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_List_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest := createTestUser(t, db, "a@example.com", base)
	middle := createTestUser(t, db, "b@example.com", base.Add(time.Hour))
	newest := createTestUser(t, db, "c@example.com", base.Add(2*time.Hour))

	t.Run("descending first page", func(t *testing.T) {
		users, total, err := repo.List(t.Context(), models.ListParams{Page: 1, Limit: 2, Order: "desc"})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, users, 2)
		assert.Equal(t, newest.ID, users[0].ID)
		assert.Equal(t, middle.ID, users[1].ID)
	})

	t.Run("ascending", func(t *testing.T) {
		users, _, err := repo.List(t.Context(), models.ListParams{Page: 1, Limit: 3, Order: "asc"})
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, oldest.ID, users[0].ID)
	})

	t.Run("out of range page returns empty data with true total", func(t *testing.T) {
		users, total, err := repo.List(t.Context(), models.ListParams{Page: 50, Limit: 10, Order: "desc"})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Empty(t, users)
	})
}

func TestUserRepository_Delete_CascadesToPostsAndComments(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)

	user := createTestUser(t, db, "owner@example.com", time.Now())
	post := createTestPost(t, db, postRepo, user.ID, "mine", []string{"water"}, time.Now())
	require.NoError(t, commentRepo.Create(t.Context(), &models.Comment{
		Message: "hello", OwnerID: user.ID, PostID: post.ID,
	}))

	require.NoError(t, userRepo.Delete(t.Context(), user.ID))

	var postCount, commentCount int64
	require.NoError(t, db.Model(&models.Post{}).Where("owner_id = ?", user.ID).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("owner_id = ?", user.ID).Count(&commentCount).Error)
	assert.Zero(t, postCount)
	assert.Zero(t, commentCount)
}

func TestUserRepository_Exists_Mock(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WithArgs(uint(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(t.Context(), 42)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetLocationByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	u1 := createTestUser(t, db, "l1@example.com", time.Now())
	u2 := createTestUser(t, db, "l2@example.com", time.Now())

	locs, err := repo.GetLocationByIDs(t.Context(), []uint{u1.LocationID, u2.LocationID})
	require.NoError(t, err)
	assert.Len(t, locs, 2)

	locs, err = repo.GetLocationByIDs(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, locs)
}
