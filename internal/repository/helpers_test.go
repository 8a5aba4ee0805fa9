package repository

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// setupTestDB opens a fresh in-memory sqlite database with the full schema.
// The shared-cache name keeps every pooled connection on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared&_foreign_keys=on", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// setupMockDB opens a gorm handle over sqlmock for statement-level tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

// createTestUser inserts a user with a location and a distinct register date
// so list ordering is deterministic.
func createTestUser(t *testing.T, db *gorm.DB, email string, registered time.Time) *models.User {
	t.Helper()

	loc := &models.Location{Street: "1 Main St", City: "Springfield", State: "IL", Country: "USA", Timezone: "-5:00"}
	require.NoError(t, db.Create(loc).Error)

	user := &models.User{
		Title:      "mr",
		FirstName:  "Test",
		LastName:   "User",
		Email:      email,
		Phone:      "555-0100",
		Picture:    "https://example.com/p.jpg",
		LocationID: loc.ID,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Model(user).Update("register_date", registered).Error)
	user.RegisterDate = registered
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, repo PostRepository, ownerID uint, text string, tags []string, published time.Time) *models.Post {
	t.Helper()

	post := &models.Post{Text: text, OwnerID: ownerID}
	require.NoError(t, repo.Create(t.Context(), post, tags))
	require.NoError(t, db.Model(post).Update("publish_date", published).Error)
	post.PublishDate = published
	return post
}
