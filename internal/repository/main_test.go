package repository

import (
	"context"
	"os"
	"testing"

	"github.com/quocnhat02092003/thread-app/internal/database"
	"github.com/quocnhat02092003/thread-app/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// Every test gets its own database so tests stay independent.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:    username,
		Password:    "$2a$10$hashhashhashhashhashhash",
		DisplayName: username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, content string) *models.Post {
	t.Helper()

	post := &models.Post{
		UserID:  userID,
		Content: content,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

var testCtx = context.Background()
