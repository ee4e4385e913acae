package repository

import (
	"testing"

	"github.com/quocnhat02092003/thread-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Username: "nhat", Password: "hash", DisplayName: "Nhat"}
	require.NoError(t, repo.Create(testCtx, user))
	assert.NotZero(t, user.ID)

	got, err := repo.GetByID(testCtx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "nhat", got.Username)

	byName, err := repo.GetByUsername(testCtx, "nhat")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)
}

func TestUserRepository_GetByUsernameMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	got, err := repo.GetByUsername(testCtx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_GetByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(testCtx, 999)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(testCtx, &models.User{Username: "nhat", Password: "hash"}))

	err := repo.Create(testCtx, &models.User{Username: "nhat", Password: "hash2"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUserRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	for _, name := range []string{"anna", "annette", "bob", "susanna"} {
		createTestUser(t, db, name)
	}

	results, err := repo.Search(testCtx, "ANN", 20)
	require.NoError(t, err)

	names := make([]string, 0, len(results))
	for _, u := range results {
		names = append(names, u.Username)
	}
	assert.ElementsMatch(t, []string{"anna", "annette", "susanna"}, names)

	empty, err := repo.Search(testCtx, "zzz", 20)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserRepository_UpdateDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	createTestUser(t, db, "taken")
	user := createTestUser(t, db, "mine")

	user.Username = "taken"
	err := repo.Update(testCtx, user)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
