package database

import (
	"testing"

	"github.com/quocnhat02092003/thread-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}

	assert.NoError(t, configurePool(db, cfg))

	// Zero values fall back to defaults rather than disabling the pool.
	assert.NoError(t, configurePool(db, &config.Config{}))
}

func TestAutoMigratePersistentModels(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(PersistentModels()...))

	for _, table := range []string{"users", "refresh_tokens", "posts", "comments", "post_likes", "follows", "notifications"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
}
