package seed

import (
	"testing"

	"github.com/quocnhat02092003/thread-app/internal/database"
	"github.com/quocnhat02092003/thread-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func newTestSeeder(t *testing.T) (*Seeder, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	seeder, err := NewSeeder(db)
	require.NoError(t, err)
	return seeder, db
}

func TestSeedUsers(t *testing.T) {
	seeder, db := newTestSeeder(t)

	users, err := seeder.SeedUsers(10)
	require.NoError(t, err)
	require.Len(t, users, 10)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 10, count)

	for _, u := range users {
		assert.NotZero(t, u.ID)
		assert.NotEmpty(t, u.Username)
		assert.NotEmpty(t, u.DisplayName)
		assert.False(t, u.NeedMoreInfoUser)
	}
}

func TestSeedFollowsKeepsCountersConsistent(t *testing.T) {
	seeder, db := newTestSeeder(t)

	users, err := seeder.SeedUsers(12)
	require.NoError(t, err)

	created, err := seeder.SeedFollows(users)
	require.NoError(t, err)

	var edges int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&edges).Error)
	assert.EqualValues(t, created, edges)

	// Each user's follower counter matches their edge count.
	var fresh []models.User
	require.NoError(t, db.Find(&fresh).Error)
	for _, u := range fresh {
		var incoming int64
		require.NoError(t, db.Model(&models.Follow{}).
			Where("following_id = ?", u.ID).Count(&incoming).Error)
		assert.EqualValues(t, incoming, u.Follower, "user %d follower counter", u.ID)
	}

	// Every edge produced exactly one Follow notification.
	var notifs int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("type = ?", models.NotificationFollow).Count(&notifs).Error)
	assert.EqualValues(t, edges, notifs)
}

func TestSeedEngagementKeepsCountersConsistent(t *testing.T) {
	seeder, db := newTestSeeder(t)

	users, err := seeder.SeedUsers(8)
	require.NoError(t, err)
	posts, err := seeder.SeedPosts(users, 20)
	require.NoError(t, err)
	require.NoError(t, seeder.SeedEngagement(users, posts))

	var fresh []models.Post
	require.NoError(t, db.Find(&fresh).Error)
	require.Len(t, fresh, 20)

	for _, p := range fresh {
		var likes int64
		require.NoError(t, db.Model(&models.PostLike{}).
			Where("post_id = ?", p.ID).Count(&likes).Error)
		assert.EqualValues(t, likes, p.LikeCount, "post %d like counter", p.ID)

		var comments int64
		require.NoError(t, db.Model(&models.Comment{}).
			Where("post_id = ?", p.ID).Count(&comments).Error)
		assert.EqualValues(t, comments, p.CommentCount, "post %d comment counter", p.ID)
	}

	// Threaded replies must point at comments on the same post.
	var replies []models.Comment
	require.NoError(t, db.Where("parent_comment_id IS NOT NULL").Find(&replies).Error)
	for _, reply := range replies {
		var parent models.Comment
		require.NoError(t, db.First(&parent, *reply.ParentCommentID).Error)
		assert.Equal(t, reply.PostID, parent.PostID)
	}
}

func TestClearAll(t *testing.T) {
	seeder, db := newTestSeeder(t)

	require.NoError(t, seeder.Run(6, 10))
	require.NoError(t, seeder.ClearAll())

	for _, table := range []interface{}{
		&models.User{}, &models.Post{}, &models.Comment{},
		&models.PostLike{}, &models.Follow{}, &models.Notification{},
	} {
		var count int64
		require.NoError(t, db.Model(table).Count(&count).Error)
		assert.Zero(t, count, "%T should be empty", table)
	}
}

func TestFactoryBuildPost(t *testing.T) {
	seeder, _ := newTestSeeder(t)

	user := &models.User{ID: 1}
	for i := 0; i < 50; i++ {
		post := seeder.factory.BuildPost(user)
		assert.Equal(t, uint(1), post.UserID)
		assert.NotEmpty(t, post.Content)
		assert.True(t, models.ValidVisibility(post.Visibility))
		assert.False(t, post.CreatedAt.IsZero())
	}
}
