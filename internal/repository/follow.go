package repository

import (
	"context"
	"errors"

	"github.com/quocnhat02092003/thread-app/internal/cache"
	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/observability"

	"gorm.io/gorm"
)

// ErrAlreadyFollowing is returned when the follow edge already exists.
var ErrAlreadyFollowing = models.NewValidationError("Already following.")

// ErrNotFollowing is returned when unfollowing without an existing edge.
var ErrNotFollowing = models.NewNotFoundError("Not following this user.")

// FollowRepository defines the interface for follow edge operations.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID uint, notif *models.Notification) error
	Unfollow(ctx context.Context, followerID, followingID uint) error
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	FollowingIDs(ctx context.Context, followerID uint) ([]uint, error)
	FollowingSet(ctx context.Context, followerID uint, targetIDs []uint) (map[uint]bool, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the edge and increments the target's denormalized follower
// counter in one transaction. When notif is non-nil it joins the transaction.
func (r *followRepository) Follow(ctx context.Context, followerID, followingID uint, notif *models.Notification) error {
	defer observability.TrackQuery("follow", "follows")()

	var target *models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, followingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User not found")
			}
			return models.NewInternalError(err)
		}
		target = &user

		edge := models.Follow{FollowerID: followerID, FollowingID: followingID}
		if err := tx.Create(&edge).Error; err != nil {
			if isUniqueConstraintError(err) {
				return ErrAlreadyFollowing
			}
			return models.NewInternalError(err)
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", followingID).
			UpdateColumn("follower", gorm.Expr("follower + 1")).Error; err != nil {
			return models.NewInternalError(err)
		}

		if notif != nil {
			if err := tx.Create(notif).Error; err != nil {
				return models.NewInternalError(err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateUser(ctx, followingID, target.Username)
	return nil
}

// Unfollow deletes the edge, clamp-decrements the follower counter, and
// removes the matching Follow notification in one transaction.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followingID uint) error {
	defer observability.TrackQuery("unfollow", "follows")()

	var targetUsername string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, followingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User not found")
			}
			return models.NewInternalError(err)
		}
		targetUsername = user.Username

		del := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&models.Follow{})
		if del.Error != nil {
			return models.NewInternalError(del.Error)
		}
		if del.RowsAffected == 0 {
			return ErrNotFollowing
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", followingID).
			UpdateColumn("follower", gorm.Expr("CASE WHEN follower > 0 THEN follower - 1 ELSE 0 END")).Error; err != nil {
			return models.NewInternalError(err)
		}

		if err := tx.Where("sender_id = ? AND receiver_id = ? AND type = ?",
			followerID, followingID, models.NotificationFollow).
			Delete(&models.Notification{}).Error; err != nil {
			return models.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateUser(ctx, followingID, targetUsername)
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	defer observability.TrackQuery("is_following", "follows")()

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	defer observability.TrackQuery("following_ids", "follows")()

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *followRepository) FollowingSet(ctx context.Context, followerID uint, targetIDs []uint) (map[uint]bool, error) {
	defer observability.TrackQuery("following_set", "follows")()

	following := make(map[uint]bool, len(targetIDs))
	if followerID == 0 || len(targetIDs) == 0 {
		return following, nil
	}

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, targetIDs).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, id := range ids {
		following[id] = true
	}
	return following, nil
}
