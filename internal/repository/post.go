package repository

import (
	"context"
	"errors"

	"github.com/quocnhat02092003/thread-app/internal/cache"
	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/observability"

	"gorm.io/gorm"
)

// LikeResult reports the state of a post's like counter after a like or
// unlike operation.
type LikeResult struct {
	Changed   bool
	LikeCount int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.Post, error)
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	LikedPostIDs(ctx context.Context, userID uint) ([]uint, error)
	LikedSet(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
	Like(ctx context.Context, userID, postID uint, notif *models.Notification) (*LikeResult, error)
	Unlike(ctx context.Context, userID, postID uint) (*LikeResult, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("get_by_id", "posts")()

	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Post, error) {
	defer observability.TrackQuery("get_by_user_id", "posts")()

	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// List returns the newest-first global feed page.
func (r *postRepository) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	defer observability.TrackQuery("list", "posts")()

	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	defer observability.TrackQuery("is_liked", "post_likes")()

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) LikedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	defer observability.TrackQuery("liked_post_ids", "post_likes")()

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ?", userID).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *postRepository) LikedSet(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	defer observability.TrackQuery("liked_set", "post_likes")()

	liked := make(map[uint]bool, len(postIDs))
	if userID == 0 || len(postIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// Like inserts the like row and increments the denormalized counter in one
// transaction. Already-liked is a no-op. When notif is non-nil (liker is not
// the post owner) the notification row joins the same transaction.
func (r *postRepository) Like(ctx context.Context, userID, postID uint, notif *models.Notification) (*LikeResult, error) {
	defer observability.TrackQuery("like", "post_likes")()

	result := &LikeResult{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post not found")
			}
			return models.NewInternalError(err)
		}

		var count int64
		if err := tx.Model(&models.PostLike{}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if count > 0 {
			result.LikeCount = post.LikeCount
			return nil
		}

		if err := tx.Create(&models.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
			if isUniqueConstraintError(err) {
				result.LikeCount = post.LikeCount
				return nil
			}
			return models.NewInternalError(err)
		}

		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
			return models.NewInternalError(err)
		}

		if notif != nil {
			if err := tx.Create(notif).Error; err != nil {
				return models.NewInternalError(err)
			}
		}

		result.Changed = true
		result.LikeCount = post.LikeCount + 1
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Changed {
		cache.InvalidatePost(ctx, postID)
	}
	return result, nil
}

// Unlike removes the like row, clamp-decrements the counter, and deletes the
// matching Like notification in one transaction. Not-liked is a no-op.
func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) (*LikeResult, error) {
	defer observability.TrackQuery("unlike", "post_likes")()

	result := &LikeResult{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post not found")
			}
			return models.NewInternalError(err)
		}

		del := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.PostLike{})
		if del.Error != nil {
			return models.NewInternalError(del.Error)
		}
		if del.RowsAffected == 0 {
			result.LikeCount = post.LikeCount
			return nil
		}

		// CASE WHEN instead of GREATEST keeps the clamp portable to sqlite.
		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error; err != nil {
			return models.NewInternalError(err)
		}

		if err := tx.Where("sender_id = ? AND post_id = ? AND type = ?",
			userID, postID, models.NotificationLike).
			Delete(&models.Notification{}).Error; err != nil {
			return models.NewInternalError(err)
		}

		result.Changed = true
		result.LikeCount = post.LikeCount - 1
		if result.LikeCount < 0 {
			result.LikeCount = 0
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Changed {
		cache.InvalidatePost(ctx, postID)
	}
	return result, nil
}
