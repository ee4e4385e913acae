package repository

import (
	"context"
	"errors"

	"github.com/quocnhat02092003/thread-app/internal/cache"
	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment, notif *models.Notification) (commentCount int, err error)
	ListByPostID(ctx context.Context, postID uint) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment and increments the post's denormalized counter
// in one transaction. A reply must reference a parent on the same post. When
// notif is non-nil it joins the transaction.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment, notif *models.Notification) (int, error) {
	defer observability.TrackQuery("create", "comments")()

	var commentCount int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, comment.PostID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post not found")
			}
			return models.NewInternalError(err)
		}

		if comment.ParentCommentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, *comment.ParentCommentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.NewNotFoundError("Parent comment not found")
				}
				return models.NewInternalError(err)
			}
			if parent.PostID != comment.PostID {
				return models.NewValidationError("Parent comment belongs to another post")
			}
		}

		if err := tx.Create(comment).Error; err != nil {
			return models.NewInternalError(err)
		}

		if err := tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
			return models.NewInternalError(err)
		}

		if notif != nil {
			if err := tx.Create(notif).Error; err != nil {
				return models.NewInternalError(err)
			}
		}

		commentCount = post.CommentCount + 1
		return nil
	})
	if err != nil {
		return 0, err
	}

	cache.InvalidatePost(ctx, comment.PostID)
	return commentCount, nil
}

func (r *commentRepository) ListByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	defer observability.TrackQuery("list_by_post_id", "comments")()

	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
