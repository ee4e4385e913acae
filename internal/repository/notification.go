package repository

import (
	"context"

	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/observability"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations.
type NotificationRepository interface {
	Create(ctx context.Context, notif *models.Notification) error
	ListByReceiver(ctx context.Context, receiverID uint) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, receiverID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *models.Notification) error {
	defer observability.TrackQuery("create", "notifications")()

	if err := r.db.WithContext(ctx).Create(notif).Error; err != nil {
		return models.NewInternalError(err)
	}
	observability.NotificationsPublished.WithLabelValues(string(notif.Type)).Inc()
	return nil
}

func (r *notificationRepository) ListByReceiver(ctx context.Context, receiverID uint) ([]models.Notification, error) {
	defer observability.TrackQuery("list_by_receiver", "notifications")()

	var notifs []models.Notification
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&notifs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifs, nil
}

// MarkAllRead flips every unread notification for the receiver and returns
// how many rows changed.
func (r *notificationRepository) MarkAllRead(ctx context.Context, receiverID uint) (int64, error) {
	defer observability.TrackQuery("mark_all_read", "notifications")()

	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
