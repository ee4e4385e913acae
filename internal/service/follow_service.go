package service

import (
	"context"

	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/repository"
)

// FollowService implements the follow/unfollow rules. Target existence and
// duplicate-edge checks live in the repository transaction.
type FollowService struct {
	followRepo repository.FollowRepository
}

// NewFollowService creates a new FollowService.
func NewFollowService(followRepo repository.FollowRepository) *FollowService {
	return &FollowService{followRepo: followRepo}
}

// Follow creates the edge, bumps the target's follower counter and stores the
// Follow notification in one transaction. Returns the notification so the
// handler can push it to the target.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uint) (*models.Notification, error) {
	if followerID == targetID {
		return nil, models.NewValidationError("You cannot follow yourself.")
	}

	notif := &models.Notification{
		SenderID:   followerID,
		ReceiverID: targetID,
		Type:       models.NotificationFollow,
		Content:    followNotificationContent,
	}

	if err := s.followRepo.Follow(ctx, followerID, targetID, notif); err != nil {
		return nil, err
	}
	return notif, nil
}

// Unfollow removes the edge, clamp-decrements the follower counter and
// deletes the stored Follow notification.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("You cannot follow yourself.")
	}
	return s.followRepo.Unfollow(ctx, followerID, targetID)
}

// FollowingIDs lists the IDs the user follows.
func (s *FollowService) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	return s.followRepo.FollowingIDs(ctx, followerID)
}
