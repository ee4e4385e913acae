package server

import (
	"context"

	"github.com/quocnhat02092003/thread-app/internal/middleware"
	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/notifications"
)

// Realtime pushes are fire-and-forget: the durable notification row is the
// source of truth and a lost push is never retried. With Redis present the
// event travels through pub/sub so every instance's hub sees it; without
// Redis it goes straight to the local hub.

// pushNotification delivers a stored notification to the receiver's
// websocket channel.
func (s *Server) pushNotification(ctx context.Context, notif *models.Notification, sender *models.User) {
	if notif == nil {
		return
	}
	payload := notifications.NewNotificationEvent(notif.AsView(sender)).Encode()
	if payload == "" {
		return
	}

	if s.redis != nil {
		if err := s.notifier.PublishUser(ctx, notif.ReceiverID, payload); err != nil {
			middleware.Logger.WarnContext(ctx, "notification publish failed",
				"receiver_id", notif.ReceiverID, "error", err)
		}
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(notif.ReceiverID, payload)
	}
}

// pushPostEvent delivers an event to everyone watching a post.
func (s *Server) pushPostEvent(ctx context.Context, postID uint, event notifications.Event) {
	payload := event.Encode()
	if payload == "" {
		return
	}

	if s.redis != nil {
		if err := s.notifier.PublishPost(ctx, postID, payload); err != nil {
			middleware.Logger.WarnContext(ctx, "post event publish failed",
				"post_id", postID, "event_type", event.Type, "error", err)
		}
		return
	}
	if s.postHub != nil {
		s.postHub.BroadcastPost(postID, payload)
	}
}
