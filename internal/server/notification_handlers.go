package server

import (
	"github.com/quocnhat02092003/thread-app/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications lists the caller's notifications, newest first, each with
// the sender's public projection.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	notifs, err := s.notifRepo.ListByReceiver(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	views := make([]models.NotificationView, len(notifs))
	for i := range notifs {
		views[i] = notifs[i].AsView(&notifs[i].Sender)
	}
	return c.JSON(views)
}

// MarkNotificationsRead flags every unread notification as read. With nothing
// to flip it reports 404, matching the API contract.
func (s *Server) MarkNotificationsRead(c *fiber.Ctx) error {
	changed, err := s.notifRepo.MarkAllRead(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	if changed == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("No notifications found."))
	}

	return c.JSON(fiber.Map{"message": "Notification marked as read."})
}
