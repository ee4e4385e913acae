package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// realtimeKillSwitch refuses WebSocket upgrades while the disable_realtime
// flag is set, so operators can drain connections without a redeploy.
// Percentage values drain gradually by user bucket.
func (s *Server) realtimeKillSwitch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(uint)
		if s.flags.Enabled("disable_realtime", userID) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Realtime is temporarily unavailable.",
			})
		}
		return c.Next()
	}
}

// NotificationsWebSocket upgrades the connection and attaches it to the
// per-user notification hub. Requires an authenticated user.
func (s *Server) NotificationsWebSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket notifications: failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}

// PostsWebSocket upgrades the connection and attaches it to the post-watch
// hub. Anonymous connections are allowed; the client drives membership with
// join_post/leave_post messages.
func (s *Server) PostsWebSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		var userID uint
		if v, ok := conn.Locals("userID").(uint); ok {
			userID = v
		}

		client, err := s.postHub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket posts: failed to register connection: %v", err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
