package server

import (
	"github.com/gofiber/fiber/v2"
)

// SearchUsers matches usernames on a case-insensitive substring.
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	profiles, err := s.feedService.SearchUsers(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profiles)
}
