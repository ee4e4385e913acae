package server

import (
	"errors"
	"strconv"

	"github.com/quocnhat02092003/thread-app/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that a helper already wrote the error response
// and the handler should just return nil.
var errResponseWritten = errors.New("response written")

// currentUserID reads the authenticated user ID placed in locals by the auth
// middleware. Zero means anonymous.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// parseID parses a numeric route parameter, writing a 400 itself on failure.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param+" parameter"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePagination reads the _page/_limit query parameters, defaulting to the
// first page of ten. Non-numeric values are a 400.
func parsePagination(c *fiber.Ctx) (page, limit int, err error) {
	page, limit = 1, 10

	if raw := c.Query("_page"); raw != "" {
		page, err = strconv.Atoi(raw)
	}
	if err == nil {
		if raw := c.Query("_limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
		}
	}
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid page or limit parameters."))
		return 0, 0, errResponseWritten
	}
	return page, limit, nil
}

// respondServiceError maps an AppError from the service layer onto the wire.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}
