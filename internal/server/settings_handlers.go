package server

import (
	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateAccountRequest struct {
	DisplayName  string `json:"displayName"`
	Username     string `json:"username"`
	AvatarURL    string `json:"avatarURL"`
	Introduction string `json:"introduction"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UpdateAccountData edits the caller's profile fields. A username change is
// validated and checked against other accounts.
func (s *Server) UpdateAccountData(c *fiber.Ctx) error {
	var req updateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, err := s.authService.UpdateAccount(c.UserContext(), service.UpdateAccountInput{
		UserID:       currentUserID(c),
		DisplayName:  req.DisplayName,
		Username:     req.Username,
		AvatarURL:    req.AvatarURL,
		Introduction: req.Introduction,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Update user data successfully"})
}

// ChangePassword rotates the caller's password after verifying the current
// one. Every refresh token is revoked so other sessions must sign in again.
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Vui lòng nhập đầy đủ thông tin mật khẩu!"))
	}

	ctx := c.UserContext()
	userID := currentUserID(c)

	if err := s.authService.ChangePassword(ctx, service.ChangePasswordInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		return respondServiceError(c, err)
	}

	if err := s.tokenService.RevokeAll(ctx, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Đổi mật khẩu thành công"})
}
