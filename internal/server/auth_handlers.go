package server

import (
	"fmt"
	"time"

	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/service"

	"github.com/gofiber/fiber/v2"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type informationRequest struct {
	DisplayName  string `json:"displayName"`
	AvatarURL    string `json:"avatarURL"`
	Introduction string `json:"introduction"`
	AnotherPath  string `json:"anotherPath"`
}

// setAuthCookies writes both token cookies. The access token cookie carries
// the JWT for one hour; the refresh cookie carries the opaque rotation token
// for seven days. Both are HttpOnly so scripts never see them.
func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "accessToken",
		Value:    accessToken,
		Expires:  time.Now().Add(service.AccessTokenTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	if refreshToken != "" {
		c.Cookie(&fiber.Cookie{
			Name:     "refreshToken",
			Value:    refreshToken,
			Expires:  time.Now().Add(service.RefreshTokenTTL),
			HTTPOnly: true,
			Secure:   true,
			SameSite: fiber.CookieSameSiteStrictMode,
		})
	}
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{"accessToken", "refreshToken"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  expired,
			HTTPOnly: true,
			Secure:   true,
			SameSite: fiber.CookieSameSiteStrictMode,
		})
	}
}

// Register creates a new account from a username and password.
func (s *Server) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Đăng ký thành công tài khoản %s", user.Username),
	})
}

// Login verifies credentials and issues both token cookies.
func (s *Server) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ctx := c.UserContext()
	user, err := s.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	accessToken, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return respondServiceError(c, err)
	}
	refreshToken, err := s.tokenService.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	setAuthCookies(c, accessToken, refreshToken.Token)

	return c.JSON(fiber.Map{
		"message":          "Đăng nhập thành công",
		"needMoreInfoUser": user.NeedMoreInfoUser,
		"username":         user.Username,
		"id":               user.ID,
	})
}

// RefreshToken exchanges the refresh cookie for a fresh access token.
func (s *Server) RefreshToken(c *fiber.Ctx) error {
	raw := c.Cookies("refreshToken")
	if raw == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Không tìm thấy refreshToken"))
	}

	accessToken, err := s.tokenService.Refresh(c.UserContext(), raw)
	if err != nil {
		return respondServiceError(c, err)
	}

	setAuthCookies(c, accessToken, "")

	return c.JSON(fiber.Map{"accessToken": accessToken})
}

// CheckAuth confirms the caller's access token is valid.
func (s *Server) CheckAuth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"isAuthenticated": true})
}

// AddInformation completes the profile after first login. It only works once;
// afterwards profile edits go through the settings endpoints.
func (s *Server) AddInformation(c *fiber.Ctx) error {
	var req informationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, err := s.authService.CompleteProfile(c.UserContext(), service.CompleteProfileInput{
		UserID:       currentUserID(c),
		DisplayName:  req.DisplayName,
		AvatarURL:    req.AvatarURL,
		Introduction: req.Introduction,
		AnotherPath:  req.AnotherPath,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Cập nhật hồ sơ thành công."})
}

// InfoUser returns the caller's own account record.
func (s *Server) InfoUser(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":               user.ID,
		"username":         user.Username,
		"displayName":      user.DisplayName,
		"avatarURL":        user.AvatarURL,
		"introduction":     user.Introduction,
		"anotherPath":      user.AnotherPath,
		"follower":         user.Follower,
		"verified":         user.Verified,
		"createdAt":        user.CreatedAt,
		"needMoreInfoUser": user.NeedMoreInfoUser,
	})
}

// Logout revokes every refresh token for the user and clears both cookies.
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.tokenService.RevokeAll(c.UserContext(), currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}

	clearAuthCookies(c)

	return c.JSON(fiber.Map{"message": "Đăng xuất thành công."})
}
