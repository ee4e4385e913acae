// Package service holds the business rules between the HTTP handlers and the
// repositories.
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"time"

	"github.com/quocnhat02092003/thread-app/internal/config"
	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// AccessTokenTTL bounds the short-lived JWT and its cookie.
	AccessTokenTTL = time.Hour
	// RefreshTokenTTL bounds the opaque refresh token row and its cookie.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenService issues access tokens and manages refresh token rows.
type TokenService struct {
	cfg       *config.Config
	tokenRepo repository.RefreshTokenRepository
	userRepo  repository.UserRepository
}

// NewTokenService creates a new TokenService.
func NewTokenService(
	cfg *config.Config,
	tokenRepo repository.RefreshTokenRepository,
	userRepo repository.UserRepository,
) *TokenService {
	return &TokenService{cfg: cfg, tokenRepo: tokenRepo, userRepo: userRepo}
}

// GenerateAccessToken signs a short-lived HS256 token for the user.
func (s *TokenService) GenerateAccessToken(user *models.User) (string, error) {
	role := "User"
	if user.IsAdmin {
		role = "Admin"
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"role":     role,
		"iss":      s.cfg.JWTIssuer,
		"aud":      s.cfg.JWTAudience,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(AccessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

// GenerateRefreshToken creates and persists an opaque refresh token row.
func (s *TokenService) GenerateRefreshToken(ctx context.Context, userID uint) (*models.RefreshToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, models.NewInternalError(err)
	}

	token := &models.RefreshToken{
		Token:      base64.RawURLEncoding.EncodeToString(raw),
		ExpiryDate: time.Now().Add(RefreshTokenTTL),
		UserID:     userID,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Refresh exchanges a stored refresh token for a fresh access token.
func (s *TokenService) Refresh(ctx context.Context, rawToken string) (string, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, rawToken)
	if err != nil {
		return "", err
	}
	if stored == nil || !stored.Valid(time.Now()) {
		return "", models.NewUnauthorizedError("RefreshToken không hợp lệ hoặc đã hết hạn")
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return "", models.NewUnauthorizedError("Người dùng không tồn tại")
	}

	return s.GenerateAccessToken(user)
}

// RevokeAll deletes every refresh token the user holds.
func (s *TokenService) RevokeAll(ctx context.Context, userID uint) error {
	return s.tokenRepo.DeleteAllForUser(ctx, userID)
}
