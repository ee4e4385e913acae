package service

import (
	"context"
	"testing"
	"time"

	"github.com/quocnhat02092003/thread-app/internal/config"
	"github.com/quocnhat02092003/thread-app/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret-that-is-long-enough!",
		JWTIssuer:   "thread-server",
		JWTAudience: "thread-client",
	}
}

func TestTokenService_GenerateAccessToken(t *testing.T) {
	t.Parallel()

	cfg := testTokenConfig()
	svc := NewTokenService(cfg, noopTokenRepo(), noopUserRepo())

	signed, err := svc.GenerateAccessToken(&models.User{ID: 42, Username: "nhat"})
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(_ *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithIssuer(cfg.JWTIssuer), jwt.WithAudience(cfg.JWTAudience), jwt.WithExpirationRequired())
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "nhat", claims["username"])
	assert.Equal(t, "User", claims["role"])
	assert.NotEmpty(t, claims["jti"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(AccessTokenTTL), exp.Time, time.Minute)
}

func TestTokenService_GenerateAccessToken_AdminRole(t *testing.T) {
	t.Parallel()

	cfg := testTokenConfig()
	svc := NewTokenService(cfg, noopTokenRepo(), noopUserRepo())

	signed, err := svc.GenerateAccessToken(&models.User{ID: 1, Username: "root", IsAdmin: true})
	require.NoError(t, err)

	token, _ := jwt.Parse(signed, func(_ *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	assert.Equal(t, "Admin", token.Claims.(jwt.MapClaims)["role"])
}

func TestTokenService_GenerateRefreshToken(t *testing.T) {
	t.Parallel()

	var stored *models.RefreshToken
	tokenRepo := noopTokenRepo()
	tokenRepo.createFn = func(_ context.Context, token *models.RefreshToken) error {
		stored = token
		return nil
	}

	svc := NewTokenService(testTokenConfig(), tokenRepo, noopUserRepo())
	token, err := svc.GenerateRefreshToken(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, uint(7), token.UserID)
	assert.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().Add(RefreshTokenTTL), token.ExpiryDate, time.Minute)
}

func TestTokenService_Refresh(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := testTokenConfig()

	t.Run("success reissues an access token", func(t *testing.T) {
		t.Parallel()
		tokenRepo := noopTokenRepo()
		tokenRepo.getByTokenFn = func(_ context.Context, raw string) (*models.RefreshToken, error) {
			return &models.RefreshToken{Token: raw, UserID: 3, ExpiryDate: time.Now().Add(time.Hour)}, nil
		}
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "nhat"}, nil
		}

		svc := NewTokenService(cfg, tokenRepo, userRepo)
		signed, err := svc.Refresh(ctx, "opaque")
		require.NoError(t, err)

		token, err := jwt.Parse(signed, func(_ *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "3", token.Claims.(jwt.MapClaims)["sub"])
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()
		svc := NewTokenService(cfg, noopTokenRepo(), noopUserRepo())
		_, err := svc.Refresh(ctx, "missing")
		assertUnauthorizedError(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		tokenRepo := noopTokenRepo()
		tokenRepo.getByTokenFn = func(_ context.Context, raw string) (*models.RefreshToken, error) {
			return &models.RefreshToken{Token: raw, UserID: 3, ExpiryDate: time.Now().Add(-time.Hour)}, nil
		}

		svc := NewTokenService(cfg, tokenRepo, noopUserRepo())
		_, err := svc.Refresh(ctx, "expired")
		assertUnauthorizedError(t, err)
	})

	t.Run("revoked token", func(t *testing.T) {
		t.Parallel()
		tokenRepo := noopTokenRepo()
		tokenRepo.getByTokenFn = func(_ context.Context, raw string) (*models.RefreshToken, error) {
			return &models.RefreshToken{Token: raw, UserID: 3, ExpiryDate: time.Now().Add(time.Hour), IsRevoked: true}, nil
		}

		svc := NewTokenService(cfg, tokenRepo, noopUserRepo())
		_, err := svc.Refresh(ctx, "revoked")
		assertUnauthorizedError(t, err)
	})

	t.Run("deleted user", func(t *testing.T) {
		t.Parallel()
		tokenRepo := noopTokenRepo()
		tokenRepo.getByTokenFn = func(_ context.Context, raw string) (*models.RefreshToken, error) {
			return &models.RefreshToken{Token: raw, UserID: 3, ExpiryDate: time.Now().Add(time.Hour)}, nil
		}
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User not found")
		}

		svc := NewTokenService(cfg, tokenRepo, userRepo)
		_, err := svc.Refresh(ctx, "orphan")
		assertUnauthorizedError(t, err)
	})
}
