package repository

import (
	"context"
	"errors"

	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/observability"

	"gorm.io/gorm"
)

// RefreshTokenRepository defines the interface for refresh token persistence.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	DeleteAllForUser(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository.
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	defer observability.TrackQuery("create", "refresh_tokens")()

	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByToken returns (nil, nil) when the token is unknown.
func (r *refreshTokenRepository) GetByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	defer observability.TrackQuery("get_by_token", "refresh_tokens")()

	var rt models.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &rt, nil
}

// DeleteAllForUser drops every refresh token the user holds; logout uses this
// so stolen refresh tokens die with the session.
func (r *refreshTokenRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	defer observability.TrackQuery("delete_all_for_user", "refresh_tokens")()

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteExpired removes tokens past their expiry. Run from a maintenance path,
// not the request path.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("delete_expired", "refresh_tokens")()

	res := r.db.WithContext(ctx).
		Where("expiry_date < CURRENT_TIMESTAMP").
		Delete(&models.RefreshToken{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
