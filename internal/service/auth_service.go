package service

import (
	"context"

	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/repository"
	"github.com/quocnhat02092003/thread-app/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService implements account registration, login and settings rules.
type AuthService struct {
	userRepo repository.UserRepository
}

// CompleteProfileInput is the one-shot profile completion payload.
type CompleteProfileInput struct {
	UserID       uint
	DisplayName  string
	AvatarURL    string
	Introduction string
	AnotherPath  string
}

// UpdateAccountInput is the settings update payload.
type UpdateAccountInput struct {
	UserID       uint
	DisplayName  string
	Username     string
	AvatarURL    string
	Introduction string
}

// ChangePasswordInput carries the three password fields from settings.
type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new account with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Username đã tồn tại.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{Username: username, Password: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost the race against a concurrent registration.
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "VALIDATION_ERROR" {
			return nil, models.NewValidationError("Username đã tồn tại.")
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the account.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Tài khoản không hợp lệ")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Sai mật khẩu")
	}
	return user, nil
}

// CompleteProfile fills in the post-registration profile exactly once.
func (s *AuthService) CompleteProfile(ctx context.Context, in CompleteProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !user.NeedMoreInfoUser {
		return nil, models.NewValidationError("Bạn đã cập nhật thông tin trước đó.")
	}

	user.DisplayName = in.DisplayName
	user.AvatarURL = in.AvatarURL
	user.Introduction = in.Introduction
	user.AnotherPath = in.AnotherPath
	user.NeedMoreInfoUser = false

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAccount applies the settings form. Username changes must not collide
// with another account.
func (s *AuthService) UpdateAccount(ctx context.Context, in UpdateAccountInput) (*models.User, error) {
	if in.DisplayName == "" || in.Username == "" {
		return nil, models.NewValidationError("Display name and username cannot be empty")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, err
		}
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, models.NewValidationError("Username already exists")
		}
	}

	user.DisplayName = in.DisplayName
	user.Username = in.Username
	user.AvatarURL = in.AvatarURL
	user.Introduction = in.Introduction

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and rotates the hash.
func (s *AuthService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if in.CurrentPassword == "" || in.NewPassword == "" || in.ConfirmPassword == "" {
		return models.NewValidationError("Vui lòng nhập đầy đủ thông tin mật khẩu!")
	}
	if in.CurrentPassword == in.NewPassword {
		return models.NewValidationError("Mật khẩu mới không được trùng với mật khẩu hiện tại")
	}
	if in.NewPassword != in.ConfirmPassword {
		return models.NewValidationError("Mật khẩu xác nhận không khớp")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		return models.NewValidationError("Mật khẩu hiện tại không đúng")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hash)

	return s.userRepo.Update(ctx, user)
}
