package service

import (
	"context"
	"testing"

	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	searchFn        func(context.Context, string, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	return s.searchFn(ctx, query, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		searchFn:        func(_ context.Context, _ string, _ int) ([]models.User, error) { return nil, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint) (*models.Post, error)
	getByUserIDFn  func(context.Context, uint) ([]models.Post, error)
	listFn         func(context.Context, int, int) ([]models.Post, error)
	isLikedFn      func(context.Context, uint, uint) (bool, error)
	likedPostIDsFn func(context.Context, uint) ([]uint, error)
	likedSetFn     func(context.Context, uint, []uint) (map[uint]bool, error)
	likeFn         func(context.Context, uint, uint, *models.Notification) (*repository.LikeResult, error)
	unlikeFn       func(context.Context, uint, uint) (*repository.LikeResult, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) LikedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.likedPostIDsFn(ctx, userID)
}
func (s *postRepoStub) LikedSet(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	return s.likedSetFn(ctx, userID, postIDs)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint, notif *models.Notification) (*repository.LikeResult, error) {
	return s.likeFn(ctx, userID, postID, notif)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) (*repository.LikeResult, error) {
	return s.unlikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1, Content: "hello"}, nil
		},
		getByUserIDFn:  func(_ context.Context, _ uint) ([]models.Post, error) { return nil, nil },
		listFn:         func(_ context.Context, _, _ int) ([]models.Post, error) { return nil, nil },
		isLikedFn:      func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likedPostIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		likedSetFn: func(_ context.Context, _ uint, _ []uint) (map[uint]bool, error) {
			return map[uint]bool{}, nil
		},
		likeFn: func(_ context.Context, _, _ uint, _ *models.Notification) (*repository.LikeResult, error) {
			return &repository.LikeResult{Changed: true, LikeCount: 1}, nil
		},
		unlikeFn: func(_ context.Context, _, _ uint) (*repository.LikeResult, error) {
			return &repository.LikeResult{Changed: true, LikeCount: 0}, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment, *models.Notification) (int, error)
	listByPostIDFn func(context.Context, uint) ([]models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment, notif *models.Notification) (int, error) {
	return s.createFn(ctx, comment, notif)
}
func (s *commentRepoStub) ListByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostIDFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment, _ *models.Notification) (int, error) {
			c.ID = 1
			return 1, nil
		},
		listByPostIDFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	followFn       func(context.Context, uint, uint, *models.Notification) error
	unfollowFn     func(context.Context, uint, uint) error
	isFollowingFn  func(context.Context, uint, uint) (bool, error)
	followingIDsFn func(context.Context, uint) ([]uint, error)
	followingSetFn func(context.Context, uint, []uint) (map[uint]bool, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followingID uint, notif *models.Notification) error {
	return s.followFn(ctx, followerID, followingID, notif)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followingID uint) error {
	return s.unfollowFn(ctx, followerID, followingID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}
func (s *followRepoStub) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, followerID)
}
func (s *followRepoStub) FollowingSet(ctx context.Context, followerID uint, targetIDs []uint) (map[uint]bool, error) {
	return s.followingSetFn(ctx, followerID, targetIDs)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:      func(_ context.Context, _, _ uint, _ *models.Notification) error { return nil },
		unfollowFn:    func(_ context.Context, _, _ uint) error { return nil },
		isFollowingFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		followingIDsFn: func(_ context.Context, _ uint) ([]uint, error) {
			return nil, nil
		},
		followingSetFn: func(_ context.Context, _ uint, _ []uint) (map[uint]bool, error) {
			return map[uint]bool{}, nil
		},
	}
}

// tokenRepoStub is a stub for repository.RefreshTokenRepository.
type tokenRepoStub struct {
	createFn           func(context.Context, *models.RefreshToken) error
	getByTokenFn       func(context.Context, string) (*models.RefreshToken, error)
	deleteAllForUserFn func(context.Context, uint) error
	deleteExpiredFn    func(context.Context) (int64, error)
}

func (s *tokenRepoStub) Create(ctx context.Context, token *models.RefreshToken) error {
	return s.createFn(ctx, token)
}
func (s *tokenRepoStub) GetByToken(ctx context.Context, raw string) (*models.RefreshToken, error) {
	return s.getByTokenFn(ctx, raw)
}
func (s *tokenRepoStub) DeleteAllForUser(ctx context.Context, userID uint) error {
	return s.deleteAllForUserFn(ctx, userID)
}
func (s *tokenRepoStub) DeleteExpired(ctx context.Context) (int64, error) {
	return s.deleteExpiredFn(ctx)
}

func noopTokenRepo() *tokenRepoStub {
	return &tokenRepoStub{
		createFn:           func(_ context.Context, _ *models.RefreshToken) error { return nil },
		getByTokenFn:       func(_ context.Context, _ string) (*models.RefreshToken, error) { return nil, nil },
		deleteAllForUserFn: func(_ context.Context, _ uint) error { return nil },
		deleteExpiredFn:    func(_ context.Context) (int64, error) { return 0, nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
