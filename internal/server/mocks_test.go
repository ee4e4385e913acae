package server

import (
	"context"

	"github.com/quocnhat02092003/thread-app/internal/config"
	"github.com/quocnhat02092003/thread-app/internal/featureflags"
	"github.com/quocnhat02092003/thread-app/internal/middleware"
	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/notifications"
	"github.com/quocnhat02092003/thread-app/internal/repository"
	"github.com/quocnhat02092003/thread-app/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Post, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) LikedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockPostRepository) LikedSet(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	args := m.Called(ctx, userID, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]bool), args.Error(1)
}

func (m *MockPostRepository) Like(ctx context.Context, userID, postID uint, notif *models.Notification) (*repository.LikeResult, error) {
	args := m.Called(ctx, userID, postID, notif)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.LikeResult), args.Error(1)
}

func (m *MockPostRepository) Unlike(ctx context.Context, userID, postID uint) (*repository.LikeResult, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.LikeResult), args.Error(1)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment, notif *models.Notification) (int, error) {
	args := m.Called(ctx, comment, notif)
	return args.Int(0), args.Error(1)
}

func (m *MockCommentRepository) ListByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

// MockFollowRepository is a mock of the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Follow(ctx context.Context, followerID, followingID uint, notif *models.Notification) error {
	args := m.Called(ctx, followerID, followingID, notif)
	return args.Error(0)
}

func (m *MockFollowRepository) Unfollow(ctx context.Context, followerID, followingID uint) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	args := m.Called(ctx, followerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockFollowRepository) FollowingSet(ctx context.Context, followerID uint, targetIDs []uint) (map[uint]bool, error) {
	args := m.Called(ctx, followerID, targetIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]bool), args.Error(1)
}

// MockNotificationRepository is a mock of the NotificationRepository interface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notif *models.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByReceiver(ctx context.Context, receiverID uint) ([]models.Notification, error) {
	args := m.Called(ctx, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, receiverID uint) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRefreshTokenRepository is a mock of the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) GetByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// testMocks bundles one mock per repository.
type testMocks struct {
	users    *MockUserRepository
	posts    *MockPostRepository
	comments *MockCommentRepository
	follows  *MockFollowRepository
	notifs   *MockNotificationRepository
	tokens   *MockRefreshTokenRepository
}

// newTestServer wires a Server onto fresh mocks. Redis stays nil so realtime
// pushes go through the in-process hubs.
func newTestServer() (*Server, *testMocks) {
	cfg := &config.Config{
		JWTSecret:   "test-secret-that-is-long-enough!",
		JWTIssuer:   "thread-server",
		JWTAudience: "thread-client",
	}
	middleware.InitMiddleware(cfg)

	m := &testMocks{
		users:    new(MockUserRepository),
		posts:    new(MockPostRepository),
		comments: new(MockCommentRepository),
		follows:  new(MockFollowRepository),
		notifs:   new(MockNotificationRepository),
		tokens:   new(MockRefreshTokenRepository),
	}

	s := &Server{
		config:      cfg,
		userRepo:    m.users,
		postRepo:    m.posts,
		commentRepo: m.comments,
		followRepo:  m.follows,
		notifRepo:   m.notifs,
		tokenRepo:   m.tokens,
		flags:       featureflags.NewManager(""),
		notifier:    notifications.NewNotifier(nil),
		hub:         notifications.NewHub(),
		postHub:     notifications.NewPostHub(),
	}
	s.hubs = []wireableHub{s.hub, s.postHub}
	s.authService = service.NewAuthService(m.users)
	s.tokenService = service.NewTokenService(cfg, m.tokens, m.users)
	s.feedService = service.NewFeedService(m.posts, m.comments, m.follows, m.users)
	s.followService = service.NewFollowService(m.follows)

	return s, m
}

// asUser stands in for the auth middleware in handler tests.
func asUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}
