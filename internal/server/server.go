// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/quocnhat02092003/thread-app/internal/bootstrap"
	"github.com/quocnhat02092003/thread-app/internal/config"
	"github.com/quocnhat02092003/thread-app/internal/featureflags"
	"github.com/quocnhat02092003/thread-app/internal/middleware"
	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/notifications"
	"github.com/quocnhat02092003/thread-app/internal/repository"
	"github.com/quocnhat02092003/thread-app/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// wireableHub is implemented by every WebSocket hub that can be wired to
// Redis pub/sub and gracefully shut down.
type wireableHub interface {
	Name() string
	StartWiring(ctx context.Context, n *notifications.Notifier) error
	Shutdown(ctx context.Context) error
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	followRepo     repository.FollowRepository
	notifRepo      repository.NotificationRepository
	tokenRepo      repository.RefreshTokenRepository
	flags          *featureflags.Manager
	notifier       *notifications.Notifier
	hub            *notifications.Hub
	postHub        *notifications.PostHub
	hubs           []wireableHub // all hubs for wiring/shutdown iteration
	authService    *service.AuthService
	tokenService   *service.TokenService
	feedService    *service.FeedService
	followService  *service.FollowService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		return nil, fmt.Errorf("runtime initialization failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)

	prom := middleware.InitMetrics("thread-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		followRepo:     followRepo,
		notifRepo:      notifRepo,
		tokenRepo:      tokenRepo,
	}
	server.flags = featureflags.NewManager(cfg.FeatureFlags)
	server.authService = service.NewAuthService(userRepo)
	server.tokenService = service.NewTokenService(cfg, tokenRepo, userRepo)
	server.feedService = service.NewFeedService(postRepo, commentRepo, followRepo, userRepo)
	server.followService = service.NewFollowService(followRepo)

	// The hubs always run; the Redis backplane is layered on top when
	// available so publishes fan out across instances.
	server.notifier = notifications.NewNotifier(redisClient)
	server.hub = notifications.NewHub()
	server.postHub = notifications.NewPostHub()
	server.hubs = []wireableHub{server.hub, server.postHub}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Browser clients carry the access token in a cookie; rewrite it to a
	// bearer header so both client styles share one validation path.
	app.Use(middleware.CookieToken())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh-token", s.RefreshToken)
	auth.Get("/check", middleware.AuthRequired, s.CheckAuth)
	auth.Post("/add-information", middleware.AuthRequired, s.AddInformation)
	auth.Get("/info-user", middleware.AuthRequired, s.InfoUser)
	auth.Post("/logout", middleware.AuthRequired, s.Logout)

	// Feature routes: public reads resolve the viewer opportunistically so
	// liked/following flags can be annotated for signed-in users.
	feature := api.Group("/feature")
	feature.Get("/profile/:username", middleware.OptionalAuth, s.GetProfile)
	feature.Get("/all-posts", middleware.OptionalAuth, s.GetAllPosts)
	feature.Get("/post/:postId", middleware.OptionalAuth, s.GetPostDetail)
	feature.Get("/is-liked-post", middleware.AuthRequired, s.GetLikedPostIDs)
	feature.Get("/following-ids", middleware.AuthRequired, s.GetFollowingIDs)
	feature.Post("/follow/:userId", middleware.AuthRequired, s.FollowUser)
	feature.Delete("/follow/:userId", middleware.AuthRequired, s.UnfollowUser)

	// Post routes
	post := api.Group("/post", middleware.AuthRequired)
	post.Post("/upload", s.UploadPost)
	post.Post("/like/:postId", s.LikePost)
	post.Delete("/unlike/:postId", s.UnlikePost)
	post.Post("/comment/:postId", s.CommentPost)

	// Notification routes
	notifs := api.Group("/notifications", middleware.AuthRequired)
	notifs.Get("/get-notifications", s.GetNotifications)
	notifs.Put("/mark-as-read", s.MarkNotificationsRead)

	// Search
	api.Post("/search/:username", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 10, time.Minute, "search"), s.SearchUsers)

	// Account settings
	settings := api.Group("/setting-account", middleware.AuthRequired)
	settings.Put("/update-data", s.UpdateAccountData)
	settings.Put("/change-password", s.ChangePassword)

	// Websocket endpoints. The kill switch runs after auth so percentage
	// rollouts can bucket by user.
	ws := api.Group("/ws")
	ws.Get("/notifications", middleware.WebSocketAuthRequired, s.realtimeKillSwitch(), s.NotificationsWebSocket())
	ws.Get("/posts", middleware.WebSocketOptionalAuth, s.realtimeKillSwitch(), s.PostsWebSocket())
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is optional: realtime falls back to in-process delivery.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "Thread API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	// Wire all hubs to the Redis subscriber if a broker is available
	if s.redis != nil {
		for _, h := range s.hubs {
			h := h
			go func() {
				if err := h.StartWiring(s.shutdownCtx, s.notifier); err != nil {
					log.Printf("failed to start %s wiring: %v", h.Name(), err)
				}
			}()
		}
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Cancel the server-scoped context to stop all wiring goroutines
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	// Shutdown the HTTP/WS server
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Close WebSocket connections gracefully
	for _, h := range s.hubs {
		if err := h.Shutdown(ctx); err != nil {
			log.Printf("error shutting down %s: %v", h.Name(), err)
		}
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
