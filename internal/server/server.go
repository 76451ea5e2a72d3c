// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"math/rand"
	"time"

	"resonate/internal/config"
	"resonate/internal/featureflags"
	"resonate/internal/middleware"
	"resonate/internal/repository"
	"resonate/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	followRepo     repository.FollowRepository
	audioRepo      repository.AudioRepository
	historyRepo    repository.HistoryRepository
	playlistRepo   repository.PlaylistRepository
	curatedRepo    repository.CuratedPlaylistRepository
	featureFlags   *featureflags.Manager

	userService           *service.UserService
	audioService          *service.AudioService
	followService         *service.FollowService
	historyService        *service.HistoryService
	recommendationService *service.RecommendationService
	playlistService       *service.PlaylistService
}

// NewServerWithDeps creates a Server using already-initialized dependencies,
// typically established by the bootstrap layer (which may also seed).
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("resonate-api"),
		userRepo:       repository.NewUserRepository(db),
		followRepo:     repository.NewFollowRepository(db),
		audioRepo:      repository.NewAudioRepository(db),
		historyRepo:    repository.NewHistoryRepository(db),
		playlistRepo:   repository.NewPlaylistRepository(db),
		curatedRepo:    repository.NewCuratedPlaylistRepository(db),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}

	server.userService = service.NewUserService(server.userRepo)
	server.audioService = service.NewAudioService(server.audioRepo)
	server.followService = service.NewFollowService(server.followRepo, server.userRepo)
	server.historyService = service.NewHistoryService(server.historyRepo, server.audioRepo)
	server.recommendationService = service.NewRecommendationService(server.audioRepo, server.historyService, server.featureFlags)
	server.playlistService = service.NewPlaylistService(
		server.playlistRepo,
		server.curatedRepo,
		server.historyService,
		server.featureFlags,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

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

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Distributed tracing
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
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
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Resonate Backend Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/me", middleware.AuthRequired, s.Me)
	auth.Post("/update-profile", middleware.AuthRequired, s.UpdateProfile)

	// Profile routes. Recommendations personalize when a valid token is
	// present but stay public, so they take optional auth.
	profile := api.Group("/profile")
	profile.Get("/recommended", middleware.AuthOptional, s.GetRecommended)
	profile.Get("/auto-generated-playlist", middleware.AuthRequired, s.GetAutoGeneratedPlaylist)
	profile.Post("/update-follower/:profileId", middleware.AuthRequired, s.ToggleFollow)
	profile.Get("/is-following/:profileId", middleware.AuthRequired, s.IsFollowing)
	profile.Get("/followers", middleware.AuthRequired, s.GetMyFollowers)
	profile.Get("/followings", middleware.AuthRequired, s.GetMyFollowings)
	profile.Get("/followers/:profileId", s.GetPublicFollowers)
	profile.Get("/uploads", middleware.AuthRequired, s.GetMyUploads)
	profile.Get("/uploads/:profileId", s.GetPublicUploads)
	profile.Get("/info/:profileId", s.GetPublicProfile)
	profile.Get("/playlist/:profileId", s.GetPublicPlaylists)

	// History routes
	history := api.Group("/history", middleware.AuthRequired)
	history.Post("/", s.RecordHistory)
	history.Get("/", s.GetHistory)

	// Audio routes
	audio := api.Group("/audio", middleware.AuthRequired)
	audio.Post("/", s.CreateAudio)
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
		// The API degrades without Redis (no cache, fail-open rate limits)
		// but stays serviceable, so a missing client is reported, not fatal.
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

// Shutdown closes the server's backing resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
