// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"hiredev/internal/cache"
	"hiredev/internal/config"
	"hiredev/internal/database"
	"hiredev/internal/mail"
	"hiredev/internal/middleware"
	"hiredev/internal/models"
	"hiredev/internal/repository"
	"hiredev/internal/storage"
	"hiredev/internal/token"

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

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	issuer         *token.Issuer
	mailer         mail.Mailer
	storage        storage.ObjectStorage
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	projectRepo    repository.ProjectRepository
	bidRepo        repository.BidRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	minioStore, err := storage.NewMinioStorage(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("object storage init failed: %w", err)
	}
	// Keep the interface nil when object storage is not configured so upload
	// handlers can detect it.
	var store storage.ObjectStorage
	if minioStore != nil {
		store = minioStore
	}

	return NewServerWithDeps(cfg, db, redisClient, store), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis first.
func NewServerWithDeps(
	cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.ObjectStorage,
) *Server {
	issuer := token.NewIssuer(
		cfg.JWTSecret,
		time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute,
		time.Duration(cfg.RefreshTokenTTLHours)*time.Hour,
		time.Duration(cfg.VerifyTokenTTLHours)*time.Hour,
	)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("hiredev-api"),
		issuer:         issuer,
		mailer:         mail.NewMailer(cfg),
		storage:        store,
		userRepo:       repository.NewUserRepository(db),
		profileRepo:    repository.NewProfileRepository(db),
		projectRepo:    repository.NewProjectRepository(db),
		bidRepo:        repository.NewBidRepository(db),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
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

	authRequired := middleware.RequireAuth(s.issuer)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register/client", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.RegisterClient)
	auth.Post("/register/developer", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.RegisterDeveloper)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/token/refresh", s.RefreshToken)
	auth.Post("/logout", authRequired, s.Logout)
	auth.Get("/verify-email/:uid/:verifyToken", s.VerifyEmail)

	// Enum catalogs for building forms
	meta := api.Group("/meta")
	meta.Get("/categories", s.GetCategories)
	meta.Get("/types", s.GetTypes)
	meta.Get("/progress", s.GetProgressStates)
	meta.Get("/availability", s.GetAvailabilityStates)
	meta.Get("/roles", s.GetDeveloperRoles)

	// User account routes
	users := api.Group("/users", authRequired)
	users.Get("/:id", s.GetUser)
	users.Patch("/:id", s.UpdateUser)
	users.Delete("/:id", s.DeleteUser)

	// Developer directory and profiles. Reads require a logged-in caller,
	// mutations additionally require the developer role.
	developers := api.Group("/developers", authRequired, middleware.RequireDeveloperOrReadOnly())
	developers.Get("/", s.GetDevelopers)
	developers.Get("/profiles", s.GetDeveloperProfiles)
	developers.Post("/me/resume", s.UploadResume)
	developers.Get("/:id/profile", s.GetDeveloperProfile)
	developers.Post("/:id/profile", s.CreateDeveloperProfile)
	developers.Patch("/:id/profile", s.UpdateDeveloperProfile)
	developers.Delete("/:id/profile", s.DeleteDeveloperProfile)

	// Project routes. Reads are ownership-scoped to the owning client, so a
	// foreign slug reads as not found; writes require the client role.
	projects := api.Group("/projects", authRequired)
	projects.Get("/", s.GetProjects)
	projects.Post("/", middleware.RequireClient(), s.CreateProject)
	projects.Get("/me", middleware.RequireClient(), s.GetMyProjects)
	projects.Get("/:slug/bids", s.GetProjectBids)
	projects.Post("/:slug/file", middleware.RequireClient(), s.UploadProjectFile)
	projects.Get("/:slug", s.GetProject)
	projects.Patch("/:slug", middleware.RequireClient(), s.UpdateProject)
	projects.Delete("/:slug", middleware.RequireClient(), s.DeleteProject)

	// Bid routes. Creation and edits require the developer role; the status
	// transition endpoint belongs to the project's client.
	bids := api.Group("/bids", authRequired)
	bids.Get("/", s.GetMyBids)
	bids.Post("/", middleware.RequireDeveloper(), s.CreateBid)
	bids.Patch("/:slug/status", s.UpdateBidStatus)
	bids.Post("/:slug/file", middleware.RequireDeveloper(), s.UploadBidFile)
	bids.Get("/:slug", s.GetBid)
	bids.Patch("/:slug", middleware.RequireDeveloper(), s.UpdateBid)
	bids.Delete("/:slug", middleware.RequireDeveloper(), s.DeleteBid)
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
	app := fiber.New(fiber.Config{
		AppName:   "HireDev API",
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

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
