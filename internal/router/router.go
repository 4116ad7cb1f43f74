package router

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/tastytalk/admin-backend/internal/handlers"
	"github.com/tastytalk/admin-backend/internal/middleware"
	"github.com/tastytalk/admin-backend/internal/repositories"
	"github.com/tastytalk/admin-backend/internal/services"
	"github.com/tastytalk/admin-backend/internal/views"
	"github.com/tastytalk/admin-backend/pkg/config"
	"github.com/tastytalk/admin-backend/pkg/firebase"
	"github.com/tastytalk/admin-backend/pkg/logger"
	"github.com/tastytalk/admin-backend/pkg/media"
	"github.com/tastytalk/admin-backend/pkg/metrics"
	"github.com/tastytalk/admin-backend/pkg/validators"
)

// Repositories are the stores the admin reads and writes
type Repositories struct {
	Dishes        repositories.DishRepository
	Users         repositories.UserRepository
	Feedback      repositories.FeedbackRepository
	Notifications repositories.NotificationRepository
}

// Dependencies is everything SetupRoutes needs to build the handlers
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	Repos    Repositories
	Uploader media.Uploader
	Metrics  *metrics.Admin
	Registry *prometheus.Registry
}

// NewFirebaseRepositories builds the Firestore and Realtime Database backed stores
func NewFirebaseRepositories(app *firebase.App, batchSize int, m *metrics.Admin) Repositories {
	return Repositories{
		Dishes:        repositories.NewFirestoreDishRepository(app.Firestore),
		Users:         repositories.NewRealtimeUserRepository(app.Database),
		Feedback:      repositories.NewFirestoreFeedbackRepository(app.Firestore),
		Notifications: repositories.NewFirestoreNotificationRepository(app.Firestore, batchSize, m),
	}
}

// NewUploader returns the configured media backend. Every upload is downscaled first.
func NewUploader(ctx context.Context, cfg config.MediaConfig, app *firebase.App, bucketName string) (media.Uploader, error) {
	var backend media.Uploader
	switch cfg.Backend {
	case config.MediaBackendFirebase:
		if app == nil || app.Storage == nil {
			return nil, fmt.Errorf("firebase media backend requires a storage client")
		}
		bucket, err := app.Storage.DefaultBucket()
		if err != nil {
			return nil, fmt.Errorf("opening default bucket: %w", err)
		}
		backend = media.NewFirebaseStorageUploader(bucket, bucketName, "dishes")
	default:
		cld, err := media.NewCloudinaryUploader(cfg)
		if err != nil {
			return nil, err
		}
		backend = cld
	}
	return media.NewResizingUploader(backend, cfg.MaxWidth), nil
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log *logger.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.RequestID())
	e.Use(middleware.ContextLogger(log))
	e.Use(middleware.RequestLogger(log))
	e.Use(eMiddleware.Secure())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	cfg := deps.Config
	log := deps.Logger

	renderer, err := views.NewRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer
	e.Validator = validators.NewValidator()

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	if deps.Registry != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// --- Initialize Services ---
	catalog := services.NewCatalogService(
		deps.Repos.Dishes, deps.Repos.Users, deps.Repos.Notifications, deps.Uploader, deps.Metrics, log,
	)
	admin := services.NewAdminService(
		deps.Repos.Users, deps.Repos.Dishes, deps.Repos.Feedback, deps.Repos.Notifications, log,
	)

	// --- Login routes ---
	sessions := middleware.NewSessionManager(
		cfg.Admin.SessionSecret, cfg.Admin.SessionTTL, cfg.IsProduction(), cfg.Admin.AuthEnabled(),
	)
	var limit echo.MiddlewareFunc
	if cfg.Admin.LoginRate > 0 {
		limit = eMiddleware.RateLimiter(eMiddleware.NewRateLimiterMemoryStore(rate.Limit(cfg.Admin.LoginRate)))
	}
	authHandler := handlers.NewAuthHandler(cfg.Admin, sessions, log)
	authHandler.RegisterAuthRoutes(e, limit)

	// --- Admin pages (session required when a password is configured) ---
	pages := e.Group("")
	pages.Use(sessions.RequireSession())
	if !cfg.Admin.AuthEnabled() {
		log.Warn(context.Background(), "ADMIN_PASSWORD_HASH not set, admin pages are open", nil)
	}

	dashboardHandler := handlers.NewDashboardHandler(admin, log)
	dashboardHandler.RegisterDashboardRoutes(pages)

	dishes := pages.Group("")
	if cfg.Media.MaxUploadMB > 0 {
		dishes.Use(eMiddleware.BodyLimit(fmt.Sprintf("%dM", cfg.Media.MaxUploadMB+1)))
	}
	dishHandler := handlers.NewDishHandler(catalog, log)
	dishHandler.RegisterDishRoutes(dishes)

	userHandler := handlers.NewUserHandler(admin, log)
	userHandler.RegisterUserRoutes(pages)

	log.Info(context.Background(), "All routes configured.")
	return nil
}
