package router

import (
	"net/http"
	"time"

	"github.com/anonto42/microblog/backend/internal/handlers"
	"github.com/anonto42/microblog/backend/internal/middleware"
	"github.com/anonto42/microblog/backend/internal/services"
	"github.com/anonto42/microblog/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Options carries what the routes need. Firebase and Activity are optional.
type Options struct {
	Deps      services.Deps
	FeedScope services.Scope
	JWTSecret string
	TokenTTL  time.Duration
	Firebase  handlers.IDTokenVerifier
	Activity  handlers.ActivitySource
	Log       logrus.FieldLogger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, opts Options) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	e.Validator = validators.NewValidator()

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Services ---
	users := services.NewUserService(opts.Deps)
	posts := services.NewPostService(opts.Deps)
	likes := services.NewLikeService(opts.Deps)
	follows := services.NewFollowService(opts.Deps)
	feeds := services.NewFeedService(opts.Deps, opts.FeedScope)
	notifications := services.NewNotificationService(opts.Deps)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(users, opts.Firebase, opts.JWTSecret, opts.TokenTTL).RegisterAuthRoutes(authGroup)
	log.WithField("firebase", opts.Firebase != nil).Debug("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(opts.JWTSecret))

	handlers.NewUserHandler(users, follows).RegisterProfileRoutes(api)
	handlers.NewPostHandler(posts, feeds, users).RegisterPostRoutes(api)
	handlers.NewFeedHandler(feeds, users).RegisterFeedRoutes(api)
	handlers.NewFollowHandler(follows, users).RegisterFollowRoutes(api)
	handlers.NewLikeHandler(likes, users).RegisterLikeRoutes(api)
	handlers.NewNotificationHandler(notifications, users).RegisterNotificationRoutes(api)
	if opts.Activity != nil {
		handlers.NewActivityHandler(opts.Activity, users).RegisterActivityRoutes(api)
	}

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/api/v1/feed")
	})

	log.WithField("feed_scope", feeds.Scope()).Info("All routes configured.")
}
