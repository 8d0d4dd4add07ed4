package router

import (
	"context"
	"fmt"

	"github.com/anonto42/idea-board/backend/internal/auth"
	"github.com/anonto42/idea-board/backend/internal/handlers"
	"github.com/anonto42/idea-board/backend/internal/logging"
	"github.com/anonto42/idea-board/backend/internal/middleware"
	"github.com/anonto42/idea-board/backend/internal/repositories"
	"github.com/anonto42/idea-board/backend/internal/services"
	"github.com/anonto42/idea-board/backend/pkg/config"
	"github.com/anonto42/idea-board/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Deps are the collaborators the HTTP layer is built from. Activity, Federated
// and Redis are optional.
type Deps struct {
	Config    *config.Config
	Logger    logging.Logger
	Store     *repositories.Store
	Activity  repositories.ActivityRepository
	Tokens    *auth.TokenIssuer
	Federated services.IdentityVerifier
	Redis     *redis.Client
}

// SetupStore picks the persistence backend and the activity log for cfg.
func SetupStore(ctx context.Context, cfg *config.Config, db *config.DB, logger logging.Logger) (*repositories.Store, repositories.ActivityRepository, error) {
	var store *repositories.Store
	switch {
	case db.Postgres != nil:
		if err := repositories.AutoMigrate(db.Postgres); err != nil {
			return nil, nil, fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info(ctx, "PostgreSQL auto-migrations completed")
		store = repositories.NewPostgresStore(db.Postgres)
	default:
		logger.Warn(ctx, "using in-memory store, data is lost on restart")
		store = repositories.NewMemoryStore()
	}

	if db.Mongo == nil {
		if db.Postgres == nil {
			return store, repositories.NewMemoryActivityLog(), nil
		}
		logger.Info(ctx, "MONGO_URI not set, activity log disabled")
		return store, nil, nil
	}
	activity := repositories.NewMongoActivityRepository(db.Mongo.Database(cfg.MongoDatabase))
	if err := activity.EnsureIndexes(ctx); err != nil {
		return nil, nil, err
	}
	return store, activity, nil
}

// NewServer builds the echo instance with middleware, error handling and routes.
func NewServer(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(d.Logger)
	config.SetupMiddleware(e, d.Logger)
	SetupRoutes(e, d)
	return e
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, d Deps) {
	ctx := context.Background()

	e.GET("/health", handlers.HealthCheck)

	users := services.NewUserService(d.Store, d.Tokens, d.Federated, d.Config.BcryptCost, d.Logger)
	ideas := services.NewIdeaService(d.Store)
	comments := services.NewCommentService(d.Store)

	// Writes need a caller; the rate limiter runs after authentication so
	// buckets are per user.
	write := []echo.MiddlewareFunc{
		middleware.JWTAuthMiddleware(d.Tokens),
		middleware.RateLimit(d.Config.RateLimit, d.Redis, d.Logger),
	}

	api := e.Group("/api")

	handlers.NewAuthHandler(users, d.Federated != nil).RegisterAuthRoutes(api)
	d.Logger.Debug(ctx, "auth routes configured", "firebase", d.Federated != nil)

	handlers.NewUserHandler(users, d.Activity, d.Logger, d.Config.PageSize).RegisterUserRoutes(api)
	d.Logger.Debug(ctx, "user routes configured", "activity", d.Activity != nil)

	handlers.NewIdeaHandler(ideas, d.Activity, d.Logger, d.Config.PageSize).RegisterIdeaRoutes(api, write...)
	handlers.NewBookmarkHandler(users, d.Activity, d.Logger).RegisterBookmarkRoutes(api, write...)
	d.Logger.Debug(ctx, "idea routes configured")

	handlers.NewCommentHandler(comments, d.Activity, d.Logger, d.Config.PageSize).RegisterCommentRoutes(api, write...)
	d.Logger.Debug(ctx, "comment routes configured")

	d.Logger.Info(ctx, "all routes configured")
}
