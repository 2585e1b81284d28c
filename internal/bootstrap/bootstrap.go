package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/uniconnect/internal/app/controllers"
	"github.com/yigit/uniconnect/internal/app/gateway"
	appMigrations "github.com/yigit/uniconnect/internal/app/migrations"
	"github.com/yigit/uniconnect/internal/app/models"
	appRepos "github.com/yigit/uniconnect/internal/app/repositories"
	appRoutes "github.com/yigit/uniconnect/internal/app/routes"
	appServices "github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/config"
	"github.com/yigit/uniconnect/internal/cron"
	"github.com/yigit/uniconnect/internal/db"
	appMiddleware "github.com/yigit/uniconnect/internal/middleware"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
	"github.com/yigit/uniconnect/internal/pkg/logger"
	"github.com/yigit/uniconnect/internal/pkg/websocket"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Registry       *prometheus.Registry
	Gateway        *gateway.Client
	Repository     appRepos.StateRepository
	Session        *appServices.SessionStore
	Comments       *appServices.CommentStore
	Dialogs        *appServices.DialogStore
	Notifications  *appServices.NotificationStore
	ChatHub        *websocket.Hub
	Scheduler      *cron.Scheduler
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", logLevel.String()).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the durable client storage selected by storage.driver.
// The returned func releases it.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.StateRepository, func(), error) {
	noop := func() {}
	driver := cfg.Storage.Driver
	lgr.Info().Str("driver", driver).Msg("Opening client storage")

	switch driver {
	case "memory":
		return appRepos.NewMemoryStateRepository(), noop, nil

	case "file":
		return appRepos.NewFileStateRepository(cfg.Storage.FilePath), noop, nil

	case "postgres":
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}

		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database.Pool).Migrate(ctx); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")

		return appRepos.NewPostgresStateRepository(database.Pool, cfg.Storage.Profile), database.Close, nil

	case "redis":
		client, err := db.NewRedisClient(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to redis")
			return nil, nil, err
		}
		closeClient := func() {
			if err := client.Close(); err != nil {
				lgr.Warn().Err(err).Msg("Redis close error")
			}
		}
		return appRepos.NewRedisStateRepository(client, cfg.Storage.Profile), closeClient, nil
	}

	return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownDriver, driver)
}

// BuildDependencies initializes the gateway, the stores and the controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, repo appRepos.StateRepository, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Repository: repo}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps.Gateway = gateway.NewClient(gateway.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.APITimeout(),
		Registerer: deps.Registry,
		Logger:     logger.Component("gateway"),
	})

	deps.Session = appServices.NewSessionStore(ctx, appServices.SessionOptions{
		Gateway:            deps.Gateway,
		Repository:         repo,
		Logger:             lgr,
		LegacyOfflineLogin: cfg.Auth.LegacyOfflineLogin,
	})
	deps.Comments = appServices.NewCommentStore(deps.Gateway, lgr)
	deps.Dialogs = appServices.NewDialogStore()
	deps.Notifications = appServices.NewNotificationStore(cfg.SnackbarDuration())

	scheduler, err := cron.NewScheduler(cfg.Sync.RefreshSchedule, deps.Session, lgr)
	if err != nil {
		deps.Session.Close()
		return nil, fmt.Errorf("failed to set up scheduled refresh: %w", err)
	}
	deps.Scheduler = scheduler

	deps.ChatHub = websocket.NewHub(cfg.Chat.HistoryLimit, lgr)
	contacts := make([]models.ChatPeer, 0, len(cfg.Chat.Peers))
	for _, peer := range cfg.Chat.Peers {
		contacts = append(contacts, models.ChatPeer{ID: peer.ID, Name: peer.Name})
	}

	// per-user state outside the session store goes with the user
	deps.Session.Subscribe(func(ev appServices.AuthEvent) {
		if ev.Kind != appServices.SignedOut {
			return
		}
		deps.Comments.Reset()
		deps.ChatHub.Reset()
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Session, lgr)

	deps.Controllers = appRoutes.Controllers{
		Auth:          appControllers.NewAuthController(deps.Session, deps.Notifications, lgr),
		User:          appControllers.NewUserController(deps.Session, deps.Notifications, lgr),
		Event:         appControllers.NewEventController(deps.Session, deps.Notifications, lgr),
		Accommodation: appControllers.NewAccommodationController(deps.Session, deps.Notifications, lgr),
		Comment:       appControllers.NewCommentController(deps.Session, deps.Comments, deps.Notifications, lgr),
		UI:            appControllers.NewUIController(deps.Session, deps.Dialogs, deps.Notifications, lgr),
		Chat:          appControllers.NewChatController(deps.ChatHub, contacts, lgr),
		Page:          appControllers.NewPageController(deps.Session, deps.Notifications, lgr),
		ChatSocket:    websocket.NewHandler(deps.ChatHub, appMiddleware.CurrentUser, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), appMiddleware.Recovery(lgr))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.Registry)
	return router
}
