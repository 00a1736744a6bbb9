package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"menuhub/internal/auth"
	"menuhub/internal/cache"
	"menuhub/internal/config"
	"menuhub/internal/db"
	"menuhub/internal/handler"
	"menuhub/internal/metrics"
	"menuhub/internal/repository"
	"menuhub/internal/router"
	"menuhub/internal/service"
	"menuhub/internal/view"
)

// App holds every long-lived dependency of the web application.
type App struct {
	Config  *config.Config
	Log     *logrus.Logger
	DB      *gorm.DB
	Cache   *cache.Client
	Metrics *metrics.Metrics
	Echo    *echo.Echo

	AuthService service.AuthService
	MenuService service.MenuService
}

// New connects the datastore, runs migrations and wires the HTTP stack.
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	gormDB, err := db.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}
	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		return nil, err
	}
	return NewWithDB(cfg, log, gormDB)
}

// NewWithDB wires the application around an already migrated database.
func NewWithDB(cfg *config.Config, log *logrus.Logger, gormDB *gorm.DB) (*App, error) {
	var cacheClient *cache.Client
	if cfg.RedisAddr != "" {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "menuhub:")
		if err := cacheClient.Ping(context.Background()); err != nil {
			log.WithError(err).Warn("redis unreachable, logged-out sessions stay valid until they expire")
		}
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	restaurantRepo := repository.NewRestaurantRepository(gormDB)
	dishRepo := repository.NewDishRepository(gormDB)

	// Initialize auth components
	sessions := auth.NewSessionService(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure)
	revocations := auth.NewRevocationStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions, revocations)
	menuService := service.NewMenuService(restaurantRepo, dishRepo)

	// Initialize handlers
	flashes := handler.NewFlashStore(m)
	authHandler := handler.NewAuthHandler(authService, sessions, flashes, log)
	menuHandler := handler.NewMenuHandler(menuService, flashes, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	router.Register(e, cfg, log, m, sessions, authHandler, menuHandler)

	return &App{
		Config:      cfg,
		Log:         log,
		DB:          gormDB,
		Cache:       cacheClient,
		Metrics:     m,
		Echo:        e,
		AuthService: authService,
		MenuService: menuService,
	}, nil
}

// Start serves HTTP until Shutdown is called.
func (a *App) Start() error {
	addr := ":" + a.Config.ServerPort
	a.Log.WithField("addr", addr).Info("menuhub listening")
	if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server start: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and releases the datastore and cache.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Echo.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := a.Cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("cache close: %w", err))
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("db close: %w", err))
		}
	}
	return errors.Join(errs...)
}
