package main

import (
	"context"

	"menuhub/internal/auth"
	"menuhub/internal/config"
	"menuhub/internal/db"
	"menuhub/internal/logging"
	"menuhub/internal/repository"
	"menuhub/internal/seed"
	"menuhub/internal/service"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	file, err := seed.Load(cfg.SeedFile)
	if err != nil {
		log.WithError(err).Fatal("load seed file")
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("connect to database")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.WithError(err).Fatal("run migrations")
	}

	// sessions are never issued here, only the password hashing path is used
	sessions := auth.NewSessionService(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure)
	authService := service.NewAuthService(repository.NewUserRepository(gormDB), sessions, auth.NewRevocationStore(nil))
	menuService := service.NewMenuService(repository.NewRestaurantRepository(gormDB), repository.NewDishRepository(gormDB))

	res, err := seed.Apply(context.Background(), file, authService, menuService, log)
	if err != nil {
		log.WithError(err).Fatal("seed failed")
	}
	log.WithField("created", res.Created).WithField("skipped", res.Skipped).Info("seed completed")
}
