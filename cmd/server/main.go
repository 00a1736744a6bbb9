package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menuhub/internal/app"
	"menuhub/internal/config"
	"menuhub/internal/logging"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	generated, err := cfg.EnsureSessionSecret()
	if err != nil {
		log.WithError(err).Fatal("session secret")
	}
	if generated {
		log.Warn("SESSION_SECRET not set, using a random key; sessions end when the server restarts")
	}

	a, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("application init")
	}

	go func() {
		if err := a.Start(); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
