package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-habits/internal/config"
	"github.com/comitanigiacomo/kanso-habits/internal/logger"
)

// @title           Kanso Habits API
// @version         1.0
// @description     Habit tracking with recurrence rules, streaks and completion analytics.
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	log := logger.Init(cfg.LogLevel)
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Critical: failed to start")
	}
	defer a.Close()

	a.worker.Start(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":     cfg.Port,
			"storage":  cfg.Storage,
			"redis":    cfg.Redis.Enabled,
			"timezone": cfg.Engine.Timezone,
		}).Info("Kanso Habits running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Critical server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}

	select {
	case <-a.worker.Done():
	case <-shutdownCtx.Done():
		log.Warn("Streak worker did not stop in time")
	}

	log.Info("Server stopped gracefully")
}
