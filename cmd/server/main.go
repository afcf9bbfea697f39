// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/expiryeaze/expiryeaze-backend/internal/config"
	"github.com/expiryeaze/expiryeaze-backend/internal/database"
	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository/memrepo"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository/mongorepo"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository/pgrepo"
	"github.com/expiryeaze/expiryeaze-backend/internal/router"
	"github.com/expiryeaze/expiryeaze-backend/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	setupLogging(cfg)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize storage
	store, err := openStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize store")
	}

	// Initialize i18n
	if err := i18n.Initialize(); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := router.Initialize(ctx, store, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize router")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":   cfg.Server.Port,
			"driver": cfg.Store.Driver,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Failed to close store")
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Log.Format == "json" || (cfg.Log.Format == "" && cfg.IsProduction()) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// openStore connects the backend selected by DB_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.InitializePostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := pgrepo.Migrate(db); err != nil {
			database.ClosePostgres(db)
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return pgrepo.New(db), nil

	case "memory":
		logrus.Warn("Using the in-memory store; data is lost on restart")
		return memrepo.New(), nil

	default:
		client, db, err := database.InitializeMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			client.Disconnect(ctx)
			return nil, fmt.Errorf("failed to create indexes: %w", err)
		}
		return mongorepo.New(client, db, cfg.Mongo.Timeout()), nil
	}
}
