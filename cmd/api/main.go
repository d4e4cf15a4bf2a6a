package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"print3d-shop/internal/client"
	"print3d-shop/internal/config"
	"print3d-shop/internal/repository"
	"print3d-shop/internal/server"
	"print3d-shop/internal/service"
	"print3d-shop/internal/storage"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to parse config")
	}

	setupLogging(cfg)

	db := client.InitMysqlClient(cfg.DatabaseURL)

	files, err := storage.NewFileStore(cfg.UploadDir, cfg.PurchaseDir)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to init file store")
	}

	accountRepo := repository.NewAccountRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	uploadRepo := repository.NewUploadRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	meshyClient := client.NewMeshyClient(&cfg.Meshy)

	authService := service.NewAuthService(accountRepo, sessionRepo, cfg.SessionTTL)
	libraryService := service.NewLibraryService(uploadRepo, files, cfg.BaseURL)
	orderService := service.NewOrderService(purchaseRepo, files)
	generationService := service.NewGenerationService(
		meshyClient, libraryService,
		cfg.Meshy.PollInterval, cfg.Meshy.PollMaxAttempts,
	)

	sweeper := service.NewSweeper(uploadRepo, sessionRepo, files, cfg.UploadMaxAge, cfg.SweepInterval)
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go sweeper.Run(sweepCtx)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(cfg, files, authService, libraryService, orderService, generationService)

	logrus.WithField("addr", serverAddr).Info("Starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logrus.Info("Signal received, starting graceful shutdown...")

	stopSweeper()

	if err := srv.Shutdown(); err != nil {
		logrus.WithError(err).Fatal("HTTP server shutdown error")
	}
}

func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
