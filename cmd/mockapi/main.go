package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"staybook/internal/config"
	"staybook/internal/database"
	"staybook/internal/logger"
	"staybook/internal/mockapi"
	"staybook/internal/repository"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal(err)
	}
	zlog, err := logger.New(cfg.AppEnv, cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		zlog.Fatal("auto-migrate failed", zap.Error(err))
	}

	svc := mockapi.NewServiceFromDB(db, zlog.Named("mockapi"))
	demoUser := os.Getenv("DEMO_USER_ID")
	if demoUser == "" {
		demoUser = "user1"
	}
	if err := mockapi.Seed(context.Background(),
		repository.NewPropertyRepository(db), repository.NewProfileRepository(db), demoUser); err != nil {
		zlog.Fatal("seed failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mockapi.NewRouter(svc, zlog.Named("http"), cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("fixture API listening", zap.String("addr", cfg.ListenAddr), zap.Bool("postgres", database.IsPostgres(cfg.DatabaseURL)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown failed", zap.Error(err))
	}
}
