package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staybook/internal/config"
	"staybook/internal/database"
	"staybook/internal/logger"
	"staybook/internal/mockapi"
	"staybook/internal/repository"
)

func main() {
	user := flag.String("user", "user1", "demo profile id")
	reset := flag.Bool("reset", false, "delete existing bookings first")
	flag.Parse()

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

	if cfg.DatabaseURL == ":memory:" {
		zlog.Fatal("DATABASE_URL points at an in-memory database; set a file path or postgres DSN")
	}

	db, err := database.Connect(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("DB connection failed", zap.Error(err))
	}

	zlog.Info("running AutoMigrate")
	if err := repository.AutoMigrate(db); err != nil {
		zlog.Fatal("AutoMigrate failed", zap.Error(err))
	}

	if *reset {
		zlog.Info("cleaning old bookings")
		if err := resetData(db); err != nil {
			zlog.Fatal("cleanup failed", zap.Error(err))
		}
	}

	ctx := context.Background()
	if err := mockapi.Seed(ctx, repository.NewPropertyRepository(db), repository.NewProfileRepository(db), *user); err != nil {
		zlog.Fatal("seed failed", zap.Error(err))
	}
	zlog.Info("seed complete",
		zap.Int("properties", len(mockapi.SampleProperties())),
		zap.String("user", *user),
	)
}

// resetData deletes bookings and profiles; listings are upserted by Seed.
func resetData(db *gorm.DB) error {
	for _, table := range []string{"bookings", "profiles"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}
