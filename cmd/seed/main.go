package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/app"
	"github.com/Freeeeeet/sampark_kvk/internal/config"
	"github.com/Freeeeeet/sampark_kvk/internal/repository"
)

// seed заполняет хранилище демо-данными: ученики, объявления, задания и оценки.
// Код выхода ненулевой, если хотя бы одна запись не удалась.
func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	logger := app.NewLogger(cfg.Environment, cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()

	if !cfg.StoreConfigured() {
		logger.Error("Document store is not configured; set STORE_DRIVER and its connection settings")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open document store", zap.Error(err))
		return 1
	}
	defer store.Close()

	stats, err := repository.NewGateway(store, logger).SeedFixtures(ctx)
	if err != nil {
		logger.Error("Seeding failed", zap.Error(err))
		return 1
	}

	logger.Info("Seeding completed",
		zap.String("driver", cfg.StoreDriver),
		zap.Int("students", stats.Students),
		zap.Int("notices", stats.Notices),
		zap.Int("homework", stats.Homework),
		zap.Int("marks", stats.Marks))
	return 0
}
