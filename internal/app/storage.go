package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/config"
	"github.com/Freeeeeet/sampark_kvk/internal/storage"
	"github.com/Freeeeeet/sampark_kvk/internal/storage/firestore"
	"github.com/Freeeeeet/sampark_kvk/internal/storage/memory"
	"github.com/Freeeeeet/sampark_kvk/internal/storage/postgres"
	"github.com/Freeeeeet/sampark_kvk/internal/storage/redisstore"
)

// OpenStore подключает хранилище документов по STORE_DRIVER.
// Для postgres перед возвратом применяются миграции.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	logger.Info("Opening document store", zap.String("driver", cfg.StoreDriver))

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Postgres, logger)

	case config.DriverRedis:
		store, err := redisstore.New(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return store, nil

	case config.DriverFirestore:
		store, err := firestore.New(ctx, firestore.Options{
			ProjectID:       cfg.Firebase.ProjectID,
			CredentialsFile: cfg.Firebase.CredentialsFile,
		})
		if err != nil {
			return nil, fmt.Errorf("open firestore store: %w", err)
		}
		return store, nil

	case config.DriverMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		return memory.NewStore(memory.WithLogger(logger)), nil

	default:
		return nil, fmt.Errorf("store driver %q is not configured", cfg.StoreDriver)
	}
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (storage.Store, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	migrator, err := NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return postgres.NewStore(pool), nil
}
