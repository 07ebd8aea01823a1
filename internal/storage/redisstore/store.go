package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

const keyPrefix = "sampark"

// Store документное хранилище в Redis.
// Коллекция хранится хешем id -> JSON, порядок вставки ведётся в ZSET.
type Store struct {
	client *redis.Client
	logger *zap.Logger
}

var _ storage.Store = (*Store)(nil)

// Options параметры подключения
type Options struct {
	Addr     string
	Password string
	DB       int
	Logger   *zap.Logger
}

// New подключается к Redis и проверяет соединение
func New(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewStore(client, opts.Logger), nil
}

// NewStore создаёт хранилище поверх готового клиента. nil логгер заменяется пустым.
func NewStore(client *redis.Client, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, logger: logger}
}

func docsKey(collection string) string  { return keyPrefix + ":" + collection }
func orderKey(collection string) string { return keyPrefix + ":" + collection + ":order" }
func seqKey(collection string) string   { return keyPrefix + ":" + collection + ":seq" }

// Get возвращает документ по идентификатору
func (s *Store) Get(ctx context.Context, collection, id string) (*storage.Document, error) {
	data, err := s.client.HGet(ctx, docsKey(collection), id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get document %s/%s: %w", collection, id, err)
	}
	return &storage.Document{ID: id, Data: data}, nil
}

// Query читает коллекцию в порядке первой вставки и фильтрует на клиенте
func (s *Store) Query(ctx context.Context, collection string, filters ...storage.Filter) ([]storage.Document, error) {
	ids, err := s.client.ZRange(ctx, orderKey(collection), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s order: %w", collection, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	values, err := s.client.HMGet(ctx, docsKey(collection), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("load %s documents: %w", collection, err)
	}

	docs := make([]storage.Document, 0, len(ids))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// в порядке остался id без документа
			continue
		}
		data := []byte(raw)

		matched, err := storage.Match(data, filters)
		if err != nil {
			s.logger.Warn("Skipping undecodable document",
				zap.String("collection", collection),
				zap.String("id", ids[i]),
				zap.Error(err))
			continue
		}
		if !matched {
			continue
		}
		docs = append(docs, storage.Document{ID: ids[i], Data: data})
	}

	return docs, nil
}

// Upsert записывает документ; позиция в порядке назначается только при первой записи
func (s *Store) Upsert(ctx context.Context, collection, id string, data []byte) error {
	if id == "" {
		return fmt.Errorf("upsert %s: empty document id", collection)
	}

	seq, err := s.client.Incr(ctx, seqKey(collection)).Result()
	if err != nil {
		return fmt.Errorf("next %s sequence: %w", collection, err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, docsKey(collection), id, data)
	pipe.ZAddNX(ctx, orderKey(collection), &redis.Z{Score: float64(seq), Member: id})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("upsert document %s/%s: %w", collection, id, err)
	}
	return nil
}

// Close закрывает клиента
func (s *Store) Close() error {
	return s.client.Close()
}
