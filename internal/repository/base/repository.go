package base

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

// Record запись коллекции, которой хранилище назначает идентификатор
type Record[T any] interface {
	*T
	SetID(id string)
}

// Repository базовый репозиторий с общими методами поверх документного хранилища.
// Ошибки чтения логируются и превращаются в Result со статусом Failed.
type Repository struct {
	store  storage.Store
	logger *zap.Logger
}

// NewRepository создаёт новый базовый репозиторий
func NewRepository(store storage.Store, logger *zap.Logger) *Repository {
	return &Repository{store: store, logger: logger}
}

// Store возвращает хранилище
func (r *Repository) Store() storage.Store {
	return r.store
}

// Logger возвращает логгер
func (r *Repository) Logger() *zap.Logger {
	return r.logger
}

// List читает коллекцию с фильтрами и декодирует записи.
// Битые записи пропускаются с предупреждением в логе.
func List[T any, PT Record[T]](ctx context.Context, r *Repository, collection string, filters ...storage.Filter) Result[T] {
	docs, err := r.store.Query(ctx, collection, filters...)
	if err != nil {
		r.logger.Error("Failed to query collection",
			zap.String("collection", collection),
			zap.Any("filters", filters),
			zap.Error(err))
		return Failed[T](err)
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := decode[T, PT](doc)
		if err != nil {
			r.logger.Warn("Skipping malformed record",
				zap.String("collection", collection),
				zap.String("id", doc.ID),
				zap.Error(err))
			continue
		}
		items = append(items, item)
	}

	return OK(items)
}

// Find читает одну запись по идентификатору. Отсутствие записи это Empty, не ошибка.
func Find[T any, PT Record[T]](ctx context.Context, r *Repository, collection, id string) Result[T] {
	doc, err := r.store.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Empty[T]()
		}
		r.logger.Error("Failed to get record",
			zap.String("collection", collection),
			zap.String("id", id),
			zap.Error(err))
		return Failed[T](err)
	}

	item, err := decode[T, PT](*doc)
	if err != nil {
		r.logger.Error("Failed to decode record",
			zap.String("collection", collection),
			zap.String("id", id),
			zap.Error(err))
		return Failed[T](err)
	}

	return One(item)
}

// Put сериализует запись и делает upsert по идентификатору
func Put(ctx context.Context, r *Repository, collection, id string, item any) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}

	if err := r.store.Upsert(ctx, collection, id, data); err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

func decode[T any, PT Record[T]](doc storage.Document) (T, error) {
	var item T
	if err := json.Unmarshal(doc.Data, &item); err != nil {
		return item, fmt.Errorf("decode record %s: %w", doc.ID, err)
	}
	PT(&item).SetID(doc.ID)
	return item, nil
}
