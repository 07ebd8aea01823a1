package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

// Store хранилище в памяти процесса. Сохраняет порядок первой вставки.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	logger      *zap.Logger
}

type collection struct {
	order []string
	docs  map[string][]byte
}

var _ storage.Store = (*Store)(nil)

// Option настройка хранилища
type Option func(*Store)

// WithLogger логгер для пропущенных документов
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore создаёт пустое хранилище
func NewStore(opts ...Option) *Store {
	s := &Store{
		collections: make(map[string]*collection),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get возвращает документ по идентификатору
func (s *Store) Get(ctx context.Context, coll, id string) (*storage.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[coll]
	if !ok {
		return nil, storage.ErrNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.Document{ID: id, Data: slices.Clone(data)}, nil
}

// Query возвращает документы коллекции в порядке вставки.
// Документ, который фильтр не смог прочитать, пропускается.
func (s *Store) Query(ctx context.Context, coll string, filters ...storage.Filter) ([]storage.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[coll]
	if !ok {
		return nil, nil
	}

	docs := make([]storage.Document, 0, len(c.order))
	for _, id := range c.order {
		data := c.docs[id]
		ok, err := storage.Match(data, filters)
		if err != nil {
			s.logger.Warn("Skipping undecodable document",
				zap.String("collection", coll),
				zap.String("id", id),
				zap.Error(err))
			continue
		}
		if ok {
			docs = append(docs, storage.Document{ID: id, Data: slices.Clone(data)})
		}
	}
	return docs, nil
}

// Upsert создаёт или перезаписывает документ
func (s *Store) Upsert(ctx context.Context, coll, id string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("upsert %s: empty id", coll)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[coll]
	if !ok {
		c = &collection{docs: make(map[string][]byte)}
		s.collections[coll] = c
	}
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = slices.Clone(data)
	return nil
}

// Count количество документов в коллекции
func (s *Store) Count(coll string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.collections[coll]; ok {
		return len(c.docs)
	}
	return 0
}

// Close ничего не освобождает
func (s *Store) Close() error { return nil }
