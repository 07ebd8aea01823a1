package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

// Migrations встроенные миграции goose для таблицы документов
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir каталог миграций внутри Migrations
const MigrationsDir = "migrations"

// Store документное хранилище поверх одной JSONB-таблицы
type Store struct {
	pool *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

// NewStore создаёт хранилище поверх пула соединений. Close закрывает пул.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Get возвращает документ по идентификатору
func (s *Store) Get(ctx context.Context, collection, id string) (*storage.Document, error) {
	query := `
		SELECT id, data
		FROM documents
		WHERE collection = $1 AND id = $2
	`

	var doc storage.Document
	err := s.pool.QueryRow(ctx, query, collection, id).Scan(&doc.ID, &doc.Data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get document %s/%s: %w", collection, id, err)
	}

	return &doc, nil
}

// Query возвращает документы в порядке первой вставки
func (s *Store) Query(ctx context.Context, collection string, filters ...storage.Filter) ([]storage.Document, error) {
	query, args := buildQuery(collection, filters)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []storage.Document
	for rows.Next() {
		var doc storage.Document
		if err := rows.Scan(&doc.ID, &doc.Data); err != nil {
			return nil, fmt.Errorf("scan document %s: %w", collection, err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents %s: %w", collection, err)
	}

	return docs, nil
}

// Upsert создаёт документ или заменяет его данные, сохраняя исходный порядок
func (s *Store) Upsert(ctx context.Context, collection, id string, data []byte) error {
	query := `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`

	if _, err := s.pool.Exec(ctx, query, collection, id, string(data)); err != nil {
		return fmt.Errorf("upsert document %s/%s: %w", collection, id, err)
	}
	return nil
}

// Close закрывает пул соединений
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// buildQuery собирает SELECT с условиями равенства по полям JSONB
func buildQuery(collection string, filters []storage.Filter) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT id, data FROM documents WHERE collection = $1")

	args := []any{collection}
	for _, f := range filters {
		args = append(args, f.Field, f.Value)
		fmt.Fprintf(&sb, " AND data->>$%d = $%d", len(args)-1, len(args))
	}
	sb.WriteString(" ORDER BY seq")

	return sb.String(), args
}
