package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	fs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

// Store документное хранилище поверх Cloud Firestore.
// Коллекции хранилища один к одному соответствуют коллекциям Firestore.
type Store struct {
	client *fs.Client
}

var _ storage.Store = (*Store)(nil)

// Options параметры подключения к проекту Firebase
type Options struct {
	ProjectID       string
	CredentialsFile string
}

// New инициализирует приложение Firebase и клиента Firestore
func New(ctx context.Context, opts Options) (*Store, error) {
	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: opts.ProjectID}, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// Get возвращает документ по идентификатору
func (s *Store) Get(ctx context.Context, collection, id string) (*storage.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get document %s/%s: %w", collection, id, err)
	}

	return toDocument(snap)
}

// Query возвращает документы в порядке, который отдаёт Firestore (по идентификатору)
func (s *Store) Query(ctx context.Context, collection string, filters ...storage.Filter) ([]storage.Document, error) {
	q := s.client.Collection(collection).Query
	for _, f := range filters {
		q = q.Where(f.Field, "==", f.Value)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var docs []storage.Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("query documents %s: %w", collection, err)
		}

		doc, err := toDocument(snap)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	return docs, nil
}

// Upsert перезаписывает документ целиком
func (s *Store) Upsert(ctx context.Context, collection, id string, data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode document %s/%s: %w", collection, id, err)
	}

	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, fields); err != nil {
		return fmt.Errorf("set document %s/%s: %w", collection, id, err)
	}
	return nil
}

// Close закрывает клиента Firestore
func (s *Store) Close() error {
	return s.client.Close()
}

func toDocument(snap *fs.DocumentSnapshot) (*storage.Document, error) {
	data, err := json.Marshal(snap.Data())
	if err != nil {
		return nil, fmt.Errorf("encode document %s: %w", snap.Ref.ID, err)
	}
	return &storage.Document{ID: snap.Ref.ID, Data: data}, nil
}
