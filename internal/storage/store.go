package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Коллекции документного хранилища
const (
	CollectionUsers       = "users"
	CollectionStudents    = "students"
	CollectionNotices     = "notices"
	CollectionHomework    = "homework"
	CollectionMarks       = "marks"
	CollectionAttendance  = "attendance"
	CollectionCredentials = "credentials"
)

// ErrNotFound документ с таким идентификатором отсутствует
var ErrNotFound = errors.New("document not found")

// Document документ коллекции: идентификатор и JSON-объект с полями
type Document struct {
	ID   string
	Data []byte
}

// Filter условие равенства по полю верхнего уровня
type Filter struct {
	Field string
	Value string
}

// Eq создаёт условие равенства
func Eq(field, value string) Filter {
	return Filter{Field: field, Value: value}
}

// Store документное хранилище без схемы: точечное чтение, чтение коллекции
// с фильтрами равенства и upsert по идентификатору.
type Store interface {
	// Get возвращает ErrNotFound, если документа нет
	Get(ctx context.Context, collection, id string) (*Document, error)
	// Query возвращает документы в порядке, который отдаёт хранилище
	Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error)
	// Upsert создаёт или перезаписывает документ
	Upsert(ctx context.Context, collection, id string, data []byte) error
	Close() error
}

// Match проверяет JSON-документ на соответствие всем фильтрам.
// Поле должно быть строкой, иначе документ не подходит.
func Match(data []byte, filters []Filter) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return false, fmt.Errorf("decode document: %w", err)
	}

	for _, f := range filters {
		v, ok := fields[f.Field].(string)
		if !ok || v != f.Value {
			return false, nil
		}
	}
	return true, nil
}
