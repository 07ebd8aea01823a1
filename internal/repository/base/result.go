package base

import "iter"

// Status состояние результата чтения
type Status int

const (
	// StatusEmpty запрос выполнен, записей нет
	StatusEmpty Status = iota
	// StatusOK запрос выполнен, есть хотя бы одна запись
	StatusOK
	// StatusFailed запрос не выполнен, записи не получены
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result результат чтения из хранилища. Нулевое значение это пустой результат.
// В отличие от пары (nil, nil) различает "нет данных" и "запрос упал".
type Result[T any] struct {
	status Status
	items  []T
	err    error
}

// OK создаёт успешный результат; пустой срез даёт StatusEmpty
func OK[T any](items []T) Result[T] {
	if len(items) == 0 {
		return Result[T]{status: StatusEmpty}
	}
	return Result[T]{status: StatusOK, items: items}
}

// One создаёт успешный результат из одной записи
func One[T any](item T) Result[T] {
	return Result[T]{status: StatusOK, items: []T{item}}
}

// Empty создаёт пустой результат
func Empty[T any]() Result[T] {
	return Result[T]{status: StatusEmpty}
}

// Failed создаёт результат с ошибкой
func Failed[T any](err error) Result[T] {
	return Result[T]{status: StatusFailed, err: err}
}

func (r Result[T]) Status() Status { return r.status }

// Items возвращает записи; при ошибке или пустом результате nil
func (r Result[T]) Items() []T { return r.items }

func (r Result[T]) Len() int { return len(r.items) }

// First возвращает первую запись, если она есть
func (r Result[T]) First() (T, bool) {
	if len(r.items) == 0 {
		var zero T
		return zero, false
	}
	return r.items[0], true
}

// All перебирает записи в порядке хранилища
func (r Result[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range r.items {
			if !yield(item) {
				return
			}
		}
	}
}

// IsEmpty true и для пустого, и для упавшего запроса
func (r Result[T]) IsEmpty() bool { return len(r.items) == 0 }

func (r Result[T]) Failed() bool { return r.status == StatusFailed }

func (r Result[T]) Err() error { return r.err }
