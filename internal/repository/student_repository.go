package repository

import (
	"context"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

type StudentRepository struct {
	*base.Repository
}

func NewStudentRepository(b *base.Repository) *StudentRepository {
	return &StudentRepository{Repository: b}
}

// ListByClass получает учеников класса (точное совпадение)
func (r *StudentRepository) ListByClass(ctx context.Context, class string) base.Result[model.Student] {
	return base.List[model.Student](ctx, r.Repository, storage.CollectionStudents, storage.Eq("class", class))
}

// ListAll получает всех учеников
func (r *StudentRepository) ListAll(ctx context.Context) base.Result[model.Student] {
	return base.List[model.Student](ctx, r.Repository, storage.CollectionStudents)
}

// GetByID получает ученика по идентификатору
func (r *StudentRepository) GetByID(ctx context.Context, id string) base.Result[model.Student] {
	return base.Find[model.Student](ctx, r.Repository, storage.CollectionStudents, id)
}

// Upsert создаёт или перезаписывает ученика
func (r *StudentRepository) Upsert(ctx context.Context, s model.Student) error {
	return base.Put(ctx, r.Repository, storage.CollectionStudents, s.ID, s)
}
