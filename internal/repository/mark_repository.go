package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

type MarkRepository struct {
	*base.Repository
}

func NewMarkRepository(b *base.Repository) *MarkRepository {
	return &MarkRepository{Repository: b}
}

// ListByStudent получает оценки ученика
func (r *MarkRepository) ListByStudent(ctx context.Context, studentID string) base.Result[model.ExamMark] {
	return base.List[model.ExamMark](ctx, r.Repository, storage.CollectionMarks, storage.Eq("studentId", studentID))
}

// Append добавляет оценку под новым идентификатором
func (r *MarkRepository) Append(ctx context.Context, m model.ExamMark) (string, error) {
	m.ID = uuid.NewString()
	if err := base.Put(ctx, r.Repository, storage.CollectionMarks, m.ID, m); err != nil {
		return "", err
	}
	return m.ID, nil
}
