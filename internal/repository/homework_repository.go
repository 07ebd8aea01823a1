package repository

import (
	"context"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

type HomeworkRepository struct {
	*base.Repository
}

func NewHomeworkRepository(b *base.Repository) *HomeworkRepository {
	return &HomeworkRepository{Repository: b}
}

// List получает домашние задания класса; пустой класс означает все задания
func (r *HomeworkRepository) List(ctx context.Context, class string) base.Result[model.Homework] {
	if class == "" {
		return base.List[model.Homework](ctx, r.Repository, storage.CollectionHomework)
	}
	return base.List[model.Homework](ctx, r.Repository, storage.CollectionHomework, storage.Eq("class", class))
}

func (r *HomeworkRepository) Upsert(ctx context.Context, h model.Homework) error {
	return base.Put(ctx, r.Repository, storage.CollectionHomework, h.ID, h)
}
