package repository

import (
	"context"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

type NoticeRepository struct {
	*base.Repository
}

func NewNoticeRepository(b *base.Repository) *NoticeRepository {
	return &NoticeRepository{Repository: b}
}

// ListAll получает все объявления
func (r *NoticeRepository) ListAll(ctx context.Context) base.Result[model.Notice] {
	return base.List[model.Notice](ctx, r.Repository, storage.CollectionNotices)
}

func (r *NoticeRepository) Upsert(ctx context.Context, n model.Notice) error {
	return base.Put(ctx, r.Repository, storage.CollectionNotices, n.ID, n)
}
