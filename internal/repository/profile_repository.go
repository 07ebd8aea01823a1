package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

type ProfileRepository struct {
	*base.Repository
}

func NewProfileRepository(b *base.Repository) *ProfileRepository {
	return &ProfileRepository{Repository: b}
}

// GetByID получает профиль по идентификатору пользователя.
// Роль из хранилища приводится к закрытому набору: неизвестная роль становится teacher.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) base.Result[model.UserProfile] {
	res := base.Find[model.UserProfile](ctx, r.Repository, storage.CollectionUsers, id)
	return normalizeProfiles(res)
}

// ListByRole получает профили с заданной ролью
func (r *ProfileRepository) ListByRole(ctx context.Context, role model.Role) base.Result[model.UserProfile] {
	res := base.List[model.UserProfile](ctx, r.Repository, storage.CollectionUsers, storage.Eq("role", string(role)))
	return normalizeProfiles(res)
}

// Save проверяет и записывает профиль
func (r *ProfileRepository) Save(ctx context.Context, profile model.UserProfile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if err := base.Put(ctx, r.Repository, storage.CollectionUsers, profile.ID, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func normalizeProfiles(res base.Result[model.UserProfile]) base.Result[model.UserProfile] {
	if res.IsEmpty() {
		return res
	}
	items := res.Items()
	for i := range items {
		items[i].Normalize()
	}
	return base.OK(items)
}
