package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

type AttendanceRepository struct {
	*base.Repository
}

func NewAttendanceRepository(b *base.Repository) *AttendanceRepository {
	return &AttendanceRepository{Repository: b}
}

// Save записывает отметку класса за день, повторная отметка перезаписывает предыдущую
func (r *AttendanceRepository) Save(ctx context.Context, reg model.AttendanceRegister) error {
	if reg.Class == "" || reg.Date == "" {
		return fmt.Errorf("save attendance: class and date are required")
	}
	if reg.ID == "" {
		reg.ID = reg.Class + ":" + reg.Date
	}
	if err := base.Put(ctx, r.Repository, storage.CollectionAttendance, reg.ID, reg); err != nil {
		return fmt.Errorf("save attendance: %w", err)
	}
	return nil
}

// GetByID получает отметку по идентификатору класс:дата
func (r *AttendanceRepository) GetByID(ctx context.Context, id string) base.Result[model.AttendanceRegister] {
	return base.Find[model.AttendanceRegister](ctx, r.Repository, storage.CollectionAttendance, id)
}
