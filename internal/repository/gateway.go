package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

// Gateway точка доступа к записям школы. Переводит запросы приложения
// ("ученики класса", "объявления") в чтения коллекций хранилища.
// Порядок записей тот, что отдаёт хранилище.
type Gateway struct {
	Profiles   *ProfileRepository
	Students   *StudentRepository
	Notices    *NoticeRepository
	Homework   *HomeworkRepository
	Marks      *MarkRepository
	Attendance *AttendanceRepository

	logger *zap.Logger
}

// NewGateway создаёт шлюз со всеми репозиториями поверх одного хранилища
func NewGateway(store storage.Store, logger *zap.Logger) *Gateway {
	b := base.NewRepository(store, logger)
	return &Gateway{
		Profiles:   NewProfileRepository(b),
		Students:   NewStudentRepository(b),
		Notices:    NewNoticeRepository(b),
		Homework:   NewHomeworkRepository(b),
		Marks:      NewMarkRepository(b),
		Attendance: NewAttendanceRepository(b),
		logger:     logger,
	}
}

func (g *Gateway) FetchProfile(ctx context.Context, id string) base.Result[model.UserProfile] {
	return g.Profiles.GetByID(ctx, id)
}

func (g *Gateway) FetchProfilesByRole(ctx context.Context, role model.Role) base.Result[model.UserProfile] {
	return g.Profiles.ListByRole(ctx, role)
}

func (g *Gateway) SaveProfile(ctx context.Context, profile model.UserProfile) error {
	return g.Profiles.Save(ctx, profile)
}

func (g *Gateway) FetchStudentsByClass(ctx context.Context, class string) base.Result[model.Student] {
	return g.Students.ListByClass(ctx, class)
}

func (g *Gateway) FetchAllStudents(ctx context.Context) base.Result[model.Student] {
	return g.Students.ListAll(ctx)
}

func (g *Gateway) FetchStudent(ctx context.Context, id string) base.Result[model.Student] {
	return g.Students.GetByID(ctx, id)
}

func (g *Gateway) FetchNotices(ctx context.Context) base.Result[model.Notice] {
	return g.Notices.ListAll(ctx)
}

// FetchHomework пустой class возвращает задания всех классов
func (g *Gateway) FetchHomework(ctx context.Context, class string) base.Result[model.Homework] {
	return g.Homework.List(ctx, class)
}

func (g *Gateway) FetchMarks(ctx context.Context, studentID string) base.Result[model.ExamMark] {
	return g.Marks.ListByStudent(ctx, studentID)
}

func (g *Gateway) SaveAttendance(ctx context.Context, reg model.AttendanceRegister) error {
	return g.Attendance.Save(ctx, reg)
}
