package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/assistant"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
	"github.com/Freeeeeet/sampark_kvk/internal/repository"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
)

// Records чтения, которые нужны экранам
type Records interface {
	FetchStudentsByClass(ctx context.Context, class string) base.Result[model.Student]
	FetchAllStudents(ctx context.Context) base.Result[model.Student]
	FetchStudent(ctx context.Context, id string) base.Result[model.Student]
	FetchNotices(ctx context.Context) base.Result[model.Notice]
	FetchHomework(ctx context.Context, class string) base.Result[model.Homework]
	FetchMarks(ctx context.Context, studentID string) base.Result[model.ExamMark]
	FetchProfilesByRole(ctx context.Context, role model.Role) base.Result[model.UserProfile]
}

// Writer записи, которые выполняют экраны
type Writer interface {
	SeedFixtures(ctx context.Context) (repository.SeedStats, error)
	SaveAttendance(ctx context.Context, reg model.AttendanceRegister) error
}

// Deps зависимости всех панелей
type Deps struct {
	Records   Records
	Writer    Writer
	Assistant *assistant.Bridge
	Logger    *zap.Logger
	Now       func() time.Time
}

// ActionKind тип действия на экране
type ActionKind string

const (
	ActNavigate         ActionKind = "nav"
	ActSelectClass      ActionKind = "class"
	ActToggleAttendance ActionKind = "att"
	ActSubmitAttendance ActionKind = "att_submit"
	ActExportRegister   ActionKind = "att_export"
	ActSeed             ActionKind = "seed"
	ActExportReportCard ActionKind = "report_card"
	ActAskAssistant     ActionKind = "ask"
	ActFilterUsers      ActionKind = "users"
)

// Action кнопка экрана
type Action struct {
	Label string
	Kind  ActionKind
	Arg   string
}

// Screen отрисованный экран: заголовок, строки текста и ряды кнопок
type Screen struct {
	Title   string
	Lines   []string
	Actions [][]Action
}

// Request что нужно отрисовать
type Request struct {
	View  navigation.ViewState
	Class string
	// Present отметка ученика; nil означает, что все присутствуют
	Present func(studentID string) bool
	// UserRole фильтр списка пользователей у администратора
	UserRole model.Role
}

func (r Request) isPresent(studentID string) bool {
	return r.Present == nil || r.Present(studentID)
}

// Dashboard панель роли. Выбирается один раз при входе.
type Dashboard interface {
	Role() model.Role
	Profile() model.UserProfile
	Navigation() []navigation.Item
	Render(ctx context.Context, req Request) Screen
	// Ask отправляет запрос AI помощнику с контекстом роли
	Ask(ctx context.Context, prompt string) string
}

// Document файл для отправки пользователю
type Document struct {
	Filename string
	Data     []byte
}

// Seeder панель умеет заполнять хранилище демо-данными
type Seeder interface {
	Seed(ctx context.Context) (repository.SeedStats, error)
}

// AttendanceTaker панель умеет отмечать посещаемость
type AttendanceTaker interface {
	Roster(ctx context.Context, class string) base.Result[model.Student]
	SubmitAttendance(ctx context.Context, class string, present func(string) bool) (model.AttendanceRegister, error)
	ExportRegister(ctx context.Context, class string, present func(string) bool) (Document, error)
}

// ReportCardExporter панель умеет выгружать табель
type ReportCardExporter interface {
	ExportReportCard(ctx context.Context) (Document, error)
}

// For выбирает панель по роли профиля. Неизвестная роль приводится к teacher.
func For(profile model.UserProfile, deps Deps) Dashboard {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	profile.Normalize()
	c := common{profile: profile, deps: deps}

	switch profile.Role {
	case model.RoleAdmin:
		return &Admin{common: c}
	case model.RoleParent:
		return &Parent{common: c}
	default:
		return &Teacher{common: c}
	}
}
