package navigation

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
)

// ErrUnknownView неизвестный экран
var ErrUnknownView = errors.New("unknown view")

// ViewState экран приложения, закрытый набор
type ViewState string

const (
	ViewDashboard     ViewState = "DASHBOARD"
	ViewAttendance    ViewState = "ATTENDANCE"
	ViewAcademics     ViewState = "ACADEMICS"
	ViewCommunication ViewState = "COMMUNICATION"
	ViewSchedule      ViewState = "SCHEDULE"
	ViewAdminUsers    ViewState = "ADMIN_USERS"
	ViewAIAssistant   ViewState = "AI_ASSISTANT"
)

// DefaultView экран после входа и после выхода
const DefaultView = ViewDashboard

// Views все экраны
var Views = []ViewState{
	ViewDashboard,
	ViewAttendance,
	ViewAcademics,
	ViewCommunication,
	ViewSchedule,
	ViewAdminUsers,
	ViewAIAssistant,
}

// ParseView проверяет идентификатор экрана
func ParseView(s string) (ViewState, error) {
	v := ViewState(s)
	if !slices.Contains(Views, v) {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
	return v, nil
}

// Item пункт меню
type Item struct {
	View  ViewState
	Label string
	Icon  string
	Emoji string
}

var table = map[model.Role][]Item{
	model.RoleAdmin: {
		{View: ViewDashboard, Label: "Overview", Icon: "layout-dashboard", Emoji: "🏫"},
		{View: ViewAdminUsers, Label: "Manage Users", Icon: "users", Emoji: "👥"},
		{View: ViewCommunication, Label: "Notices & Circulars", Icon: "message-square", Emoji: "📢"},
		{View: ViewSchedule, Label: "Timetable & Events", Icon: "calendar", Emoji: "📅"},
		{View: ViewAIAssistant, Label: "AI Admin Helper", Icon: "sparkles", Emoji: "✨"},
	},
	model.RoleTeacher: {
		{View: ViewDashboard, Label: "Dashboard", Icon: "layout-dashboard", Emoji: "🏫"},
		{View: ViewAttendance, Label: "Attendance", Icon: "check-square", Emoji: "✅"},
		{View: ViewAcademics, Label: "Homework & Marks", Icon: "book-open", Emoji: "📚"},
		{View: ViewCommunication, Label: "Announcements", Icon: "message-square", Emoji: "📢"},
		{View: ViewAIAssistant, Label: "Lesson Planner", Icon: "sparkles", Emoji: "✨"},
	},
	model.RoleParent: {
		{View: ViewDashboard, Label: "My Ward", Icon: "graduation-cap", Emoji: "🎓"},
		{View: ViewAcademics, Label: "Homework & Results", Icon: "book-open", Emoji: "📚"},
		{View: ViewSchedule, Label: "Timetable", Icon: "calendar", Emoji: "📅"},
		{View: ViewCommunication, Label: "Notices", Icon: "message-square", Emoji: "📢"},
		{View: ViewAIAssistant, Label: "Study Helper", Icon: "sparkles", Emoji: "✨"},
	},
}

// For возвращает меню роли. Каждый вызов отдаёт новую копию; для неизвестной роли nil.
func For(role model.Role) []Item {
	return slices.Clone(table[role])
}

// Allows есть ли экран в меню роли. Меню только подсказка интерфейса,
// переход на экран вне меню не запрещён.
func Allows(role model.Role, view ViewState) bool {
	return slices.ContainsFunc(table[role], func(it Item) bool { return it.View == view })
}

// Label подпись экрана в меню роли; для экрана вне меню сам идентификатор
func Label(role model.Role, view ViewState) string {
	for _, it := range table[role] {
		if it.View == view {
			return it.Label
		}
	}
	return string(view)
}
