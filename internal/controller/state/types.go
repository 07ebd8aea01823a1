package state

import (
	"maps"

	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
	"github.com/Freeeeeet/sampark_kvk/internal/session"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного диалога

	// Вход и регистрация
	StateLoginEmail     UserState = "login_email"
	StateLoginPassword  UserState = "login_password"
	StateSignUpEmail    UserState = "signup_email"
	StateSignUpPassword UserState = "signup_password"

	// Запрос к AI помощнику
	StateAssistantPrompt UserState = "assistant_prompt"
)

// IsAuthDialog диалог входа или регистрации, доступный без сессии
func (s UserState) IsAuthDialog() bool {
	switch s {
	case StateLoginEmail, StateLoginPassword, StateSignUpEmail, StateSignUpPassword:
		return true
	}
	return false
}

// Ключи временных данных диалога
const (
	KeyEmail      = "email"
	KeySignUpRole = "signup_role"
	KeyMessageID  = "message_id"
)

// UserData состояние одного чата: сессия, текущий экран, выбранный класс,
// отметки посещаемости и активный диалог.
type UserData struct {
	Session       session.State
	View          navigation.ViewState
	SelectedClass string
	Attendance    map[string]bool
	State         UserState
	Data          map[string]any
}

// NewUserData начальное состояние чата
func NewUserData() UserData {
	return UserData{
		Session: session.Loading(),
		View:    navigation.DefaultView,
	}
}

// IsPresent отметка ученика; без отметки ученик считается присутствующим
func (d UserData) IsPresent(studentID string) bool {
	present, ok := d.Attendance[studentID]
	return !ok || present
}

func (d UserData) clone() UserData {
	d.Attendance = maps.Clone(d.Attendance)
	d.Data = maps.Clone(d.Data)
	return d
}
