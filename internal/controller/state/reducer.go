package state

import (
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
	"github.com/Freeeeeet/sampark_kvk/internal/session"
)

// Action переход состояния чата
type Action interface {
	apply(UserData) UserData
}

// SessionChanged резолвер выдал новое состояние сессии
type SessionChanged struct {
	State session.State
}

// Navigate переход на экран. Экран вне меню роли не запрещается.
type Navigate struct {
	View navigation.ViewState
}

// SelectClass учитель выбрал класс; отметки сбрасываются
type SelectClass struct {
	Class string
}

// ResetAttendance все ученики списка отмечены присутствующими
type ResetAttendance struct {
	StudentIDs []string
}

// ToggleAttendance переключает отметку ученика
type ToggleAttendance struct {
	StudentID string
}

// StartDialog начинает диалог и кладёт в него данные
type StartDialog struct {
	State UserState
	Data  map[string]any
}

// SetDialogData добавляет данные в текущий диалог
type SetDialogData struct {
	Key   string
	Value any
}

// ClearDialog завершает диалог
type ClearDialog struct{}

// Reduce чистая функция перехода: не меняет s и не имеет побочных эффектов
func Reduce(s UserData, a Action) UserData {
	if a == nil {
		return s
	}
	return a.apply(s.clone())
}

func (a SessionChanged) apply(s UserData) UserData {
	prev := s.Session
	s.Session = a.State

	switch a.State.Status {
	case session.StatusSignedIn:
		if samePrincipal(prev, a.State) {
			return s
		}
		s.View = navigation.DefaultView
		s.SelectedClass = initialClass(*a.State.Profile)
		s.Attendance = nil
		if s.State.IsAuthDialog() {
			s.State, s.Data = StateNone, nil
		}

	case session.StatusSignedOut:
		s.View = navigation.DefaultView
		s.SelectedClass = ""
		s.Attendance = nil
		// диалог входа начинается до того, как резолвер сообщил о выходе
		if !s.State.IsAuthDialog() {
			s.State, s.Data = StateNone, nil
		}
	}

	return s
}

func samePrincipal(prev, next session.State) bool {
	return prev.IsSignedIn() && next.IsSignedIn() && prev.Profile.ID == next.Profile.ID
}

func initialClass(p model.UserProfile) string {
	if p.Role != model.RoleTeacher {
		return ""
	}
	if p.ClassAssigned != "" {
		return p.ClassAssigned
	}
	return model.DefaultClass
}

func (a Navigate) apply(s UserData) UserData {
	if s.View != a.View && s.State == StateAssistantPrompt {
		s.State, s.Data = StateNone, nil
	}
	s.View = a.View
	return s
}

func (a SelectClass) apply(s UserData) UserData {
	if s.SelectedClass != a.Class {
		s.Attendance = nil
	}
	s.SelectedClass = a.Class
	return s
}

func (a ResetAttendance) apply(s UserData) UserData {
	s.Attendance = make(map[string]bool, len(a.StudentIDs))
	for _, id := range a.StudentIDs {
		s.Attendance[id] = true
	}
	return s
}

func (a ToggleAttendance) apply(s UserData) UserData {
	present := s.IsPresent(a.StudentID)
	if s.Attendance == nil {
		s.Attendance = make(map[string]bool)
	}
	s.Attendance[a.StudentID] = !present
	return s
}

func (a StartDialog) apply(s UserData) UserData {
	s.State = a.State
	s.Data = make(map[string]any, len(a.Data))
	for k, v := range a.Data {
		s.Data[k] = v
	}
	return s
}

func (a SetDialogData) apply(s UserData) UserData {
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[a.Key] = a.Value
	return s
}

func (ClearDialog) apply(s UserData) UserData {
	s.State, s.Data = StateNone, nil
	return s
}
