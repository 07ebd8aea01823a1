package model

import (
	"fmt"
	"strings"
)

// DefaultClass класс по умолчанию для нового учителя
const DefaultClass = "X-A"

// UserProfile профиль пользователя приложения.
// ClassAssigned заполнен только у учителя, StudentID только у родителя.
type UserProfile struct {
	ID            string `json:"id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Role          Role   `json:"role" validate:"required,oneof=admin teacher parent"`
	Avatar        string `json:"avatar,omitempty"`
	ClassAssigned string `json:"classAssigned,omitempty" validate:"required_if=Role teacher"`
	StudentID     string `json:"studentId,omitempty" validate:"required_if=Role parent"`
}

// SetID устанавливает идентификатор документа
func (u *UserProfile) SetID(id string) { u.ID = id }

// NewProfile создаёт профиль для роли с теми же значениями по умолчанию,
// что и при самостоятельной регистрации: учитель получает класс X-A,
// родитель привязывается к первому ученику из демо-набора.
func NewProfile(id, name, email string, role Role) UserProfile {
	p := UserProfile{
		ID:    id,
		Name:  name,
		Email: email,
		Role:  role,
	}
	switch role {
	case RoleTeacher:
		p.ClassAssigned = DefaultClass
	case RoleParent:
		p.StudentID = FixtureMarksStudentID
	}
	return p
}

// Normalize приводит роль к закрытому набору и убирает поля чужой роли
func (u *UserProfile) Normalize() {
	u.Role = CoerceRole(string(u.Role))
	if u.Role != RoleTeacher {
		u.ClassAssigned = ""
	}
	if u.Role != RoleParent {
		u.StudentID = ""
	}
}

// Validate проверяет профиль перед записью
func (u UserProfile) Validate() error {
	if !u.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, u.Role)
	}
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("validate profile: %w", err)
	}
	if u.Role != RoleTeacher && u.ClassAssigned != "" {
		return fmt.Errorf("validate profile: classAssigned is only allowed for teachers")
	}
	if u.Role != RoleParent && u.StudentID != "" {
		return fmt.Errorf("validate profile: studentId is only allowed for parents")
	}
	return nil
}

// Initial первая буква имени для аватара
func (u UserProfile) Initial() string {
	for _, r := range u.Name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// NameFromIdentity выбирает отображаемое имя: сначала имя из провайдера,
// затем часть email до "@", иначе "User".
func NameFromIdentity(displayName, email string) string {
	if name := strings.TrimSpace(displayName); name != "" {
		return name
	}
	if local, _, _ := strings.Cut(email, "@"); local != "" {
		return local
	}
	return "User"
}
