package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRole возвращается для значения роли вне закрытого набора
var ErrInvalidRole = errors.New("invalid role")

// Role роль пользователя в школе
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
)

// Roles все допустимые роли в порядке отображения на экране входа
var Roles = []Role{RoleAdmin, RoleTeacher, RoleParent}

// DefaultRole роль для новых пользователей без профиля.
// Учитель, а не администратор: при сомнении выдаём меньше прав.
const DefaultRole = RoleTeacher

// Valid проверяет что роль входит в закрытый набор
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleParent:
		return true
	}
	return false
}

// Title возвращает роль с заглавной буквы для отображения
func (r Role) Title() string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// ParseRole разбирает строку в роль, отвергая неизвестные значения
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// CoerceRole приводит произвольное значение к допустимой роли.
// Неизвестное значение превращается в DefaultRole.
func CoerceRole(s string) Role {
	r, err := ParseRole(s)
	if err != nil {
		return DefaultRole
	}
	return r
}
