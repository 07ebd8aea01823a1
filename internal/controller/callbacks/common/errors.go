package common

import (
	"errors"

	"github.com/Freeeeeet/sampark_kvk/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNotSignedIn   = errors.New("chat is not signed in")
	ErrNotAllowed    = errors.New("action is not available for this role")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotSignedIn):
		return "🔒 Please sign in first. Use /login"
	case errors.Is(err, ErrNotAllowed):
		return "⛔ This action is not available for your role"
	case errors.Is(err, ErrNoMessage):
		return "❌ Could not process the message"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid data format"
	case errors.Is(err, service.ErrInvalidInput):
		return service.AuthErrorMessage(err)
	default:
		return "❌ Something went wrong"
	}
}
