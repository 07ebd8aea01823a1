package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidCredential неверный email или пароль
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrEmailInUse email уже зарегистрирован
	ErrEmailInUse = errors.New("email already in use")
	// ErrWeakPassword пароль не проходит минимальные требования
	ErrWeakPassword = errors.New("weak password")
)

// Identity личность, подтверждённая провайдером
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// Listener получает текущую личность или nil, если вход не выполнен
type Listener func(id *Identity)

// Client сессия провайдера для одного пользователя приложения
// (одна вкладка браузера, один чат бота).
type Client interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignOut(ctx context.Context) error
	Current() *Identity
	// OnAuthStateChanged сразу вызывает fn с текущим состоянием и затем при каждом
	// изменении. Возвращает функцию отписки.
	OnAuthStateChanged(fn Listener) (unsubscribe func())
}

// Provider внешний провайдер личностей
type Provider interface {
	NewClient() Client
	// SignUp создаёт учётную запись, не выполняя вход
	SignUp(ctx context.Context, email, password, displayName string) (*Identity, error)
}
