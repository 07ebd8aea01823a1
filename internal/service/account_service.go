package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/auth"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
)

// ProfileWriter запись профилей пользователей
type ProfileWriter interface {
	SaveProfile(ctx context.Context, profile model.UserProfile) error
}

// SignUpInput данные формы регистрации
type SignUpInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"required,oneof=admin teacher parent"`
}

// ErrInvalidInput данные формы не прошли проверку
var ErrInvalidInput = errors.New("invalid input")

type AccountService struct {
	provider auth.Provider
	profiles ProfileWriter
	logger   *zap.Logger
}

func NewAccountService(provider auth.Provider, profiles ProfileWriter, logger *zap.Logger) *AccountService {
	return &AccountService{
		provider: provider,
		profiles: profiles,
		logger:   logger,
	}
}

// SignUp регистрирует учётную запись, записывает профиль и только затем выполняет вход,
// чтобы резолвер сессии сразу нашёл профиль с выбранной ролью
func (s *AccountService) SignUp(ctx context.Context, client auth.Client, in SignUpInput) (*auth.Identity, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := model.Validator().Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	role, err := model.ParseRole(in.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.provider.SignUp(ctx, in.Email, in.Password, "")
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	name := model.NameFromIdentity("", id.Email)
	profile := model.NewProfile(id.UID, name, id.Email, role)
	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		s.logger.Error("Failed to save profile after sign-up",
			zap.String("uid", id.UID),
			zap.Error(err))
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.logger.Info("New user registered",
		zap.String("uid", id.UID),
		zap.String("role", string(role)))

	signedIn, err := client.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		return nil, fmt.Errorf("sign in after sign up: %w", err)
	}
	return signedIn, nil
}

// SignIn выполняет вход
func (s *AccountService) SignIn(ctx context.Context, client auth.Client, email, password string) (*auth.Identity, error) {
	id, err := client.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		s.logger.Info("Sign-in rejected", zap.Error(err))
		return nil, fmt.Errorf("sign in: %w", err)
	}

	s.logger.Info("User signed in", zap.String("uid", id.UID))
	return id, nil
}

// AuthErrorMessage текст ошибки входа или регистрации для пользователя
func AuthErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredential):
		return "Invalid email or password."
	case errors.Is(err, auth.ErrEmailInUse):
		return "Email already registered."
	case errors.Is(err, auth.ErrWeakPassword):
		return "Password should be at least 6 characters."
	case errors.Is(err, ErrInvalidInput):
		return "Please enter a valid email and a password of at least 6 characters."
	default:
		return "Authentication failed."
	}
}
