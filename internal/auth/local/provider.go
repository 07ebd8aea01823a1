package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Freeeeeet/sampark_kvk/internal/auth"
	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

// MinPasswordLength минимальная длина пароля
const MinPasswordLength = 6

// credential учётная запись в коллекции credentials, id документа это email в нижнем регистре
type credential struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName,omitempty"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Provider провайдер личностей поверх документного хранилища с bcrypt-хешами паролей
type Provider struct {
	store  storage.Store
	logger *zap.Logger
	cost   int

	// регистрация проверяет и пишет запись не атомарно
	signUpMu sync.Mutex
}

var _ auth.Provider = (*Provider)(nil)

// Option настройка провайдера
type Option func(*Provider)

// WithCost задаёт стоимость bcrypt
func WithCost(cost int) Option {
	return func(p *Provider) { p.cost = cost }
}

// NewProvider создаёт провайдер
func NewProvider(store storage.Store, logger *zap.Logger, opts ...Option) *Provider {
	p := &Provider{
		store:  store,
		logger: logger,
		cost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewClient создаёт сессию без выполненного входа
func (p *Provider) NewClient() auth.Client {
	return &Client{provider: p}
}

// SignUp регистрирует учётную запись
func (p *Provider) SignUp(ctx context.Context, email, password, displayName string) (*auth.Identity, error) {
	key := normalizeEmail(email)
	if key == "" {
		return nil, auth.ErrInvalidCredential
	}
	if len(password) < MinPasswordLength {
		return nil, auth.ErrWeakPassword
	}

	p.signUpMu.Lock()
	defer p.signUpMu.Unlock()

	_, err := p.store.Get(ctx, storage.CollectionCredentials, key)
	switch {
	case err == nil:
		return nil, auth.ErrEmailInUse
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("check credential: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	cred := credential{
		UID:          uuid.NewString(),
		Email:        key,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	data, err := json.Marshal(cred)
	if err != nil {
		return nil, fmt.Errorf("encode credential: %w", err)
	}
	if err := p.store.Upsert(ctx, storage.CollectionCredentials, key, data); err != nil {
		return nil, fmt.Errorf("save credential: %w", err)
	}

	p.logger.Info("Account created", zap.String("uid", cred.UID))

	return cred.identity(), nil
}

// verify проверяет пароль и возвращает личность
func (p *Provider) verify(ctx context.Context, email, password string) (*auth.Identity, error) {
	key := normalizeEmail(email)
	if key == "" {
		return nil, auth.ErrInvalidCredential
	}

	doc, err := p.store.Get(ctx, storage.CollectionCredentials, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, auth.ErrInvalidCredential
		}
		return nil, fmt.Errorf("load credential: %w", err)
	}

	var cred credential
	if err := json.Unmarshal(doc.Data, &cred); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, auth.ErrInvalidCredential
	}

	return cred.identity(), nil
}

func (c credential) identity() *auth.Identity {
	return &auth.Identity{UID: c.UID, Email: c.Email, DisplayName: c.DisplayName}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
