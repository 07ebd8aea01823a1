package handlers

import (
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/sessions"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
	"github.com/Freeeeeet/sampark_kvk/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	deps     *callbacktypes.Handler
	states   *state.Manager
	sessions *sessions.Registry
	accounts *service.AccountService
	logger   *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(deps *callbacktypes.Handler) *Handlers {
	return &Handlers{
		deps:     deps,
		states:   deps.States,
		sessions: deps.Sessions,
		accounts: deps.Accounts,
		logger:   deps.Logger,
	}
}
