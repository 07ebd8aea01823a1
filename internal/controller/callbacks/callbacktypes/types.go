package callbacktypes

import (
	"github.com/Freeeeeet/sampark_kvk/internal/controller/sessions"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
	"github.com/Freeeeeet/sampark_kvk/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	States   *state.Manager
	Sessions *sessions.Registry
	Accounts *service.AccountService
	Logger   *zap.Logger
}
