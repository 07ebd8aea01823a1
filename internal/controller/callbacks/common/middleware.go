package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/callbacktypes"
)

// WithChat создаёт HandlerContext и открывает сессию чата.
// Вход не требуется.
func WithChat(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.OpenChat(); err != nil {
		h.Logger.Error("Failed to open chat session",
			zap.Int64("chat_id", hc.ChatID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithDashboard создаёт HandlerContext и проверяет что в чате выполнен вход
// При ошибке автоматически отвечает пользователю
func WithDashboard(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireDashboard(); err != nil {
		h.Logger.Info("Signed-in check failed",
			zap.Int64("chat_id", hc.ChatID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithCapability как WithDashboard, но дополнительно требует, чтобы панель роли
// реализовывала интерфейс T
func WithCapability[T any](
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext, T),
) {
	WithDashboard(ctx, b, callback, h, func(hc *HandlerContext) {
		capability, ok := hc.Dashboard.(T)
		if !ok {
			h.Logger.Warn("Dashboard lacks capability",
				zap.Int64("chat_id", hc.ChatID),
				zap.String("role", string(hc.Dashboard.Role())),
				zap.String("data", callback.Data))
			hc.AnswerAlert(ErrorMessage(ErrNotAllowed))
			return
		}
		handler(hc, capability)
	})
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("chat_id", hc.ChatID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}
