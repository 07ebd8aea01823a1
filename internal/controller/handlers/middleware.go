package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/sessions"
	"github.com/Freeeeeet/sampark_kvk/internal/dashboard"
)

// openChat открывает сессию чата
// Возвращает chat и true если OK, nil и false если нет
func (h *Handlers) openChat(ctx context.Context, b *bot.Bot, chatID int64) (*sessions.Chat, bool) {
	chat, err := h.sessions.Open(chatID)
	if err != nil {
		h.logger.Error("Failed to open chat session", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return nil, false
	}
	return chat, true
}

// requireDashboard проверяет что в чате выполнен вход
func (h *Handlers) requireDashboard(ctx context.Context, b *bot.Bot, chatID int64) (dashboard.Dashboard, bool) {
	chat, ok := h.openChat(ctx, b, chatID)
	if !ok {
		return nil, false
	}

	d := chat.Dashboard()
	if d == nil || !h.states.Get(chatID).Session.IsSignedIn() {
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrNotSignedIn))
		return nil, false
	}
	return d, true
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет HTML сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// deleteMessage удаляет сообщение пользователя (например, с паролем)
func (h *Handlers) deleteMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
	if err != nil {
		h.logger.Warn("Failed to delete message",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Int("message_id", msg.ID),
			zap.Error(err))
	}
}

// showDashboard отправляет текущий экран новым сообщением
func (h *Handlers) showDashboard(ctx context.Context, b *bot.Bot, chatID int64) {
	if err := common.ShowDashboard(ctx, b, h.deps, chatID, 0); err != nil {
		h.logger.Error("Failed to show dashboard", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
