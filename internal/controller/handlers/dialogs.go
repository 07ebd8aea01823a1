package handlers

import (
	"context"
	"errors"
	"html"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	authn "github.com/Freeeeeet/sampark_kvk/internal/auth"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/auth"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/service"
)

// ThinkingText временный ответ, пока помощник генерирует текст
const ThinkingText = "🤖 Thinking..."

// validEmail проверяет формат email тем же валидатором, что и регистрация
func validEmail(email string) bool {
	return model.Validator().Var(email, "required,email") == nil
}

// handleLoginEmail шаг 1 входа: email
func (h *Handlers) handleLoginEmail(ctx context.Context, b *bot.Bot, msg *models.Message) {
	chatID := msg.Chat.ID
	email := strings.TrimSpace(msg.Text)

	if !validEmail(email) {
		h.sendMessage(ctx, b, chatID, retryText("Please enter a valid email address."), cancelKeyboard())
		return
	}

	h.states.Dispatch(chatID, state.StartDialog{
		State: state.StateLoginPassword,
		Data:  map[string]any{state.KeyEmail: email},
	})
	h.sendMessage(ctx, b, chatID, auth.LoginPasswordText, cancelKeyboard())
}

// handleLoginPassword шаг 2 входа: пароль. Сообщение с паролем удаляется.
func (h *Handlers) handleLoginPassword(ctx context.Context, b *bot.Bot, msg *models.Message) {
	chatID := msg.Chat.ID
	password := msg.Text
	h.deleteMessage(ctx, b, msg)

	chat, ok := h.openChat(ctx, b, chatID)
	if !ok {
		return
	}

	email := h.states.GetString(chatID, state.KeyEmail)
	if _, err := h.accounts.SignIn(ctx, chat.Client, email, password); err != nil {
		h.logger.Info("Sign-in rejected", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, retryText(html.EscapeString(service.AuthErrorMessage(err))), cancelKeyboard())
		return
	}

	// экран панели пришлёт уведомление о смене сессии
	h.logger.Info("Signed in", zap.Int64("chat_id", chatID))
}

// handleSignUpEmail шаг 1 регистрации: email
func (h *Handlers) handleSignUpEmail(ctx context.Context, b *bot.Bot, msg *models.Message) {
	chatID := msg.Chat.ID
	email := strings.TrimSpace(msg.Text)

	if !validEmail(email) {
		h.sendMessage(ctx, b, chatID, retryText("Please enter a valid email address."), cancelKeyboard())
		return
	}

	h.states.Dispatch(chatID, state.StartDialog{
		State: state.StateSignUpPassword,
		Data: map[string]any{
			state.KeySignUpRole: h.states.GetString(chatID, state.KeySignUpRole),
			state.KeyEmail:      email,
		},
	})
	h.sendMessage(ctx, b, chatID, auth.SignUpPassText, cancelKeyboard())
}

// handleSignUpPassword шаг 2 регистрации: пароль. Сообщение с паролем удаляется.
func (h *Handlers) handleSignUpPassword(ctx context.Context, b *bot.Bot, msg *models.Message) {
	chatID := msg.Chat.ID
	password := msg.Text
	h.deleteMessage(ctx, b, msg)

	chat, ok := h.openChat(ctx, b, chatID)
	if !ok {
		return
	}

	role := h.states.GetString(chatID, state.KeySignUpRole)
	in := service.SignUpInput{
		Email:    h.states.GetString(chatID, state.KeyEmail),
		Password: password,
		Role:     role,
	}

	_, err := h.accounts.SignUp(ctx, chat.Client, in)
	switch {
	case err == nil:
		h.logger.Info("Account created", zap.Int64("chat_id", chatID), zap.String("role", role))
	case errors.Is(err, authn.ErrEmailInUse):
		// email занят: возвращаемся к вводу email, роль сохраняется
		h.states.Dispatch(chatID, state.StartDialog{
			State: state.StateSignUpEmail,
			Data:  map[string]any{state.KeySignUpRole: role},
		})
		h.sendMessage(ctx, b, chatID, retryText(service.AuthErrorMessage(err))+"\n\n"+auth.SignUpEmailText, cancelKeyboard())
	default:
		h.logger.Info("Sign-up rejected", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, retryText(html.EscapeString(service.AuthErrorMessage(err))), cancelKeyboard())
	}
}

// handleAssistantPrompt отправляет запрос AI помощнику. Диалог остаётся
// открытым для следующих вопросов; ответ на устаревший запрос не показывается.
func (h *Handlers) handleAssistantPrompt(ctx context.Context, b *bot.Bot, msg *models.Message) {
	chatID := msg.Chat.ID

	dash, ok := h.requireDashboard(ctx, b, chatID)
	if !ok {
		h.states.Dispatch(chatID, state.ClearDialog{})
		return
	}

	token := h.states.BeginFetch(chatID, state.SlotAssistant)

	placeholder, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   ThinkingText,
	})
	if err != nil {
		h.logger.Error("Failed to send placeholder", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	answer := dash.Ask(ctx, msg.Text)

	if !h.states.IsCurrent(chatID, token) || h.states.GetState(chatID) != state.StateAssistantPrompt {
		h.logger.Debug("Dropping superseded assistant answer", zap.Int64("chat_id", chatID))
		h.deleteMessage(ctx, b, placeholder)
		return
	}

	kb := keyboard.NewBuilder().Row(keyboard.BackToMenuButton()).Build()
	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   placeholder.ID,
		Text:        common.Truncate(answer, common.MaxMessageLength),
		ReplyMarkup: kb,
	})
	if err != nil {
		h.logger.Error("Failed to deliver assistant answer", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
