package common

import (
	"bytes"
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/sessions"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
	"github.com/Freeeeeet/sampark_kvk/internal/dashboard"
)

// HandlerContext содержит общие данные для обработки callback
// Это избавляет от дублирования кода получения сессии, сообщения и т.д.
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	Chat       *sessions.Chat
	Dashboard  dashboard.Dashboard
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	chatID := callback.From.ID
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// OpenChat открывает сессию чата
func (hc *HandlerContext) OpenChat() error {
	if hc.Chat != nil {
		return nil
	}
	chat, err := hc.Handler.Sessions.Open(hc.ChatID)
	if err != nil {
		return err
	}
	hc.Chat = chat
	return nil
}

// RequireDashboard проверяет что в чате выполнен вход
func (hc *HandlerContext) RequireDashboard() error {
	if err := hc.OpenChat(); err != nil {
		return err
	}
	d := hc.Chat.Dashboard()
	if d == nil || !hc.State().Session.IsSignedIn() {
		return ErrNotSignedIn
	}
	hc.Dashboard = d
	return nil
}

// State текущее состояние чата
func (hc *HandlerContext) State() state.UserData {
	return hc.Handler.States.Get(hc.ChatID)
}

// Dispatch применяет переход к состоянию чата
func (hc *HandlerContext) Dispatch(action state.Action) state.UserData {
	return hc.Handler.States.Dispatch(hc.ChatID, action)
}

// MessageID идентификатор сообщения с кнопками, 0 если его нет
func (hc *HandlerContext) MessageID() int {
	if hc.Message == nil {
		return 0
	}
	return hc.Message.ID
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, &bot.EditMessageTextParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})

	// Игнорируем ошибку "message is not modified" - это не настоящая ошибка
	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

// SendMessage отправляет новое сообщение
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	_, err := hc.Bot.SendMessage(hc.Ctx, &bot.SendMessageParams{
		ChatID:      hc.ChatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})

	return err
}

// SendDocument отправляет файл
func (hc *HandlerContext) SendDocument(doc dashboard.Document, caption string) error {
	_, err := hc.Bot.SendDocument(hc.Ctx, &bot.SendDocumentParams{
		ChatID:   hc.ChatID,
		Document: &models.InputFileUpload{Filename: doc.Filename, Data: bytes.NewReader(doc.Data)},
		Caption:  caption,
	})

	return err
}

// ShowDashboard перерисовывает текущий экран в сообщении с кнопками
func (hc *HandlerContext) ShowDashboard(opts ...RenderOption) error {
	return ShowDashboard(hc.Ctx, hc.Bot, hc.Handler, hc.ChatID, hc.MessageID(), opts...)
}
