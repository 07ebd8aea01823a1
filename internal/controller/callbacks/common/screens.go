package common

import (
	"context"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
	"github.com/Freeeeeet/sampark_kvk/internal/dashboard"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
)

// MaxMessageLength лимит Telegram на текст сообщения
const MaxMessageLength = 4096

// WelcomeText приветствие чата без входа
const WelcomeText = "🏫 <b>SAMPARK KVK</b>\n" +
	"School dashboard for administrators, teachers and parents.\n\n" +
	"Sign in with your school account or create a new one."

// RenderOption уточняет запрос на отрисовку
type RenderOption func(*dashboard.Request)

// WithUserRole фильтр списка пользователей
func WithUserRole(role model.Role) RenderOption {
	return func(r *dashboard.Request) { r.UserRole = role }
}

// ActionData callback data кнопки экрана
func ActionData(a dashboard.Action) string {
	if a.Arg == "" {
		return string(a.Kind)
	}
	return string(a.Kind) + ":" + a.Arg
}

// FormatScreen превращает экран в HTML текст сообщения
func FormatScreen(profile model.UserProfile, s dashboard.Screen) string {
	var sb strings.Builder

	sb.WriteString("<b>" + html.EscapeString(s.Title) + "</b>\n")
	sb.WriteString("<i>" + html.EscapeString(profile.Name) + " · " + profile.Role.Title() + "</i>\n\n")
	for _, line := range s.Lines {
		sb.WriteString(html.EscapeString(line))
		sb.WriteByte('\n')
	}

	return Truncate(strings.TrimRight(sb.String(), "\n"), MaxMessageLength)
}

// ScreenKeyboard кнопки экрана и меню роли
func ScreenKeyboard(s dashboard.Screen, items []navigation.Item, current navigation.ViewState) *models.InlineKeyboardMarkup {
	b := keyboard.NewBuilder()
	for _, row := range s.Actions {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, a := range row {
			buttons = append(buttons, keyboard.Button(a.Label, ActionData(a)))
		}
		b.Row(buttons...)
	}
	return b.AddNavigation(items, current).Build()
}

// ShowDashboard рисует текущий экран чата. При messageID != 0 редактирует
// это сообщение, иначе отправляет новое. Без входа показывает приветствие.
// Результат отрисовки, которую обогнала более новая, отбрасывается.
func ShowDashboard(
	ctx context.Context,
	b *bot.Bot,
	h *callbacktypes.Handler,
	chatID int64,
	messageID int,
	opts ...RenderOption,
) error {
	data := h.States.Get(chatID)

	var dash dashboard.Dashboard
	if chat, ok := h.Sessions.Get(chatID); ok {
		dash = chat.Dashboard()
	}
	if dash == nil || !data.Session.IsSignedIn() || dash.Profile().ID != data.Session.Profile.ID {
		return ShowWelcome(ctx, b, chatID, messageID, "")
	}

	req := dashboard.Request{
		View:    data.View,
		Class:   data.SelectedClass,
		Present: data.IsPresent,
	}
	for _, opt := range opts {
		opt(&req)
	}

	token := h.States.BeginFetch(chatID, state.SlotScreen)
	screen := dash.Render(ctx, req)
	if !h.States.IsCurrent(chatID, token) {
		h.Logger.Debug("Dropping superseded screen",
			zap.Int64("chat_id", chatID),
			zap.String("view", string(req.View)))
		return nil
	}

	text := FormatScreen(dash.Profile(), screen)
	return show(ctx, b, chatID, messageID, text, ScreenKeyboard(screen, dash.Navigation(), data.View))
}

// ShowWelcome показывает приветствие с кнопками входа и регистрации
func ShowWelcome(ctx context.Context, b *bot.Bot, chatID int64, messageID int, notice string) error {
	text := WelcomeText
	if notice != "" {
		text = html.EscapeString(notice) + "\n\n" + text
	}
	return show(ctx, b, chatID, messageID, text, keyboard.Welcome())
}

func show(ctx context.Context, b *bot.Bot, chatID int64, messageID int, text string, kb *models.InlineKeyboardMarkup) error {
	if messageID != 0 {
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: kb,
		})
		if err == nil || IsMessageNotModifiedError(err) {
			return nil
		}
		// сообщение могло быть удалено; отправляем новое
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	return err
}

// Truncate обрезает текст по границе строки, чтобы не разрезать HTML сущность.
// Текст без переводов строк режется по границе символа.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	const ellipsis = "\n…"
	head := s[:limit-len(ellipsis)]
	if cut := strings.LastIndexByte(head, '\n'); cut > 0 {
		return head[:cut] + ellipsis
	}
	for len(head) > 0 && !utf8.RuneStart(s[len(head)]) {
		head = head[:len(head)-1]
	}
	return head + ellipsis
}
