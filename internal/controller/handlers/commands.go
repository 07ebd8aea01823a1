package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/auth"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
)

const helpText = "📚 <b>Commands</b>\n\n" +
	"/start - Open SAMPARK KVK\n" +
	"/login - Sign in with email and password\n" +
	"/signup - Create an account\n" +
	"/menu - Show your dashboard\n" +
	"/logout - Sign out\n" +
	"/cancel - Cancel the current dialog\n" +
	"/help - Show this help\n\n" +
	"Administrators see school overview and users, teachers take attendance " +
	"for their class, parents follow their child's results and homework."

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if _, ok := h.openChat(ctx, b, chatID); !ok {
		return
	}
	h.states.Dispatch(chatID, state.ClearDialog{})

	h.logger.Info("Start command", zap.Int64("chat_id", chatID))

	h.showDashboard(ctx, b, chatID)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleMenu обрабатывает команду /menu
func (h *Handlers) HandleMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if _, ok := h.openChat(ctx, b, chatID); !ok {
		return
	}
	h.showDashboard(ctx, b, chatID)
}

// HandleLogin обрабатывает команду /login
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if _, ok := h.openChat(ctx, b, chatID); !ok {
		return
	}

	if h.states.Get(chatID).Session.IsSignedIn() {
		h.sendMessage(ctx, b, chatID, "ℹ️ You are already signed in. Use /logout to switch accounts.", nil)
		return
	}

	h.states.Dispatch(chatID, state.StartDialog{State: state.StateLoginEmail})
	h.sendMessage(ctx, b, chatID, auth.LoginEmailText, cancelKeyboard())
}

// HandleSignUp обрабатывает команду /signup
func (h *Handlers) HandleSignUp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if _, ok := h.openChat(ctx, b, chatID); !ok {
		return
	}

	if h.states.Get(chatID).Session.IsSignedIn() {
		h.sendMessage(ctx, b, chatID, "ℹ️ You are already signed in. Use /logout first.", nil)
		return
	}

	h.states.Dispatch(chatID, state.ClearDialog{})
	h.sendMessage(ctx, b, chatID, auth.SignUpRoleText, keyboard.SignUpRoles())
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	chat, ok := h.sessions.Get(chatID)
	if !ok || !h.states.Get(chatID).Session.IsSignedIn() {
		h.sendMessage(ctx, b, chatID, "ℹ️ You are not signed in.", nil)
		return
	}

	chat.Resolver.SignOut(ctx)
	h.logger.Info("Sign-out requested", zap.Int64("chat_id", chatID))
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if h.states.GetState(chatID) == state.StateNone {
		h.sendMessage(ctx, b, chatID, "❌ Nothing to cancel.", nil)
		return
	}

	h.states.Dispatch(chatID, state.ClearDialog{})
	h.sendMessage(ctx, b, chatID, "✅ Cancelled.", nil)
	h.showDashboard(ctx, b, chatID)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния чата
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID := update.Message.Chat.ID
	currentState := h.states.GetState(chatID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("chat_id", chatID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		h.sendMessage(ctx, b, chatID, "ℹ️ Use the buttons or /menu. Type /help for commands.", nil)
	case state.StateLoginEmail:
		h.handleLoginEmail(ctx, b, update.Message)
	case state.StateLoginPassword:
		h.handleLoginPassword(ctx, b, update.Message)
	case state.StateSignUpEmail:
		h.handleSignUpEmail(ctx, b, update.Message)
	case state.StateSignUpPassword:
		h.handleSignUpPassword(ctx, b, update.Message)
	case state.StateAssistantPrompt:
		h.handleAssistantPrompt(ctx, b, update.Message)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.states.Dispatch(chatID, state.ClearDialog{})
	}
}

func cancelKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().Row(keyboard.CancelButton(keyboard.DataMenu)).Build()
}

func retryText(msg string) string {
	return fmt.Sprintf("❌ %s\n\nTry again or use /cancel.", msg)
}
