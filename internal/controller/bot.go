package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/handlers"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/sessions"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
	"github.com/Freeeeeet/sampark_kvk/internal/service"
	"github.com/Freeeeeet/sampark_kvk/internal/session"
)

// SetupText ответ бота, пока хранилище не настроено
const SetupText = "⚙️ SAMPARK KVK is not configured yet.\n\n" +
	"Set STORE_DRIVER and its connection settings (DB_DSN, REDIS_ADDR or " +
	"FIREBASE_PROJECT_ID) in the environment or .env file, then restart the bot."

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	sessions        *sessions.Registry
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	states *state.Manager,
	registry *sessions.Registry,
	accounts *service.AccountService,
	logger *zap.Logger,
) *BotController {
	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(states, registry, accounts, logger)

	// Обработчики команд используют те же зависимости
	cmdHandlers := handlers.NewHandlers(callbackHandler.Handler)

	c := &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		sessions:        registry,
		logger:          logger,
	}

	registry.SetNotifier(c.onSessionChanged)
	return c
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/menu", bot.MatchTypeExact, c.handlers.HandleMenu)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/signup", bot.MatchTypeExact, c.handlers.HandleSignUp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🏫 Open SAMPARK KVK"},
		{Command: "menu", Description: "📋 Show your dashboard"},
		{Command: "login", Description: "🔑 Sign in"},
		{Command: "signup", Description: "📝 Create an account"},
		{Command: "logout", Description: "🚪 Sign out"},
		{Command: "cancel", Description: "❌ Cancel the current dialog"},
		{Command: "help", Description: "❓ Help"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx. Затем закрывает все сессии.
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)

	c.sessions.CloseAll()
	c.logger.Info("Bot stopped")
	return nil
}

// onSessionChanged показывает панель после входа и приветствие после выхода
func (c *BotController) onSessionChanged(ctx context.Context, chatID int64, prev session.State, data state.UserData) {
	next := data.Session

	var err error
	switch {
	case next.IsSignedIn() && (!prev.IsSignedIn() || prev.Profile.ID != next.Profile.ID):
		err = common.ShowDashboard(ctx, c.bot, c.callbackHandler.Handler, chatID, 0)
	case next.Status == session.StatusSignedOut && prev.IsSignedIn():
		err = common.ShowWelcome(ctx, c.bot, chatID, 0, "👋 You have been signed out.")
	}

	if err != nil {
		c.logger.Error("Failed to deliver session change",
			zap.Int64("chat_id", chatID),
			zap.Stringer("status", next.Status),
			zap.Error(err))
	}
}

// SetupHandler отвечает на любое сообщение инструкцией по настройке.
// Используется как обработчик по умолчанию, когда хранилище не настроено.
func SetupHandler(logger *zap.Logger) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		var chatID int64
		switch {
		case update.Message != nil:
			chatID = update.Message.Chat.ID
		case update.CallbackQuery != nil:
			common.AnswerCallback(ctx, b, update.CallbackQuery.ID, "")
			chatID = update.CallbackQuery.From.ID
		default:
			return
		}

		if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: SetupText}); err != nil {
			logger.Error("Failed to send setup instructions", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}

// IgnoreHandler обработчик по умолчанию для обновлений без своего обработчика
func IgnoreHandler(logger *zap.Logger) bot.HandlerFunc {
	return func(_ context.Context, _ *bot.Bot, update *models.Update) {
		logger.Debug("Unhandled update", zap.Int64("update_id", update.ID))
	}
}

// Recover middleware: паника в обработчике логируется и не роняет бота
func Recover(logger *zap.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Handler panicked",
						zap.Int64("update_id", update.ID),
						zap.Any("panic", r),
						zap.Stack("stack"))
				}
			}()
			next(ctx, b, update)
		}
	}
}
