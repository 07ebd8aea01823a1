package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/app"
	"github.com/Freeeeeet/sampark_kvk/internal/assistant"
	"github.com/Freeeeeet/sampark_kvk/internal/auth/local"
	"github.com/Freeeeeet/sampark_kvk/internal/config"
	"github.com/Freeeeeet/sampark_kvk/internal/controller"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/sessions"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
	"github.com/Freeeeeet/sampark_kvk/internal/dashboard"
	"github.com/Freeeeeet/sampark_kvk/internal/repository"
	"github.com/Freeeeeet/sampark_kvk/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()

	if cfg.TelegramToken == "" {
		logger.Fatal("TELEGRAM_TOKEN is required but not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting SAMPARK KVK bot",
		zap.String("environment", cfg.Environment),
		zap.String("store_driver", cfg.StoreDriver))

	if !cfg.StoreConfigured() {
		runSetupMode(ctx, cfg, logger)
		return
	}

	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open document store", zap.Error(err))
	}
	defer store.Close()

	gateway := repository.NewGateway(store, logger)
	provider := local.NewProvider(store, logger)
	accounts := service.NewAccountService(provider, gateway, logger)

	var generator assistant.Generator
	if key := cfg.GeminiAPIKey(); key != "" {
		gemini, err := assistant.NewGeminiGenerator(ctx, key, cfg.Gemini.Model)
		if err != nil {
			logger.Warn("AI assistant disabled", zap.Error(err))
		} else {
			generator = gemini
		}
	} else {
		logger.Info("GEMINI_API_KEY is not set, AI assistant disabled")
	}

	states := state.NewManager()
	registry := sessions.NewRegistry(ctx, provider, gateway, states, dashboard.Deps{
		Records:   gateway,
		Writer:    gateway,
		Assistant: assistant.NewBridge(generator, logger),
		Logger:    logger,
	}, logger)

	b, err := bot.New(cfg.TelegramToken,
		bot.WithDefaultHandler(controller.IgnoreHandler(logger)),
		bot.WithMiddlewares(controller.Recover(logger)),
		bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram API error", zap.Error(err))
		}),
	)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	ctrl := controller.NewBotController(b, states, registry, accounts, logger)
	if err := ctrl.RegisterHandlers(ctx); err != nil {
		// без меню команд бот работает, команды вводятся вручную
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	scheduler := app.NewScheduler(registry, cfg.SessionIdleTimeout, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	ctrl.Start(ctx)
}

// runSetupMode отвечает на все сообщения инструкцией по настройке и не трогает хранилище
func runSetupMode(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	logger.Warn("Document store is not configured, running in setup mode")

	b, err := bot.New(cfg.TelegramToken,
		bot.WithDefaultHandler(controller.SetupHandler(logger)),
		bot.WithMiddlewares(controller.Recover(logger)),
	)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	b.Start(ctx)
}
