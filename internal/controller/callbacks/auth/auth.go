package auth

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
)

// Тексты шагов диалогов входа и регистрации
const (
	LoginEmailText    = "🔑 <b>Sign In</b>\n\nEnter your email address.\nUse /cancel to stop."
	LoginPasswordText = "🔑 Now enter your password.\nThe message will be deleted right away."
	SignUpRoleText    = "📝 <b>Create Account</b>\n\nWho are you?"
	SignUpEmailText   = "📝 Enter the email address for the new account.\nUse /cancel to stop."
	SignUpPassText    = "📝 Choose a password of at least 6 characters.\nThe message will be deleted right away."
)

// HandleLogin начинает диалог входа
func HandleLogin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithChat(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if hc.State().Session.IsSignedIn() {
			hc.Answer("You are already signed in")
			showDashboard(hc)
			return
		}

		hc.Dispatch(state.StartDialog{State: state.StateLoginEmail})
		hc.Answer("")
		prompt(hc, LoginEmailText)
	})
}

// HandleSignUp предлагает выбрать роль новой учётной записи
func HandleSignUp(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithChat(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if hc.State().Session.IsSignedIn() {
			hc.Answer("You are already signed in")
			showDashboard(hc)
			return
		}

		hc.Dispatch(state.ClearDialog{})
		hc.Answer("")
		if err := hc.EditMessage(SignUpRoleText, keyboard.SignUpRoles()); err != nil {
			common.HandleError(hc, err, "sign up roles")
		}
	})
}

// HandleSignUpRole запоминает роль (signup_role:teacher) и спрашивает email
func HandleSignUpRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithChat(ctx, b, callback, h, func(hc *common.HandlerContext) {
		arg, err := common.ParseArg(callback.Data, "signup_role")
		if err != nil {
			common.HandleError(hc, err, "sign up role")
			return
		}
		role, err := model.ParseRole(arg)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "sign up role")
			return
		}

		hc.Dispatch(state.StartDialog{
			State: state.StateSignUpEmail,
			Data:  map[string]any{state.KeySignUpRole: string(role)},
		})
		hc.Answer(role.Title())
		prompt(hc, SignUpEmailText)
	})
}

// HandleLogout завершает сессию. Ошибка провайдера не мешает выходу.
func HandleLogout(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithChat(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !hc.State().Session.IsSignedIn() {
			hc.Answer("")
			if err := common.ShowWelcome(ctx, b, hc.ChatID, hc.MessageID(), ""); err != nil {
				h.Logger.Error("Failed to show welcome", zap.Error(err))
			}
			return
		}

		hc.Chat.Resolver.SignOut(ctx)
		h.Logger.Info("Sign-out requested", zap.Int64("chat_id", hc.ChatID))
		hc.Answer("👋 Signed out")

		// приветствие пришлёт уведомление о смене сессии; кнопки старого экрана убираем
		if hc.Message != nil {
			b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
				ChatID:    hc.ChatID,
				MessageID: hc.Message.ID,
			})
		}
	})
}

func prompt(hc *common.HandlerContext, text string) {
	kb := keyboard.NewBuilder().Row(keyboard.CancelButton(keyboard.DataMenu)).Build()
	if err := hc.EditMessage(text, kb); err != nil {
		if err := hc.SendMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to send prompt", zap.Error(err))
		}
	}
}

func showDashboard(hc *common.HandlerContext) {
	if err := hc.ShowDashboard(); err != nil {
		hc.Handler.Logger.Error("Failed to show dashboard", zap.Error(err))
	}
}
