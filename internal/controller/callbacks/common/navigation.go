package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
	"github.com/Freeeeeet/sampark_kvk/internal/dashboard"
	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
)

// AskPromptText приглашение ввести запрос к AI помощнику
const AskPromptText = "✍️ Type your request for the assistant.\n\n" +
	"For example: draft a notice, summarize progress or suggest an activity.\n" +
	"Use /cancel to stop."

// HandleNavigate переключает экран (nav:VIEW)
func HandleNavigate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithDashboard(ctx, b, callback, h, func(hc *HandlerContext) {
		arg, err := ParseArg(callback.Data, "nav")
		if err != nil {
			HandleError(hc, err, "navigate")
			return
		}
		view, err := navigation.ParseView(arg)
		if err != nil {
			HandleError(hc, ErrInvalidFormat, "navigate")
			return
		}

		data := hc.Dispatch(state.Navigate{View: view})
		if view == navigation.ViewAttendance {
			ResetRoster(hc, data.SelectedClass)
		}

		hc.Answer("")
		if err := hc.ShowDashboard(); err != nil {
			h.Logger.Error("Failed to show screen", zap.String("view", string(view)), zap.Error(err))
		}
	})
}

// HandleMenu возвращает к текущему экрану панели и завершает диалог
func HandleMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithChat(ctx, b, callback, h, func(hc *HandlerContext) {
		hc.Dispatch(state.ClearDialog{})
		hc.Answer("")
		if err := hc.ShowDashboard(); err != nil {
			h.Logger.Error("Failed to show menu", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
		}
	})
}

// HandleAsk начинает диалог с AI помощником
func HandleAsk(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithDashboard(ctx, b, callback, h, func(hc *HandlerContext) {
		hc.Dispatch(state.StartDialog{
			State: state.StateAssistantPrompt,
			Data:  map[string]any{state.KeyMessageID: hc.MessageID()},
		})

		hc.Answer("")
		kb := keyboard.NewBuilder().Row(keyboard.BackToMenuButton()).Build()
		if err := hc.EditMessage(AskPromptText, kb); err != nil {
			if err := hc.SendMessage(AskPromptText, kb); err != nil {
				h.Logger.Error("Failed to send assistant prompt", zap.Error(err))
			}
		}
	})
}

// ResetRoster загружает список класса и отмечает всех присутствующими.
// Если за время загрузки был запрошен другой список, результат отбрасывается.
func ResetRoster(hc *HandlerContext, class string) {
	taker, ok := hc.Dashboard.(dashboard.AttendanceTaker)
	if !ok || class == "" {
		return
	}

	token := hc.Handler.States.BeginFetch(hc.ChatID, state.SlotRoster)
	roster := taker.Roster(hc.Ctx, class)

	ids := make([]string, 0, roster.Len())
	for s := range roster.All() {
		ids = append(ids, s.ID)
	}

	if _, ok := hc.Handler.States.Commit(hc.ChatID, token, state.ResetAttendance{StudentIDs: ids}); !ok {
		hc.Handler.Logger.Debug("Dropping superseded roster",
			zap.Int64("chat_id", hc.ChatID),
			zap.String("class", class))
	}
}
