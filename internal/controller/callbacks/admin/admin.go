package admin

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
	"github.com/Freeeeeet/sampark_kvk/internal/dashboard"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
)

const seedConfirmText = "🗄 <b>Seed Database</b>\n\n" +
	"This writes the demo students, notices and homework and appends demo marks.\n" +
	"Existing records with the same ids are overwritten. Continue?"

// HandleSeed спрашивает подтверждение перед заполнением демо-данными
func HandleSeed(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, func(hc *common.HandlerContext, _ dashboard.Seeder) {
		hc.Answer("")
		if err := hc.EditMessage(seedConfirmText, keyboard.ConfirmCancel(keyboard.DataSeedConfirm, keyboard.DataMenu)); err != nil {
			common.HandleError(hc, err, "seed confirm")
		}
	})
}

// HandleSeedConfirm заполняет хранилище демо-данными
func HandleSeedConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, func(hc *common.HandlerContext, seeder dashboard.Seeder) {
		stats, err := seeder.Seed(ctx)
		if err != nil {
			h.Logger.Error("Seeding failed", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
			hc.AnswerAlert("❌ Seeding failed: " + err.Error())
		} else {
			hc.AnswerAlert(fmt.Sprintf("✅ Database seeded.\nStudents: %d, Notices: %d, Homework: %d, Marks: %d",
				stats.Students, stats.Notices, stats.Homework, stats.Marks))
		}

		if err := hc.ShowDashboard(); err != nil {
			h.Logger.Error("Failed to show overview", zap.Error(err))
		}
	})
}

// HandleFilterUsers показывает пользователей выбранной роли (users:teacher)
func HandleFilterUsers(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDashboard(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if hc.Dashboard.Role() != model.RoleAdmin {
			common.HandleError(hc, common.ErrNotAllowed, "filter users")
			return
		}

		arg, err := common.ParseArg(callback.Data, string(dashboard.ActFilterUsers))
		if err != nil {
			common.HandleError(hc, err, "filter users")
			return
		}
		role, err := model.ParseRole(arg)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "filter users")
			return
		}

		hc.Dispatch(state.Navigate{View: navigation.ViewAdminUsers})
		hc.Answer("")
		if err := hc.ShowDashboard(common.WithUserRole(role)); err != nil {
			h.Logger.Error("Failed to show users", zap.Error(err))
		}
	})
}
