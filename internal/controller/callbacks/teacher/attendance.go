package teacher

import (
	"context"
	"fmt"
	"slices"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
	"github.com/Freeeeeet/sampark_kvk/internal/dashboard"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
)

// HandleSelectClass выбирает класс (class:X-A) и сбрасывает отметки посещаемости
func HandleSelectClass(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, func(hc *common.HandlerContext, _ dashboard.AttendanceTaker) {
		class, err := common.ParseArg(callback.Data, string(dashboard.ActSelectClass))
		if err != nil || !slices.Contains(model.ClassOptions, class) {
			common.HandleError(hc, common.ErrInvalidFormat, "select class")
			return
		}

		data := hc.Dispatch(state.SelectClass{Class: class})
		if data.View == navigation.ViewAttendance {
			common.ResetRoster(hc, class)
		}

		h.Logger.Info("Class selected",
			zap.Int64("chat_id", hc.ChatID),
			zap.String("class", class))

		hc.Answer(class)
		if err := hc.ShowDashboard(); err != nil {
			h.Logger.Error("Failed to show class screen", zap.Error(err))
		}
	})
}

// HandleToggleAttendance переключает отметку ученика (att:S101)
func HandleToggleAttendance(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, func(hc *common.HandlerContext, _ dashboard.AttendanceTaker) {
		studentID, err := common.ParseArg(callback.Data, string(dashboard.ActToggleAttendance))
		if err != nil {
			common.HandleError(hc, err, "toggle attendance")
			return
		}

		data := hc.Dispatch(state.ToggleAttendance{StudentID: studentID})
		if data.IsPresent(studentID) {
			hc.Answer("✅ Present")
		} else {
			hc.Answer("❌ Absent")
		}

		if err := hc.ShowDashboard(); err != nil {
			h.Logger.Error("Failed to show attendance", zap.Error(err))
		}
	})
}

// HandleSubmitAttendance сохраняет отметку выбранного класса
func HandleSubmitAttendance(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, func(hc *common.HandlerContext, taker dashboard.AttendanceTaker) {
		data := hc.State()
		class := selectedClass(hc, data)

		reg, err := taker.SubmitAttendance(ctx, class, data.IsPresent)
		if err != nil {
			common.HandleError(hc, err, "submit attendance")
			return
		}

		present, absent := reg.Counts()
		hc.AnswerAlert(fmt.Sprintf("✅ Attendance for %s saved.\nPresent: %d, Absent: %d", class, present, absent))
	})
}

// HandleExportRegister отправляет отметку класса файлом xlsx
func HandleExportRegister(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, func(hc *common.HandlerContext, taker dashboard.AttendanceTaker) {
		data := hc.State()
		class := selectedClass(hc, data)

		doc, err := taker.ExportRegister(ctx, class, data.IsPresent)
		if err != nil {
			common.HandleError(hc, err, "export register")
			return
		}

		hc.Answer("📊 Preparing file...")
		if err := hc.SendDocument(doc, "Attendance register "+class); err != nil {
			h.Logger.Error("Failed to send register",
				zap.Int64("chat_id", hc.ChatID),
				zap.String("file", doc.Filename),
				zap.Error(err))
		}
	})
}

func selectedClass(hc *common.HandlerContext, data state.UserData) string {
	if data.SelectedClass != "" {
		return data.SelectedClass
	}
	if c := hc.Dashboard.Profile().ClassAssigned; c != "" {
		return c
	}
	return model.DefaultClass
}
