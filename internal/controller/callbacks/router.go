package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/auth"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/parent"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/teacher"
	"github.com/Freeeeeet/sampark_kvk/internal/dashboard"
)

// ========================
// Callback Data Patterns
// ========================
// Кнопки экранов панели строятся из dashboard.ActionKind: "kind" или "kind:arg"

// Common callbacks
const (
	Menu   = keyboard.DataMenu
	Noop   = keyboard.DataNoop
	Logout = keyboard.DataLogout
)

// Auth callbacks
const (
	Login      = keyboard.DataLogin
	SignUp     = keyboard.DataSignUp
	SignUpRole = keyboard.DataSignUpRole // signup_role:teacher
)

// Dashboard callbacks
const (
	Navigate         = string(dashboard.ActNavigate) + ":"         // nav:ATTENDANCE
	SelectClass      = string(dashboard.ActSelectClass) + ":"      // class:X-B
	ToggleAttendance = string(dashboard.ActToggleAttendance) + ":" // att:S101
	SubmitAttendance = string(dashboard.ActSubmitAttendance)
	ExportRegister   = string(dashboard.ActExportRegister)
	Seed             = string(dashboard.ActSeed)
	SeedConfirm      = keyboard.DataSeedConfirm
	ReportCard       = string(dashboard.ActExportReportCard)
	Ask              = string(dashboard.ActAskAssistant)
	FilterUsers      = string(dashboard.ActFilterUsers) + ":" // users:parent
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	// ===== Common Navigation =====
	case data == Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")
	case data == Menu:
		common.HandleMenu(ctx, b, callback, h)
	case strings.HasPrefix(data, Navigate):
		common.HandleNavigate(ctx, b, callback, h)
	case data == Ask:
		common.HandleAsk(ctx, b, callback, h)

	// ===== Auth =====
	case data == Login:
		auth.HandleLogin(ctx, b, callback, h)
	case data == SignUp:
		auth.HandleSignUp(ctx, b, callback, h)
	case strings.HasPrefix(data, SignUpRole):
		auth.HandleSignUpRole(ctx, b, callback, h)
	case data == Logout:
		auth.HandleLogout(ctx, b, callback, h)

	// ===== Teacher: Attendance =====
	case strings.HasPrefix(data, SelectClass):
		teacher.HandleSelectClass(ctx, b, callback, h)
	case strings.HasPrefix(data, ToggleAttendance):
		teacher.HandleToggleAttendance(ctx, b, callback, h)
	case data == SubmitAttendance:
		teacher.HandleSubmitAttendance(ctx, b, callback, h)
	case data == ExportRegister:
		teacher.HandleExportRegister(ctx, b, callback, h)

	// ===== Parent =====
	case data == ReportCard:
		parent.HandleReportCard(ctx, b, callback, h)

	// ===== Admin =====
	case data == Seed:
		admin.HandleSeed(ctx, b, callback, h)
	case data == SeedConfirm:
		admin.HandleSeedConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, FilterUsers):
		admin.HandleFilterUsers(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback data",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Unknown action")
	}
}
