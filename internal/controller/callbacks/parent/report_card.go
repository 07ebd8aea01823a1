package parent

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/sampark_kvk/internal/dashboard"
)

// HandleReportCard отправляет табель ученика файлом xlsx
func HandleReportCard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, func(hc *common.HandlerContext, exporter dashboard.ReportCardExporter) {
		doc, err := exporter.ExportReportCard(ctx)
		if errors.Is(err, dashboard.ErrNoWard) {
			hc.AnswerAlert("ℹ️ No student is linked to your account yet.")
			return
		}
		if err != nil {
			common.HandleError(hc, err, "export report card")
			return
		}

		hc.Answer("📄 Preparing report card...")
		if err := hc.SendDocument(doc, "Report card"); err != nil {
			h.Logger.Error("Failed to send report card",
				zap.Int64("chat_id", hc.ChatID),
				zap.String("file", doc.Filename),
				zap.Error(err))
		}
	})
}
