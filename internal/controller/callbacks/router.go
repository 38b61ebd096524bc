package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/campus_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/campus_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/campus_bot/internal/controller/callbacks/student"
	"github.com/Freeeeeet/campus_bot/internal/controller/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case data == keyboard.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")
	case strings.HasPrefix(data, keyboard.SelectGroupPrefix):
		student.HandleSelectGroup(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.SchedulePrefix):
		student.HandleScheduleView(ctx, b, callback, h)
	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неизвестное действие")
	}
}
