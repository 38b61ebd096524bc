package student

import (
	"context"

	"github.com/Freeeeeet/campus_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/campus_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/campus_bot/internal/controller/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleScheduleView кнопки под расписанием: сегодня, неделя, картинка, календарь
func HandleScheduleView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	view, ok := keyboard.ParseScheduleView(callback.Data)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	hc := common.NewHandlerContext(ctx, b, callback, h)
	hc.Answer("⏳ Загружаю расписание...")
	h.SendSchedule(ctx, b, hc.ChatID, hc.TelegramID, view)
}
