package student

import (
	"context"
	"fmt"
	"html"

	"github.com/Freeeeeet/campus_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/campus_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/campus_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/campus_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSelectGroup сохраняет группу, выбранную из результатов поиска
func HandleSelectGroup(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	group, ok := keyboard.ParseSelectGroup(callback.Data)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := h.UserService.SetGroup(ctx, hc.TelegramID, group); err != nil {
			h.Logger.Error("Failed to set group",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.String("group_id", group.ID.String()),
				zap.Error(err))
			hc.AnswerAlert(service.ErrorMessage(err))
			return
		}

		hc.ClearState()
		hc.Answer("✅ Группа сохранена")

		text := fmt.Sprintf("✅ Ваша группа: <b>%s</b>\n\nРасписание: /today, /week", html.EscapeString(group.Name))
		if err := hc.EditMessage(text, keyboard.ScheduleViews()); err != nil {
			h.Logger.Warn("Failed to edit message, sending new one", zap.Error(err))
			if err := hc.SendMessage(text, keyboard.ScheduleViews()); err != nil {
				h.Logger.Error("Failed to send message", zap.Error(err))
			}
		}
	})
}
