package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleWeather обрабатывает команды /weather и /wether
func (h *Handlers) HandleWeather(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	report, err := h.weatherService.Report(ctx)
	if err != nil {
		h.log(ctx).Error("Failed to get weather", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось получить погоду. Попробуйте позже.")
		return
	}

	h.sendMessage(ctx, b, chatID, report, nil)
}
