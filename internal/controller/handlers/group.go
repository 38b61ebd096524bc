package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/Freeeeeet/campus_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/campus_bot/internal/controller/state"
	"github.com/Freeeeeet/campus_bot/internal/formatting"
	"github.com/Freeeeeet/campus_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const groupNameHint = "Введите название группы, например <code>ИКС-432</code>\n\nОтмена: /cancel"

// HandleSetGroup обрабатывает команду /setgroup
func (h *Handlers) HandleSetGroup(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	// /setgroup до /start тоже работает
	if _, err := h.userService.RegisterUser(ctx, telegramID,
		update.Message.From.Username, update.Message.From.FirstName, update.Message.From.LastName); err != nil {
		h.log(ctx).Error("Failed to register user", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, service.ErrorMessage(err))
		return
	}

	h.stateManager.SetState(telegramID, state.StateEnteringGroupName)
	h.sendMessage(ctx, b, chatID, "👥 "+groupNameHint, nil)
}

// HandleGroup обрабатывает команду /group
func (h *Handlers) HandleGroup(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID
	user, err := h.userService.RequireGroup(ctx, update.Message.From.ID)
	if err != nil {
		h.sendError(ctx, b, chatID, service.ErrorMessage(err))
		return
	}

	text := fmt.Sprintf("👥 Ваша группа: <b>%s</b>\n\nСменить: /setgroup", html.EscapeString(user.GroupName))
	h.sendMessage(ctx, b, chatID, text, keyboard.ScheduleViews())
}

// handleGroupNameStep ищет группу по введённому названию и предлагает варианты
func (h *Handlers) handleGroupNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	name := update.Message.Text

	groups, err := h.groupService.FindGroupsByName(ctx, name)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGroupName) {
			h.sendMessage(ctx, b, chatID, "❌ Неверный формат группы.\n"+groupNameHint, nil)
			return
		}

		h.log(ctx).Error("Failed to find groups",
			zap.Int64("telegram_id", telegramID),
			zap.String("query", name),
			zap.Error(err))
		h.sendError(ctx, b, chatID, service.ErrorMessage(err))
		return
	}

	if len(groups) == 0 {
		h.sendMessage(ctx, b, chatID,
			fmt.Sprintf("🔍 Группа «%s» не найдена. Попробуйте ещё раз или /cancel", html.EscapeString(name)), nil)
		return
	}

	h.stateManager.ClearState(telegramID)

	text := fmt.Sprintf("🔍 Нашлось %d %s, выберите свою:", len(groups), formatting.PluralizeGroups(len(groups)))
	h.sendMessage(ctx, b, chatID, text, keyboard.Groups(groups))
}
