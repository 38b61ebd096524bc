package handlers

import (
	"bytes"
	"context"
	"fmt"
	"html"

	"github.com/Freeeeeet/campus_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/campus_bot/internal/formatting"
	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/Freeeeeet/campus_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleToday обрабатывает команду /today
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleSchedule(ctx, b, update, keyboard.ViewToday)
}

// HandleWeek обрабатывает команду /week
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleSchedule(ctx, b, update, keyboard.ViewWeek)
}

// HandleImage обрабатывает команду /image
func (h *Handlers) HandleImage(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleSchedule(ctx, b, update, keyboard.ViewImage)
}

// HandleCalendar обрабатывает команду /calendar
func (h *Handlers) HandleCalendar(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleSchedule(ctx, b, update, keyboard.ViewCalendar)
}

func (h *Handlers) handleSchedule(ctx context.Context, b *bot.Bot, update *models.Update, view string) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.SendSchedule(ctx, b, update.Message.Chat.ID, update.Message.From.ID, view)
}

// SendSchedule отправляет расписание группы пользователя в нужном виде.
// Все ошибки превращаются в сообщение пользователю.
func (h *Handlers) SendSchedule(ctx context.Context, b *bot.Bot, chatID, telegramID int64, view string) {
	log := h.log(ctx).With(zap.Int64("telegram_id", telegramID), zap.String("view", view))

	user, err := h.userService.RequireGroup(ctx, telegramID)
	if err != nil {
		h.sendError(ctx, b, chatID, service.ErrorMessage(err))
		return
	}
	log = log.With(zap.String("group_id", user.GroupID))

	switch view {
	case keyboard.ViewToday, keyboard.ViewWeek:
		err = h.sendScheduleText(ctx, b, chatID, user, view)
	case keyboard.ViewImage:
		err = h.sendWeekImage(ctx, b, chatID, user)
	case keyboard.ViewCalendar:
		err = h.sendCalendar(ctx, b, chatID, user)
	default:
		err = fmt.Errorf("unknown schedule view %q", view)
	}

	if err != nil {
		log.Error("Failed to send schedule", zap.Error(err))
		h.sendError(ctx, b, chatID, service.ErrorMessage(err))
	}
}

func (h *Handlers) sendScheduleText(ctx context.Context, b *bot.Bot, chatID int64, user *model.User, view string) error {
	var (
		text  string
		err   error
		title string
	)
	if view == keyboard.ViewToday {
		text, err = h.scheduleService.Today(ctx, user.GroupID)
		title = "сегодня"
	} else {
		text, err = h.scheduleService.Week(ctx, user.GroupID)
		title = "неделя"
	}
	if err != nil {
		return err
	}

	header := fmt.Sprintf("👥 <b>%s</b>, %s\n", html.EscapeString(user.GroupName), title)
	h.sendMessage(ctx, b, chatID, header+text, keyboard.ScheduleViews())
	return nil
}

func (h *Handlers) sendWeekImage(ctx context.Context, b *bot.Bot, chatID int64, user *model.User) error {
	image, err := h.scheduleService.WeekImage(ctx, user.GroupID)
	if err != nil {
		return err
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: "week.png",
			Data:     bytes.NewReader(image),
		},
		Caption: "🗓 " + user.GroupName,
	})
	if err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

func (h *Handlers) sendCalendar(ctx context.Context, b *bot.Bot, chatID int64, user *model.User) error {
	data, lessons, err := h.scheduleService.Calendar(ctx, user.GroupID, user.GroupName)
	if err != nil {
		return err
	}

	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: "schedule-" + user.GroupID + ".ics",
			Data:     bytes.NewReader(data),
		},
		Caption: fmt.Sprintf("📥 %s: %d %s. Откройте файл, чтобы добавить занятия в календарь",
			user.GroupName, lessons, formatting.PluralizeLessons(lessons)),
	})
	if err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}
