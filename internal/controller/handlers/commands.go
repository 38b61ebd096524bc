package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/campus_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Command команда бота для /help и меню
type Command struct {
	Name        string
	Description string
}

// Commands список команд в порядке показа
var Commands = []Command{
	{"start", "🚀 Начать работу с ботом"},
	{"help", "❓ Справка по командам"},
	{"today", "📅 Расписание на сегодня"},
	{"week", "🗓 Расписание на неделю"},
	{"image", "🖼 Неделя картинкой"},
	{"calendar", "📥 Расписание в календарь (.ics)"},
	{"setgroup", "👥 Выбрать группу"},
	{"group", "ℹ️ Моя группа"},
	{"weather", "🌤 Погода на сегодня"},
	{"cancel", "✖️ Отменить текущее действие"},
}

// HelpText текст справки
func HelpText() string {
	var b strings.Builder
	b.WriteString("📚 Доступные команды:\n\n")
	for _, c := range Commands {
		fmt.Fprintf(&b, "/%s - %s\n", c.Name, c.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From
	chatID := update.Message.Chat.ID

	existing, err := h.userService.GetByTelegramID(ctx, from.ID)
	if err != nil {
		h.log(ctx).Error("Failed to get user", zap.Int64("telegram_id", from.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	registeredUser, err := h.userService.RegisterUser(ctx, from.ID, from.Username, from.FirstName, from.LastName)
	if err != nil {
		h.log(ctx).Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	name := html.EscapeString(registeredUser.DisplayName())

	var greeting string
	if existing == nil {
		greeting = fmt.Sprintf("👋 Привет, %s!\n\n"+
			"Я бот СибГУТИ: показываю расписание занятий и погоду у кампуса.\n"+
			"Чтобы начать, выберите группу: /setgroup", name)
	} else {
		greeting = fmt.Sprintf("👋 С возвращением, %s!", name)
		if registeredUser.HasGroup() {
			greeting += fmt.Sprintf("\nВаша группа: <b>%s</b>", html.EscapeString(registeredUser.GroupName))
		}
	}

	h.sendMessage(ctx, b, chatID, greeting+"\n\n"+HelpText(), nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, HelpText(), nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.", nil)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.log(ctx).Debug("Text message",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateEnteringGroupName:
		h.handleGroupNameStep(ctx, b, update)
	default:
		h.handleUnknown(ctx, b, update)
	}
}

// handleUnknown ответ на сообщение, которое бот не понял
func (h *Handlers) handleUnknown(ctx context.Context, b *bot.Bot, update *models.Update) {
	text := fmt.Sprintf("🤔 Не понимаю «%s»\nСписок команд: /help", html.EscapeString(update.Message.Text))
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, nil)
}

// Default обрабатывает обновления, для которых нет отдельного обработчика
func (h *Handlers) Default(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	h.HandleTextMessage(ctx, b, update)
}
