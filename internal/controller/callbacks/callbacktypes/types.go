package callbacktypes

import (
	"context"

	"github.com/Freeeeeet/campus_bot/internal/controller/state"
	"github.com/Freeeeeet/campus_bot/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	GetState(telegramID int64) state.UserState
	SetState(telegramID int64, s state.UserState)
	ClearState(telegramID int64)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService  *service.UserService
	StateManager StateManager
	Logger       *zap.Logger

	// SendSchedule отправка расписания из обработчиков команд
	SendSchedule func(ctx context.Context, b *bot.Bot, chatID, telegramID int64, view string)
}
