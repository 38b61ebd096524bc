package callbacks

import (
	"context"

	"github.com/Freeeeeet/campus_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/campus_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	userService *service.UserService,
	stateManager callbacktypes.StateManager,
	logger *zap.Logger,
	sendSchedule func(ctx context.Context, b *bot.Bot, chatID, telegramID int64, view string),
) *Handler {
	inner := &callbacktypes.Handler{
		UserService:  userService,
		StateManager: stateManager,
		Logger:       logger,
		SendSchedule: sendSchedule,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	Route(ctx, b, update.CallbackQuery, h.Handler)
}
