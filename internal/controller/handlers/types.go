package handlers

import (
	"github.com/Freeeeeet/campus_bot/internal/controller/state"
	"github.com/Freeeeeet/campus_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService     *service.UserService
	groupService    *service.GroupService
	scheduleService *service.ScheduleService
	weatherService  *service.WeatherService
	stateManager    *state.Manager
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	groupService *service.GroupService,
	scheduleService *service.ScheduleService,
	weatherService *service.WeatherService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:     userService,
		groupService:    groupService,
		scheduleService: scheduleService,
		weatherService:  weatherService,
		stateManager:    stateManager,
		logger:          logger,
	}
}
