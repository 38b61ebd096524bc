package controller

import (
	"context"

	"github.com/Freeeeeet/campus_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/campus_bot/internal/controller/handlers"
	"github.com/Freeeeeet/campus_bot/internal/controller/state"
	"github.com/Freeeeeet/campus_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Services сервисы, которые нужны боту
type Services struct {
	Users    *service.UserService
	Groups   *service.GroupService
	Schedule *service.ScheduleService
	Weather  *service.WeatherService
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

// NewBotController создаёт клиента Telegram и обработчики.
// Обработчик по умолчанию и middleware задаются при создании бота.
func NewBotController(token string, services Services, logger *zap.Logger, opts ...bot.Option) (*BotController, error) {
	stateManager := state.NewManager(state.DefaultTTL)

	cmdHandlers := handlers.NewHandlers(
		services.Users,
		services.Groups,
		services.Schedule,
		services.Weather,
		stateManager,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		services.Users,
		stateManager,
		logger,
		cmdHandlers.SendSchedule,
	)

	opts = append([]bot.Option{
		bot.WithDefaultHandler(cmdHandlers.Default),
		bot.WithMiddlewares(handlers.RequestID(logger)),
	}, opts...)

	botInstance, err := bot.New(token, opts...)
	if err != nil {
		return nil, err
	}

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}, nil
}

// Bot клиент Telegram
func (c *BotController) Bot() *bot.Bot {
	return c.bot
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Расписание
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypeExact, c.handlers.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypeExact, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/image", bot.MatchTypeExact, c.handlers.HandleImage)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/calendar", bot.MatchTypeExact, c.handlers.HandleCalendar)

	// Группа
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/setgroup", bot.MatchTypeExact, c.handlers.HandleSetGroup)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/group", bot.MatchTypeExact, c.handlers.HandleGroup)

	// /wether - старое название команды, оставлено для привычных пользователей
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/weather", bot.MatchTypeExact, c.handlers.HandleWeather)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/wether", bot.MatchTypeExact, c.handlers.HandleWeather)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Остальной текст (ввод группы, непонятные сообщения) уходит в обработчик по умолчанию
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := make([]models.BotCommand, 0, len(handlers.Commands))
	for _, cmd := range handlers.Commands {
		commands = append(commands, models.BotCommand{Command: cmd.Name, Description: cmd.Description})
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
