package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/campus_bot/internal/app"
	"github.com/Freeeeeet/campus_bot/internal/controller"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить бота",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("Starting campus bot",
		zap.String("environment", cfg.Environment),
		zap.String("portal", cfg.PortalBaseURL),
		zap.Bool("database", cfg.UseDatabase()),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	bc, err := controller.NewBotController(cfg.TelegramToken, controller.Services{
		Users:    a.Users,
		Groups:   a.Groups,
		Schedule: a.Schedule,
		Weather:  a.Weather,
	}, logger)
	if err != nil {
		return err
	}

	if err := bc.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично для работы
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	scheduler := app.NewScheduler(a.Portal, cfg.KeepAliveInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	bc.Start(ctx)

	logger.Info("Bot stopped")
	return nil
}

// cmdContext контекст команды или фоновый, если команда запущена без него
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
