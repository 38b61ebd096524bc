package main

import (
	"github.com/Freeeeeet/campus_bot/internal/app"
	"github.com/Freeeeeet/campus_bot/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "campus_bot",
	Short: "Telegram-бот СибГУТИ: расписание занятий и погода",
	Long: `campus_bot отвечает в Telegram расписанием группы с портала СибГУТИ
и погодой у кампуса. Без подкоманды запускает бота (serve).`,
	SilenceUsage: true,
	RunE:         runServe,
}

// setup читает конфигурацию и создаёт логгер
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}
