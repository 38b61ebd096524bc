package main

import (
	"errors"

	"github.com/Freeeeeet/campus_bot/internal/app"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Применить миграции базы данных",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if !cfg.UseDatabase() {
			return errors.New("DB_DSN is not set: users are stored in " + cfg.UsersFile)
		}

		ctx := cmdContext(cmd)
		pool, err := app.OpenPool(ctx, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer pool.Close()

		return app.Migrate(ctx, pool, logger)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
