package main

import (
	"fmt"
	"os"

	"github.com/Freeeeeet/campus_bot/internal/app"
	"github.com/Freeeeeet/campus_bot/internal/service"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <group-id>",
	Short: "Показать расписание группы",
	Long:  `Загружает страницу расписания с портала и печатает её так же, как бот.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view, _ := cmd.Flags().GetString("view")

		svc, err := scheduleService()
		if err != nil {
			return err
		}

		ctx := cmdContext(cmd)
		var text string
		switch view {
		case "today":
			text, err = svc.Today(ctx, args[0])
		case "week":
			text, err = svc.Week(ctx, args[0])
		case "all":
			text, err = svc.All(ctx, args[0])
		default:
			return fmt.Errorf("unknown view %q: use today, week or all", view)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var weekImageCmd = &cobra.Command{
	Use:   "week-image <group-id> <out.png>",
	Short: "Сохранить расписание недели картинкой",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := scheduleService()
		if err != nil {
			return err
		}

		image, err := svc.WeekImage(cmdContext(cmd), args[0])
		if err != nil {
			return err
		}

		if err := os.WriteFile(args[1], image, 0o644); err != nil {
			return fmt.Errorf("failed to write image: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Week image saved to %s\n", args[1])
		return nil
	},
}

var calendarCmd = &cobra.Command{
	Use:   "calendar <group-id> <out.ics>",
	Short: "Экспортировать расписание в ICS",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		svc, err := scheduleService()
		if err != nil {
			return err
		}

		data, lessons, err := svc.Calendar(cmdContext(cmd), args[0], name)
		if err != nil {
			return err
		}

		if err := os.WriteFile(args[1], data, 0o644); err != nil {
			return fmt.Errorf("failed to write calendar: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d lessons to %s\n", lessons, args[1])
		return nil
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups <name>",
	Short: "Найти группу по названию",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		p, err := app.NewPortal(cfg, logger)
		if err != nil {
			return err
		}

		svc, err := service.NewGroupService(p, logger)
		if err != nil {
			return err
		}
		defer svc.Close()

		groups, err := svc.FindGroupsByName(cmdContext(cmd), args[0])
		if err != nil {
			return err
		}

		if len(groups) == 0 {
			return fmt.Errorf("no groups found for %q", args[0])
		}
		for _, g := range groups {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", g.ID, g.Name)
		}
		return nil
	},
}

func scheduleService() (*service.ScheduleService, error) {
	cfg, logger, err := setup()
	if err != nil {
		return nil, err
	}

	p, err := app.NewPortal(cfg, logger)
	if err != nil {
		return nil, err
	}

	return service.NewScheduleService(p, cfg.Location, logger), nil
}

func init() {
	rootCmd.AddCommand(scheduleCmd, weekImageCmd, calendarCmd, groupsCmd)

	scheduleCmd.Flags().StringP("view", "v", "all", "Which days to show: today, week or all")
	calendarCmd.Flags().StringP("name", "n", "", "Group name for the calendar title")
}
