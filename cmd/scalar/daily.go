package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scalar/internal/daily"
	"scalar/internal/format"
)

func dailyCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show today's daily puzzle state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaily(category)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category to show")
	return cmd
}

func runDaily(categoryFlag string) error {
	ctx := context.Background()

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	categoryName := a.category(categoryFlag)
	category, ok := a.catalog.Schema().CategoryByName(categoryName)
	if !ok {
		return fmt.Errorf("unknown category: %s", categoryName)
	}

	slot, err := a.manager.DailySlot(ctx, categoryName)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Daily #%d (%s) %s %s - par %d\n",
		daily.PuzzleNumber(slot.DailyDate), daily.ToggleDateLabel(slot.DailyDate),
		category.Icon, category.Name, category.Par)
	renderSlot(os.Stdout, category, slot, format.DistanceUnit(a.cfg.Game.DistanceUnit))

	meta, err := a.manager.Streak(ctx, categoryName)
	if err != nil {
		return err
	}
	if meta.MaxStreak > 0 {
		fmt.Fprintf(os.Stdout, "Streak: %d (best %d)\n", meta.CurrentStreak, meta.MaxStreak)
	}
	return nil
}
