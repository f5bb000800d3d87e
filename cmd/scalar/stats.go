package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	var category string
	var recent int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stored results and streaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(category, recent)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Limit to one category (default: all)")
	cmd.Flags().IntVar(&recent, "recent", 10, "Number of recent games to list")
	return cmd
}

func runStats(category string, recent int) error {
	ctx := context.Background()

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if category != "" && !a.catalog.Schema().IsValidCategory(category) {
		return fmt.Errorf("unknown category: %s", category)
	}

	stats, err := a.store.Stats(ctx, category)
	if err != nil {
		return err
	}

	if stats.Played == 0 {
		fmt.Fprintln(os.Stdout, "No finished games yet.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "Played: %d  Solved: %d  Revealed: %d\n", stats.Played, stats.Solved, stats.Revealed)
	if stats.Solved > 0 {
		fmt.Fprintf(os.Stdout, "Best: %d moves  Average: %.1f moves\n",
			stats.BestMoves, float64(stats.TotalMoves)/float64(stats.Solved))
	}

	categories := []string{category}
	if category == "" {
		categories = a.catalog.Schema().CategoryNames()
	}
	for _, name := range categories {
		meta, err := a.manager.Streak(ctx, name)
		if err != nil {
			return err
		}
		if meta.MaxStreak > 0 {
			fmt.Fprintf(os.Stdout, "%s streak: %d (best %d)\n", name, meta.CurrentStreak, meta.MaxStreak)
		}
	}

	results, err := a.store.ListResults(ctx, category, recent)
	if err != nil {
		return err
	}
	if len(results) > 0 {
		fmt.Fprintln(os.Stdout, "Recent:")
		for _, result := range results {
			outcome := "revealed"
			if result.Solved {
				outcome = fmt.Sprintf("solved in %d (%s)", result.Moves, result.Rank)
			}
			fmt.Fprintf(os.Stdout, "  %s %s %s - %s\n", result.Date, result.Mode, result.Category, outcome)
		}
	}
	return nil
}
