package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scalar/internal/format"
)

func guessCmd() *cobra.Command {
	var category string
	var freeplay bool
	cmd := &cobra.Command{
		Use:   "guess <entity>",
		Short: "Submit one guess against the current game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGuess(args[0], category, freeplay)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category to play")
	cmd.Flags().BoolVar(&freeplay, "freeplay", false, "Play the freeplay slot instead of the daily")
	return cmd
}

func runGuess(guess, categoryFlag string, freeplay bool) error {
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

	slot, result, err := a.manager.SubmitGuess(ctx, modeFlagValue(!freeplay), categoryName, guess)
	if err != nil {
		return err
	}

	unit := format.DistanceUnit(a.cfg.Game.DistanceUnit)
	renderGuess(os.Stdout, category, *result, unit)
	fmt.Fprintf(os.Stdout, "Moves: %d  Status: %s\n", slot.Moves, slot.Status)
	renderRank(os.Stdout, slot, category.Par)
	return nil
}
