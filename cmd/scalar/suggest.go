package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func suggestCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Autocomplete entity names for a partial query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(args[0], category)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category to search")
	return cmd
}

func runSuggest(query, categoryFlag string) error {
	ctx := context.Background()

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	categoryName := a.category(categoryFlag)
	if !a.catalog.Schema().IsValidCategory(categoryName) {
		return fmt.Errorf("unknown category: %s", categoryName)
	}

	matches := a.catalog.Suggestions(categoryName, query, nil)
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches.")
		return nil
	}
	for _, entity := range matches {
		fmt.Fprintf(os.Stdout, "%s (%s)\n", entity.Name, entity.ID)
	}
	return nil
}
