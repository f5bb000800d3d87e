package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scalar/internal/catalog"
	"scalar/internal/config"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the schema and entity data for errors",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return err
	}

	schema, err := config.LoadGameSchema(cfg.Game.Schema)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Schema OK: %d categories.\n", len(schema.Categories))

	cat, err := catalog.Load(schema, cfg.Game.DataDir)
	if err != nil {
		return err
	}

	for _, category := range schema.Categories {
		entities := cat.Entities(category.Name)
		fmt.Fprintf(os.Stdout, "  %s %s: %d entities, %d compared fields (par %d)\n",
			category.Icon, category.Name, len(entities), len(category.ComparedFields()), category.Par)
		if len(entities) == 0 {
			return fmt.Errorf("category %s has no entities", category.Name)
		}
	}

	fmt.Fprintln(os.Stdout, "Data OK.")
	return nil
}
