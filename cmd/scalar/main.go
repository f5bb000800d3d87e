package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "scalar",
		Short: "Schema-driven deduction guessing game",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(playCmd())
	root.AddCommand(guessCmd())
	root.AddCommand(dailyCmd())
	root.AddCommand(suggestCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(initCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(mcpCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
