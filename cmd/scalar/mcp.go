package main

import (
	"context"

	"github.com/spf13/cobra"

	"scalar/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP tool server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runMCP,
	}
	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	server := mcp.NewServer(a.catalog, a.manager, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
