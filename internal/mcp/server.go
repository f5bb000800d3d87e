// Package mcp exposes the game as MCP tools over stdio so agents can play.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"scalar/internal/catalog"
	"scalar/internal/session"
)

type Server struct {
	catalog *catalog.Catalog
	manager *session.Manager
	mcp     *sdk.Server
}

func NewServer(c *catalog.Catalog, manager *session.Manager, version string) *Server {
	s := &Server{
		catalog: c,
		manager: manager,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "scalar",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
