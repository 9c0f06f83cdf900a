package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/mrivarola/ofertas/internal/backend"
	"github.com/mrivarola/ofertas/internal/store"
)

// Deps wires the tracker state and backend client into the MCP tools.
type Deps struct {
	Store  *store.Store
	Client *backend.Client
}

// Serve starts the MCP stdio server with all tools registered.
func Serve(deps Deps) error {
	s := server.NewMCPServer(
		"ofertas",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, deps)

	return server.ServeStdio(s)
}
