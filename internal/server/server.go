// Package server exposes a running tiler over the Model Context Protocol.
// Tools read the dispatcher's published state and request changes by posting
// notifications; they never touch the registry themselves.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/telemetry"
	"github.com/mj1618/tilewm/internal/version"
	"github.com/mj1618/tilewm/internal/wm"
)

// Controller is the part of the dispatcher the control surface drives.
type Controller interface {
	State() wm.State
	Post(n model.Notification) error
}

// Config holds MCP server configuration.
type Config struct {
	// Transport is "stdio" or "streamable-http".
	Transport string
	Port      int
	// CacheTTL bounds how long a rendered preview is reused. 0 disables caching.
	CacheTTL time.Duration
}

// Server wraps the MCP server with the controller it drives.
type Server struct {
	ctrl   Controller
	cache  *PreviewCache
	logger *log.Logger
	mcp    *mcpserver.MCPServer
	http   *mcpserver.StreamableHTTPServer
}

// New creates an MCP server with the tiler's tools registered.
func New(ctrl Controller, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = telemetry.Discard()
	}
	s := &Server{
		ctrl:   ctrl,
		cache:  NewPreviewCache(cfg.CacheTTL),
		logger: logger.WithPrefix("mcp"),
	}
	s.mcp = mcpserver.NewMCPServer(
		"tilewm",
		version.Version,
		mcpserver.WithToolCapabilities(false),
	)
	s.registerTools()
	s.http = mcpserver.NewStreamableHTTPServer(s.mcp)
	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// Serve starts the server with the configured transport and blocks.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "", "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		addr := fmt.Sprintf(":%d", cfg.Port)
		s.logger.Info("control surface listening", "addr", addr)
		return s.http.Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// Shutdown stops an HTTP transport started by Serve.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
