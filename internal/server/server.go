// Package server runs the Google Connect service over HTTP or MCP stdio.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/brizzai/google-connect/internal/auth"
	"github.com/brizzai/google-connect/internal/config"
	"github.com/brizzai/google-connect/internal/logger"
	"github.com/brizzai/google-connect/internal/server/handler"
	"github.com/brizzai/google-connect/internal/server/tool"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// defaultShutdownTimeout applies when the config leaves it unset
	defaultShutdownTimeout = 5 * time.Second

	readHeaderTimeout = 10 * time.Second
)

// ErrUnsupportedMode indicates an unknown server mode was configured
var ErrUnsupportedMode = errors.New("unsupported server mode")

// Server exposes the authorization URL builder over HTTP and as an MCP tool.
type Server struct {
	config  *config.ServerConfig
	auth    *auth.Service
	mcp     *mcpserver.MCPServer
	handler *handler.Handler
}

// NewServer creates a new server instance and registers its MCP tools.
func NewServer(cfg *config.ServerConfig, authService *auth.Service) *Server {
	mcpServer := mcpserver.NewMCPServer(
		cfg.Name,
		cfg.Version,
		mcpserver.WithToolCapabilities(false),
	)

	tools := tool.NewHandler(authService.GetProvider())
	mcpServer.AddTool(tool.AuthorizationURLTool(), tools.HandleAuthorizationURL)

	return &Server{
		config:  cfg,
		auth:    authService,
		mcp:     mcpServer,
		handler: handler.NewHandler(authService),
	}
}

// HTTPHandler returns the full HTTP route table including the MCP transport.
func (s *Server) HTTPHandler() http.Handler {
	return s.handler.CreateHTTPHandler(mcpserver.NewStreamableHTTPServer(s.mcp))
}

// ServeHTTP listens on the configured address until ctx is cancelled.
func (s *Server) ServeHTTP(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           s.HTTPHandler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			zap.String("mode", string(config.ServerModeHTTP)),
			zap.String("address", listener.Addr().String()),
		)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		timeout := s.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		logger.Info("Shutting down server", zap.Duration("timeout", timeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil

	case err := <-errChan:
		return err
	}
}

// ServeSTDIO speaks MCP over the given streams.
func (s *Server) ServeSTDIO(ctx context.Context, in io.Reader, out io.Writer) error {
	logger.Info("Starting STDIO server")
	return mcpserver.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// Start runs the server in the configured mode and blocks until ctx is
// cancelled or the server fails.
func (s *Server) Start(ctx context.Context) error {
	switch s.config.Mode {
	case config.ServerModeHTTP:
		return s.ServeHTTP(ctx)
	case config.ServerModeSTDIO:
		return s.ServeSTDIO(ctx, os.Stdin, os.Stdout)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMode, s.config.Mode)
	}
}

// Module provides the server dependencies
var Module = fx.Module("server",
	fx.Provide(
		NewServer,
	),
)
