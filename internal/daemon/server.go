package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teamboard/internal/common/logger"
	"teamboard/internal/infrastructure/config"
)

const shutdownTimeout = 5 * time.Second

// Server represents the daemon server
type Server struct {
	config     *config.Config
	router     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	logger     *logger.Logger
	mu         sync.Mutex
}

// NewServer creates a new daemon server
func NewServer(cfg *config.Config, handler *Handler, log *logger.Logger) *Server {
	return &Server{
		config: cfg,
		router: NewRouter(handler, log),
		logger: log,
	}
}

// Router exposes the engine for in-process use
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Listen opens the TCP address when configured, otherwise the unix socket
func (s *Server) Listen() (net.Listener, error) {
	if addr := s.config.Daemon.Address; addr != "" {
		return net.Listen("tcp", addr)
	}

	if err := os.MkdirAll(s.config.Daemon.SocketDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}
	socketPath := s.config.Daemon.SocketPath()

	// Remove a socket left behind by a previous run
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}
	return net.Listen("unix", socketPath)
}

// Start serves until ctx is cancelled or the listener fails
func (s *Server) Start(ctx context.Context) error {
	listener, err := s.Listen()
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info("daemon listening", zap.String("address", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return s.Stop()
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}

// Stop shuts the HTTP server down and removes the socket
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(ctx)

	if s.config.Daemon.Address == "" {
		_ = os.Remove(s.config.Daemon.SocketPath())
	}
	s.logger.Info("daemon stopped")
	return err
}
