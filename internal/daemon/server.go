package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/matheus3301/wschat/internal/broadcast"
	"github.com/matheus3301/wschat/internal/metrics"
	"go.uber.org/zap"
)

// Server manages the HTTP listener that carries the WebSocket, health and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	logger     *zap.Logger
}

// NewServer binds the listen address. Binding happens here so a busy port
// fails application startup instead of surfacing later in a goroutine.
func NewServer(p Params, bs *broadcast.Server, m *metrics.Metrics, logger *zap.Logger) (*Server, error) {
	listener, err := net.Listen("tcp", p.listen())
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", p.listen(), err)
	}
	return &Server{
		httpServer: &http.Server{
			Handler:           broadcast.NewRouter(bs, m),
			ReadHeaderTimeout: 10 * time.Second,
		},
		listener: listener,
		logger:   logger,
	}, nil
}

// Addr returns the bound address, useful when listening on port 0.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// URL returns the WebSocket URL clients should dial.
func (s *Server) URL() string {
	return EndpointURL(s.Addr().String())
}

// Start serves requests. Blocks until stopped.
func (s *Server) Start() error {
	s.logger.Info("http server starting", zap.String("addr", s.Addr().String()))
	err := s.httpServer.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts the listener down.
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("http server stopping")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("http shutdown", zap.Error(err))
	}
}

// EndpointURL turns a listen address into a ws:// URL. An empty or
// unspecified host becomes localhost.
func EndpointURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "ws://" + addr
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "ws://" + net.JoinHostPort(host, port)
}
