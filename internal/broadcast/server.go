// Package broadcast implements the WebSocket test server: every client gets
// a welcome event, then one canned message per interval until it goes away.
package broadcast

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/matheus3301/wschat/internal/config"
	"github.com/matheus3301/wschat/internal/event"
	"github.com/matheus3301/wschat/internal/logging"
	"github.com/matheus3301/wschat/internal/metrics"
	"go.uber.org/zap"
)

const defaultWriteTimeout = 10 * time.Second

// Options configures a Server. Zero fields take defaults.
type Options struct {
	Interval     time.Duration
	Welcome      event.Payload
	Messages     []event.Payload
	WriteTimeout time.Duration
}

// Server pushes events to every connected client. The position in the
// message list is shared by all connections and advances on every send.
type Server struct {
	opts     Options
	upgrader websocket.Upgrader
	cursor   atomic.Uint64
	active   atomic.Int64
	metrics  *metrics.Metrics
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewServer creates a server. m may be nil.
func NewServer(opts Options, m *metrics.Metrics, logger *zap.Logger) *Server {
	if opts.Interval <= 0 {
		opts.Interval = config.DefaultInterval
	}
	if opts.Welcome.From == "" {
		opts.Welcome = DefaultWelcome
	}
	if len(opts.Messages) == 0 {
		opts.Messages = DefaultMessages()
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if m == nil {
		m = metrics.New(nil)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		opts: opts,
		upgrader: websocket.Upgrader{
			// Local test server: accept any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		metrics: m,
		logger:  logging.OrNop(logger),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Active returns the number of open connections.
func (s *Server) Active() int {
	return int(s.active.Load())
}

// ServeHTTP upgrades the request and serves the connection until the client
// leaves, a write fails or the server is closed.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.UpgradeErrors.Inc()
		s.logger.Warn("upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	s.serve(uuid.NewString(), conn)
}

func (s *Server) serve(id string, conn *websocket.Conn) {
	log := s.logger.With(zap.String("conn_id", id), zap.String("remote", conn.RemoteAddr().String()))
	defer func() { _ = conn.Close() }()

	s.active.Add(1)
	s.metrics.ActiveConnections.Inc()
	s.metrics.ConnectionsTotal.Inc()
	defer func() {
		s.active.Add(-1)
		s.metrics.ActiveConnections.Dec()
	}()
	log.Info("client connected")

	// Client frames are never consumed; reading only surfaces close and errors.
	gone := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				gone <- err
				return
			}
		}
	}()

	if err := s.send(conn, s.opts.Welcome); err != nil {
		s.metrics.SendErrors.Inc()
		log.Warn("send welcome failed", zap.Error(err))
		return
	}
	s.metrics.MessagesSent.WithLabelValues(metrics.KindWelcome).Inc()

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p := s.next()
			if err := s.send(conn, p); err != nil {
				s.metrics.SendErrors.Inc()
				log.Warn("send failed, dropping client", zap.Error(err))
				return
			}
			s.metrics.MessagesSent.WithLabelValues(metrics.KindCanned).Inc()
			log.Debug("sent", zap.String("from", p.From))
		case err := <-gone:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("client disconnected")
			} else {
				log.Info("client connection lost", zap.Error(err))
			}
			return
		case <-s.ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			log.Info("closing client on shutdown")
			return
		}
	}
}

// next returns the message at the shared cursor and advances it.
func (s *Server) next() event.Payload {
	idx := s.cursor.Add(1) - 1
	return s.opts.Messages[idx%uint64(len(s.opts.Messages))]
}

func (s *Server) send(conn *websocket.Conn, p event.Payload) error {
	data, err := event.Encode(p)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

// Close stops every connection loop and waits for them to return.
// New connections are refused afterwards.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}
