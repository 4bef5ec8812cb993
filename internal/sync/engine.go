package sync

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/matheus3301/wschat/internal/bus"
	"github.com/matheus3301/wschat/internal/event"
	"github.com/matheus3301/wschat/internal/logging"
	"github.com/matheus3301/wschat/internal/status"
	"github.com/matheus3301/wschat/internal/store"
	"github.com/matheus3301/wschat/internal/wsclient"
	"go.uber.org/zap"
)

// Dialer opens a transport to url and reports its events to h.
type Dialer interface {
	Dial(ctx context.Context, url string, h wsclient.Handler) (io.Closer, error)
}

// Engine merges transport events into the chat store. It owns at most one
// transport at a time and never reconnects on its own.
type Engine struct {
	store   *store.Store
	machine *status.Machine
	bus     *bus.Bus
	dialer  Dialer
	url     string
	logger  *zap.Logger

	mu   sync.Mutex
	conn io.Closer
	gen  uint64 // identifies the current transport; events from older ones are dropped
}

// NewEngine creates a new sync engine for the given endpoint.
func NewEngine(st *store.Store, m *status.Machine, b *bus.Bus, d Dialer, url string, logger *zap.Logger) *Engine {
	return &Engine{
		store:   st,
		machine: m,
		bus:     b,
		dialer:  d,
		url:     url,
		logger:  logging.OrNop(logger),
	}
}

// Endpoint returns the URL the engine dials.
func (e *Engine) Endpoint() string { return e.url }

// State returns the connection state.
func (e *Engine) State() status.State { return e.machine.Current() }

// Connect opens the transport. It is a no-op while connecting or connected.
// A failed dial is logged, leaves the engine DISCONNECTED and is returned so
// the caller can report it; the store keeps its existing state.
func (e *Engine) Connect(ctx context.Context) error {
	e.mu.Lock()
	if !e.machine.TransitionFrom(status.Connecting, status.Idle, status.Disconnected) {
		e.mu.Unlock()
		return nil
	}
	e.gen++
	l := &link{engine: e, gen: e.gen}
	e.mu.Unlock()

	e.logger.Info("connecting", zap.String("endpoint", e.url))
	conn, err := e.dialer.Dial(ctx, e.url, l)
	if err != nil {
		e.logger.Warn("connection failed, continuing with local state", zap.String("endpoint", e.url), zap.Error(err))
		e.mu.Lock()
		if e.gen == l.gen {
			e.dropLocked()
		}
		e.mu.Unlock()
		return fmt.Errorf("connect %s: %w", e.url, err)
	}

	e.mu.Lock()
	stale := e.gen != l.gen
	if !stale {
		e.conn = conn
	}
	e.mu.Unlock()
	if stale {
		// Disconnect ran while dialing.
		_ = conn.Close()
	}
	return nil
}

// Disconnect closes the transport if one is open and marks the store
// disconnected. Safe to call repeatedly.
func (e *Engine) Disconnect() {
	e.mu.Lock()
	conn := e.conn
	e.conn = nil
	e.gen++
	dropped := e.machine.TransitionFrom(status.Disconnected, status.Connecting, status.Connected)
	e.store.SetConnected(false)
	e.mu.Unlock()

	if conn != nil {
		if err := conn.Close(); err != nil {
			e.logger.Debug("close transport", zap.Error(err))
		}
	}
	if dropped {
		e.logger.Info("disconnected by user")
	}
}

func (e *Engine) handleOpen(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return
	}
	if e.machine.TransitionFrom(status.Connected, status.Connecting) {
		e.store.SetConnected(true)
		e.logger.Info("connected", zap.String("endpoint", e.url))
	}
}

func (e *Engine) handleMessage(gen uint64, data []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return
	}
	p, err := event.Decode(data)
	if err != nil {
		e.logger.Warn("dropping malformed event", zap.Error(err), zap.ByteString("payload", preview(data)))
		e.bus.Emit(bus.KindEventDropped, err.Error())
		return
	}
	e.store.ReceiveMessage(p.From, p.Message)
}

func (e *Engine) handleError(gen uint64, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return
	}
	e.logger.Warn("connection error", zap.String("endpoint", e.url), zap.Error(err))
	e.dropLocked()
}

func (e *Engine) handleClose(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return
	}
	if e.dropLocked() {
		e.logger.Info("connection closed", zap.String("endpoint", e.url))
	}
}

// dropLocked moves to DISCONNECTED and forgets the transport. Callers must hold mu.
func (e *Engine) dropLocked() bool {
	e.conn = nil
	e.store.SetConnected(false)
	return e.machine.TransitionFrom(status.Disconnected, status.Connecting, status.Connected)
}

// link binds transport callbacks to the generation they were dialed for.
type link struct {
	engine *Engine
	gen    uint64
}

func (l *link) OnOpen()               { l.engine.handleOpen(l.gen) }
func (l *link) OnMessage(data []byte) { l.engine.handleMessage(l.gen, data) }
func (l *link) OnClose()              { l.engine.handleClose(l.gen) }
func (l *link) OnError(err error)     { l.engine.handleError(l.gen, err) }

func preview(data []byte) []byte {
	const maxLen = 256
	if len(data) <= maxLen {
		return data
	}
	return data[:maxLen]
}
