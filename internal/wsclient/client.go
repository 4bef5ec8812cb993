// Package wsclient is the receive-only WebSocket transport used by the chat
// client. It dials with gobwas/ws and reports transport events to a Handler.
package wsclient

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// Handler receives transport events. Methods are called from the connection's
// read goroutine, except OnOpen which runs inside Dial.
type Handler interface {
	OnOpen()
	OnMessage(data []byte)
	OnClose()
	OnError(err error)
}

// Conn is an open client connection.
type Conn struct {
	conn    net.Conn
	rw      io.ReadWriter
	handler Handler

	writeMu   sync.Mutex
	closing   atomic.Bool
	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to url, calls h.OnOpen and starts delivering frames to h.
func Dial(ctx context.Context, url string, h Handler) (*Conn, error) {
	nc, br, _, err := ws.Dial(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	c := &Conn{
		conn:    nc,
		rw:      readWriter(nc, br),
		handler: h,
		done:    make(chan struct{}),
	}
	h.OnOpen()
	go c.readLoop()
	return c, nil
}

// readWriter returns a ReadWriter over nc that first drains frames the server
// sent together with the handshake response.
func readWriter(nc net.Conn, br *bufio.Reader) io.ReadWriter {
	if br == nil {
		return nc
	}
	return struct {
		io.Reader
		io.Writer
	}{io.MultiReader(br, nc), nc}
}

func (c *Conn) readLoop() {
	defer c.finish()
	rd := &wsutil.Reader{
		Source:         c.rw,
		State:          ws.StateClientSide,
		CheckUTF8:      true,
		OnIntermediate: c.handleControl,
	}
	for {
		data, op, err := c.nextMessage(rd)
		if err != nil {
			if !c.closing.Load() && !isNormalClose(err) {
				c.handler.OnError(err)
			}
			return
		}
		if op == ws.OpText || op == ws.OpBinary {
			c.handler.OnMessage(data)
		}
	}
}

// nextMessage returns the next data message, answering control frames on
// the way.
func (c *Conn) nextMessage(rd *wsutil.Reader) ([]byte, ws.OpCode, error) {
	for {
		hdr, err := rd.NextFrame()
		if err != nil {
			return nil, 0, err
		}
		if hdr.OpCode.IsControl() {
			if err := c.handleControl(hdr, rd); err != nil {
				return nil, 0, err
			}
			continue
		}
		data, err := io.ReadAll(rd)
		if err != nil {
			return nil, 0, err
		}
		return data, hdr.OpCode, nil
	}
}

// handleControl replies to ping and close frames. Replies share writeMu
// with Close so frames never interleave on the wire.
func (c *Conn) handleControl(hdr ws.Header, r io.Reader) error {
	payload, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return wsutil.ControlFrameHandler(c.conn, ws.StateClientSide)(hdr, bytes.NewReader(payload))
}

func (c *Conn) finish() {
	_ = c.conn.Close()
	c.handler.OnClose()
	close(c.done)
}

func isNormalClose(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	var closed wsutil.ClosedError
	if errors.As(err, &closed) {
		return closed.Code == ws.StatusNormalClosure || closed.Code == ws.StatusGoingAway
	}
	return false
}

// Close sends a normal closure frame and closes the socket. OnClose is
// delivered from the read goroutine. Safe to call more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.closing.Store(true)
		c.writeMu.Lock()
		_ = wsutil.WriteClientMessage(c.conn, ws.OpClose, ws.NewCloseFrameBody(ws.StatusNormalClosure, ""))
		c.writeMu.Unlock()
		err = c.conn.Close()
	})
	return err
}

// Done is closed after the read loop exits and OnClose has been called.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Dialer adapts Dial to the interface used by the sync engine.
type Dialer struct{}

// Dial implements the engine's dialer interface.
func (Dialer) Dial(ctx context.Context, url string, h Handler) (io.Closer, error) {
	c, err := Dial(ctx, url, h)
	if err != nil {
		return nil, err
	}
	return c, nil
}
