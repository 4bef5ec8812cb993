package sync

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matheus3301/wschat/internal/broadcast"
	"github.com/matheus3301/wschat/internal/bus"
	"github.com/matheus3301/wschat/internal/event"
	"github.com/matheus3301/wschat/internal/status"
	"github.com/matheus3301/wschat/internal/store"
	"github.com/matheus3301/wschat/internal/wsclient"
	"go.uber.org/zap"
)

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", what)
}

func TestEngineAgainstBroadcastServer(t *testing.T) {
	srv := broadcast.NewServer(broadcast.Options{
		Interval: 10 * time.Millisecond,
		Messages: []event.Payload{
			{From: "Алёна", Message: "Привет!"},
			{From: "Иван", Message: "Добрый день!"},
		},
	}, nil, zap.NewNop())
	ts := httptest.NewServer(broadcast.NewRouter(srv, nil))
	defer ts.Close()
	defer srv.Close()

	b := bus.New()
	st := store.NewStore(b)
	e := NewEngine(st, status.NewMachine(b), b, wsclient.Dialer{},
		"ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", zap.NewNop())

	if err := e.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	eventually(t, "welcome and canned messages", func() bool {
		_, welcome := st.Contact("Server")
		_, alena := st.Contact("Алёна")
		_, ivan := st.Contact("Иван")
		return welcome && alena && ivan
	})
	if e.State() != status.Connected || !st.Connected() {
		t.Fatalf("state = %s connected = %v", e.State(), st.Connected())
	}

	st.SelectContact("Алёна")
	if c, _ := st.Contact("Алёна"); c.UnreadCount != 0 {
		t.Errorf("selected contact unread = %d", c.UnreadCount)
	}

	e.Disconnect()
	if e.State() != status.Disconnected || st.Connected() {
		t.Fatalf("after Disconnect: state = %s connected = %v", e.State(), st.Connected())
	}
	eventually(t, "server to drop the client", func() bool { return srv.Active() == 0 })

	// Nothing arrives once disconnected.
	before := len(st.Messages("Иван"))
	time.Sleep(50 * time.Millisecond)
	if after := len(st.Messages("Иван")); after != before {
		t.Errorf("received %d messages after Disconnect", after-before)
	}
}

func TestServerShutdownDisconnectsEngine(t *testing.T) {
	srv := broadcast.NewServer(broadcast.Options{Interval: time.Hour}, nil, zap.NewNop())
	ts := httptest.NewServer(broadcast.NewRouter(srv, nil))
	defer ts.Close()

	b := bus.New()
	st := store.NewStore(b)
	e := NewEngine(st, status.NewMachine(b), b, wsclient.Dialer{},
		"ws"+strings.TrimPrefix(ts.URL, "http"), zap.NewNop())
	if err := e.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	eventually(t, "welcome", func() bool {
		_, ok := st.Contact("Server")
		return ok
	})

	srv.Close()
	eventually(t, "engine to notice shutdown", func() bool {
		return e.State() == status.Disconnected && !st.Connected()
	})

	// Contacts survive the lost connection.
	if _, ok := st.Contact("Server"); !ok {
		t.Error("store lost its state")
	}
}

func TestConnectRefused(t *testing.T) {
	ts := httptest.NewServer(nil)
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	ts.Close()

	b := bus.New()
	st := store.NewStore(b)
	e := NewEngine(st, status.NewMachine(b), b, wsclient.Dialer{}, url, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := e.Connect(ctx); err == nil {
		t.Fatal("Connect() to a closed port should fail")
	}
	if e.State() != status.Disconnected {
		t.Errorf("state = %s, want DISCONNECTED", e.State())
	}
}
