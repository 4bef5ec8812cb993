package daemon

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matheus3301/wschat/internal/broadcast"
	"github.com/matheus3301/wschat/internal/config"
	"github.com/matheus3301/wschat/internal/event"
	"github.com/matheus3301/wschat/internal/lock"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func testParams(t *testing.T) Params {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Interval = 10 * time.Millisecond
	cfg.Server.Messages = []config.CannedMessage{{From: "Алёна", Message: "Привет!"}}
	return Params{Config: cfg, Listen: "127.0.0.1:0", BaseDir: t.TempDir()}
}

func TestDaemonLifecycle(t *testing.T) {
	p := testParams(t)
	var srv *Server
	app := fxtest.New(t, fx.NopLogger, Module(p), fx.Populate(&srv))
	app.RequireStart()

	info, err := lock.Read(p.BaseDir, LockName)
	if err != nil {
		t.Fatalf("lock.Read() error = %v", err)
	}
	if info.Addr != p.Listen {
		t.Errorf("lock addr = %q", info.Addr)
	}

	conn, _, err := websocket.DefaultDialer.Dial(srv.URL()+"/ws", nil)
	if err != nil {
		t.Fatalf("dial %s: %v", srv.URL(), err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	want := []event.Payload{broadcast.DefaultWelcome, {From: "Алёна", Message: "Привет!"}}
	for i, w := range want {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		got, err := event.Decode(data)
		if err != nil || got != w {
			t.Errorf("event %d = %+v (%v), want %+v", i, got, err, w)
		}
	}

	resp, err := http.Get("http://" + srv.Addr().String() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	var health struct {
		Status      string `json:"status"`
		Connections int    `json:"connections"`
	}
	err = json.NewDecoder(resp.Body).Decode(&health)
	resp.Body.Close()
	if err != nil || health.Status != "ok" || health.Connections != 1 {
		t.Errorf("healthz = %+v (%v)", health, err)
	}

	resp, err = http.Get("http://" + srv.Addr().String() + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	var body strings.Builder
	_, _ = io.Copy(&body, resp.Body)
	resp.Body.Close()
	if !strings.Contains(body.String(), "go_goroutines") {
		t.Error("metrics missing Go runtime collectors")
	}

	app.RequireStop()

	if _, err := lock.Read(p.BaseDir, LockName); !errors.Is(err, lock.ErrNotRunning) {
		t.Errorf("lock still present after stop: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func TestSecondDaemonRefused(t *testing.T) {
	p := testParams(t)
	first := fxtest.New(t, fx.NopLogger, Module(p))
	first.RequireStart()
	defer first.RequireStop()

	second := fx.New(fx.NopLogger, Module(p))
	var held *lock.HeldError
	if err := second.Err(); !errors.As(err, &held) {
		t.Errorf("second daemon err = %v, want HeldError", err)
	}
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":8181", "ws://localhost:8181"},
		{"0.0.0.0:8181", "ws://localhost:8181"},
		{"[::]:9000", "ws://localhost:9000"},
		{"127.0.0.1:8181", "ws://127.0.0.1:8181"},
		{"chat.local:80", "ws://chat.local:80"},
	}
	for _, tt := range tests {
		if got := EndpointURL(tt.addr); got != tt.want {
			t.Errorf("EndpointURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}
