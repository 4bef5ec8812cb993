package broadcast

import (
	"testing"
	"time"

	"github.com/matheus3301/wschat/internal/config"
	"github.com/matheus3301/wschat/internal/event"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default().Server
	cfg.Interval = 2 * time.Second
	cfg.Messages = []config.CannedMessage{
		{From: "Алёна", Message: "Привет!"},
		{From: "", Message: "skipped"},
		{From: "Иван", Message: ""},
	}

	opts := OptionsFromConfig(cfg)
	if opts.Interval != 2*time.Second {
		t.Errorf("interval = %v", opts.Interval)
	}
	if opts.Welcome != DefaultWelcome {
		t.Errorf("welcome = %+v", opts.Welcome)
	}
	want := []event.Payload{{From: "Алёна", Message: "Привет!"}, {From: "Иван"}}
	if len(opts.Messages) != len(want) {
		t.Fatalf("messages = %+v", opts.Messages)
	}
	for i := range want {
		if opts.Messages[i] != want[i] {
			t.Errorf("messages[%d] = %+v, want %+v", i, opts.Messages[i], want[i])
		}
	}
}

func TestDefaultMessagesAreFresh(t *testing.T) {
	a := DefaultMessages()
	a[0].From = "changed"
	if DefaultMessages()[0].From != "Алёна" {
		t.Error("DefaultMessages shares its backing array")
	}
}
