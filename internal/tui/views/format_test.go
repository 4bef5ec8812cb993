package views

import (
	"strings"
	"testing"
	"time"

	"github.com/matheus3301/wschat/internal/store"
	"github.com/matheus3301/wschat/internal/tui/ui"
)

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, ""},
		{"today", time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC), "09:05"},
		{"yesterday", time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC), "Thu"},
		{"old", time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), "02.01.24"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTimestamp(tt.t, now); got != tt.want {
				t.Errorf("formatTimestamp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnreadBadge(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{-1, ""},
		{7, "7"},
		{99, "99"},
		{100, "99+"},
	}
	for _, tt := range tests {
		if got := unreadBadge(tt.n); got != tt.want {
			t.Errorf("unreadBadge(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestDayLabel(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 30, 0, 0, time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2024, 3, 15, 0, 10, 0, 0, time.UTC), "Today"},
		{time.Date(2024, 3, 14, 23, 59, 0, 0, time.UTC), "Yesterday"},
		{time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC), "1 February"},
		{time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC), "31 December 2023"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := dayLabel(tt.t, now); got != tt.want {
				t.Errorf("dayLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderThreadDaySeparators(t *testing.T) {
	theme := ui.DefaultTheme()
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	msgs := []store.Message{
		{From: "Алёна", Text: "вчера", Timestamp: now.Add(-26 * time.Hour)},
		{From: store.LocalSender, Text: "утро", Timestamp: now.Add(-8 * time.Hour)},
		{From: "Алёна", Text: "вечер", Timestamp: now.Add(-time.Hour)},
	}

	out := renderThread(theme, "Алёна", msgs, now)

	if n := strings.Count(out, "──"); n != 4 {
		t.Errorf("got %d separator marks, want 4 (two days):\n%s", n, out)
	}
	yesterday := strings.Index(out, "Yesterday")
	today := strings.Index(out, "Today")
	if yesterday < 0 || today < yesterday {
		t.Errorf("separators out of order:\n%s", out)
	}
	for _, want := range []string{"вчера", "утро", "вечер", "10:00", "17:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderThreadPlaceholders(t *testing.T) {
	theme := ui.DefaultTheme()
	now := time.Now()
	if out := renderThread(theme, "", nil, now); !strings.Contains(out, "Select a contact") {
		t.Errorf("no selection = %q", out)
	}
	if out := renderThread(theme, "Иван", nil, now); !strings.Contains(out, "No messages yet") {
		t.Errorf("empty thread = %q", out)
	}
}
