package keys

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHandleEventPrecedence(t *testing.T) {
	r := NewRegistry()
	var got []string
	r.AddGlobal(&Action{Name: "quit", Key: tcell.KeyRune, Rune: 'q', Handler: func() { got = append(got, "global-q") }})
	r.AddGlobal(&Action{Name: "help", Key: tcell.KeyRune, Rune: '?', Handler: func() { got = append(got, "help") }})
	r.AddView("help", &Action{Name: "close", Key: tcell.KeyRune, Rune: 'q', Handler: func() { got = append(got, "help-q") }})
	r.AddView("main", &Action{Name: "back", Key: tcell.KeyEscape, Handler: func() { got = append(got, "esc") }})

	tests := []struct {
		view string
		key  tcell.Key
		ch   rune
		ok   bool
	}{
		{"main", tcell.KeyRune, 'q', true},
		{"help", tcell.KeyRune, 'q', true},
		{"main", tcell.KeyEscape, 0, true},
		{"help", tcell.KeyEscape, 0, false},
		{"main", tcell.KeyRune, '?', true},
		{"main", tcell.KeyRune, 'z', false},
	}
	for _, tt := range tests {
		if ok := r.HandleKey(tt.view, tt.key, tt.ch); ok != tt.ok {
			t.Errorf("HandleKey(%s, %v, %q) = %v, want %v", tt.view, tt.key, tt.ch, ok, tt.ok)
		}
	}

	want := []string{"global-q", "help-q", "esc", "help"}
	if len(got) != len(want) {
		t.Fatalf("handlers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("handler %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHintsOrderAndVisibility(t *testing.T) {
	r := NewRegistry()
	noop := func() {}
	r.AddGlobal(&Action{Key: tcell.KeyRune, Rune: 'q', Description: "Quit", Visible: true, Handler: noop})
	r.AddGlobal(&Action{Key: tcell.KeyRune, Rune: 'z', Description: "Hidden", Handler: noop})
	r.AddView("main", &Action{Key: tcell.KeyRune, Rune: 'r', Description: "Recent", Visible: true, Handler: noop})
	r.AddView("main", &Action{Key: tcell.KeyEscape, Label: "Esc", Description: "Back", Visible: true, Handler: noop})

	hints := r.Hints("main")
	want := []string{"r:Recent", "Esc:Back", "q:Quit"}
	if len(hints) != len(want) {
		t.Fatalf("hints = %+v", hints)
	}
	for i, h := range hints {
		if got := h.Key + ":" + h.Description; got != want[i] {
			t.Errorf("hint %d = %q, want %q", i, got, want[i])
		}
	}

	if got := len(r.Hints("unknown")); got != 1 {
		t.Errorf("unknown view hints = %d, want 1 global", got)
	}
}
