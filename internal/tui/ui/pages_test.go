package ui

import (
	"testing"

	"github.com/rivo/tview"
)

func TestPagesStack(t *testing.T) {
	p := NewPages()
	for _, name := range []string{"main", "help", "details"} {
		p.AddPage(name, tview.NewBox(), true, false)
	}
	var tops []string
	p.SetOnChange(func(top string) { tops = append(tops, top) })

	p.Push("main")
	p.Push("help")
	p.Push("help")
	if p.Depth() != 2 || p.Current() != "help" {
		t.Fatalf("depth = %d current = %q", p.Depth(), p.Current())
	}

	if got := p.Pop(); got != "help" {
		t.Errorf("Pop() = %q, want help", got)
	}
	if got := p.Pop(); got != "" {
		t.Errorf("Pop() on root = %q, want empty", got)
	}
	if p.Current() != "main" {
		t.Errorf("current = %q, want main", p.Current())
	}

	want := []string{"main", "help", "main"}
	if len(tops) != len(want) {
		t.Fatalf("onChange calls = %v, want %v", tops, want)
	}
	for i := range want {
		if tops[i] != want[i] {
			t.Errorf("onChange[%d] = %q, want %q", i, tops[i], want[i])
		}
	}
}
