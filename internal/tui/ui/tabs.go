package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// Tab is one entry of the tab bar.
type Tab struct {
	Key   string
	Label string
	Count int
}

// Tabs renders the contact list tab bar with per-tab counters.
type Tabs struct {
	*tview.TextView
	theme *Theme
}

// NewTabs creates a new tab bar.
func NewTabs(theme *Theme) *Tabs {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &Tabs{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders tabs, highlighting the one whose Key equals active.
func (t *Tabs) Update(tabs []Tab, active string) {
	t.Clear()

	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		fg, bg, attr := t.theme.TabInactiveFg, t.theme.TabInactiveBg, ""
		if tab.Key == active {
			fg, bg, attr = t.theme.TabActiveFg, t.theme.TabActiveBg, "b"
		}
		parts = append(parts, fmt.Sprintf("[%s:%s:%s] %s (%d) [-:-:-]",
			ColorName(fg), ColorName(bg), attr, tab.Label, tab.Count))
	}
	_, _ = fmt.Fprint(t, strings.Join(parts, " "))
}
