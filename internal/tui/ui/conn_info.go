package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// ConnData holds connection and inbox totals for the header.
type ConnData struct {
	Endpoint  string
	Status    string
	Connected bool
	Contacts  int
	New       int
	Unread    int
}

// ConnInfo displays connection metadata in the header.
type ConnInfo struct {
	*tview.TextView
	theme *Theme
}

// NewConnInfo creates a new connection info panel.
func NewConnInfo(theme *Theme) *ConnInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &ConnInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the connection info.
func (ci *ConnInfo) Update(data ConnData) {
	ci.Clear()

	fg := ColorName(ci.theme.FgColor)
	ct := ColorName(ci.theme.CounterColor)
	st := ColorName(ci.theme.OfflineColor)
	if data.Connected {
		st = ColorName(ci.theme.OnlineColor)
	}

	_, _ = fmt.Fprintf(ci,
		"[%s::b]Server:[-:-:-]   [%s]%s[-]\n"+
			"[%s::b]Status:[-:-:-]   [%s::b]%s[-:-:-]\n"+
			"[%s::b]Contacts:[-:-:-] [%s]%d[-] ([%s]%d[-] new)\n"+
			"[%s::b]Unread:[-:-:-]   [%s]%d[-]",
		fg, ct, tview.Escape(data.Endpoint),
		fg, st, data.Status,
		fg, ct, data.Contacts, ct, data.New,
		fg, ct, data.Unread,
	)
}
