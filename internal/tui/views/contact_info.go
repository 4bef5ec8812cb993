package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/wschat/internal/store"
	"github.com/matheus3301/wschat/internal/tui/ui"
	"github.com/rivo/tview"
)

// ContactInfo displays details about the selected contact.
type ContactInfo struct {
	*tview.TextView
	theme *ui.Theme
}

// NewContactInfo creates a new contact details view.
func NewContactInfo(theme *ui.Theme) *ContactInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Contact Details ")
	tv.SetTitleColor(theme.TitleColor)

	return &ContactInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (ci *ContactInfo) Name() string { return "Details" }

// Hints implements Component.
func (ci *ContactInfo) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

// Update renders details for c. messages is the conversation length.
func (ci *ContactInfo) Update(c store.Contact, isNew bool, messages int, now time.Time) {
	ci.Clear()

	fg := ui.ColorName(ci.theme.FgColor)
	ct := ui.ColorName(ci.theme.CounterColor)

	lastActive := formatTimestamp(c.LastMessageTime, now)
	if lastActive == "" {
		lastActive = "-"
	}
	newLabel := "no"
	if isNew {
		newLabel = "yes"
	}

	_, _ = fmt.Fprintf(ci,
		"\n [white:%s:b] %s [-:-:-]\n\n"+
			" [%s::b]Name:[-:-:-]         [%s]%s[-]\n"+
			" [%s::b]Unread:[-:-:-]       [%s]%d[-]\n"+
			" [%s::b]New contact:[-:-:-]  [%s]%s[-]\n"+
			" [%s::b]Messages:[-:-:-]     [%s]%d[-]\n"+
			" [%s::b]Last active:[-:-:-]  [%s]%s[-]\n"+
			" [%s::b]Last message:[-:-:-] [%s]%s[-]",
		ui.ColorName(ui.AvatarColor(c.Name)), display(ui.Initials(c.Name)),
		fg, ct, display(c.Name),
		fg, ct, c.UnreadCount,
		fg, ct, newLabel,
		fg, ct, messages,
		fg, ct, lastActive,
		fg, ct, display(c.LastMessage),
	)
	ci.SetTitle(fmt.Sprintf(" %s Details ", display(c.Name)))
}
