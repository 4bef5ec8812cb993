package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

var logoArt = []string{
	"╦ ╦╔═╗  ┌─┐┬ ┬┌─┐┌┬┐",
	"║║║╚═╗  │  ├─┤├─┤ │ ",
	"╚╩╝╚═╝  └─┘┴ ┴┴ ┴ ┴ ",
}

// Logo is the header art. The letters take the online or offline colour
// and the tagline carries the unread total.
type Logo struct {
	*tview.TextView
	theme  *Theme
	online bool
	unread int
}

// NewLogo creates an offline logo.
func NewLogo(theme *Theme) *Logo {
	l := &Logo{
		TextView: tview.NewTextView().
			SetDynamicColors(true).
			SetTextAlign(tview.AlignLeft),
		theme: theme,
	}
	l.SetBackgroundColor(theme.BgColor)
	l.SetBorderPadding(1, 0, 1, 0)
	l.SetText(logoMarkup(theme, false, 0))
	return l
}

// Update redraws the logo when the connection state or unread total changed.
func (l *Logo) Update(online bool, unread int) {
	if online == l.online && unread == l.unread {
		return
	}
	l.online, l.unread = online, unread
	l.SetText(logoMarkup(l.theme, online, unread))
}

func logoMarkup(theme *Theme, online bool, unread int) string {
	art := ColorName(theme.OfflineColor)
	if online {
		art = ColorName(theme.OnlineColor)
	}
	var b strings.Builder
	for _, line := range logoArt {
		fmt.Fprintf(&b, "[%s::b]%s[-:-:-]\n", art, line)
	}
	fmt.Fprintf(&b, "[%s]WebSocket chat client[-:-:-]", ColorName(theme.FgColor))
	if unread > 0 {
		fmt.Fprintf(&b, " [%s::b]✉ %d[-:-:-]", ColorName(theme.UnreadColor), unread)
	}
	return b.String()
}
