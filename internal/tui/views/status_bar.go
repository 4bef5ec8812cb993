package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/wschat/internal/status"
	"github.com/matheus3301/wschat/internal/tui/ui"
	"github.com/rivo/tview"
)

// StatusBar displays connection state, total unread count and the current
// flash message.
type StatusBar struct {
	*tview.TextView
	theme *ui.Theme
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *ui.Theme) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv, theme: theme}
}

// Update re-renders the bar.
func (sb *StatusBar) Update(state status.State, unread int, flash *ui.FlashMessage, now time.Time) {
	sb.Clear()

	stateColor := sb.theme.OfflineColor
	switch state {
	case status.Connected:
		stateColor = sb.theme.OnlineColor
	case status.Connecting:
		stateColor = sb.theme.FlashWarnColor
	}

	line := fmt.Sprintf(" [%s::b]● %s[-:-:-] | unread [%s::b]%d[-:-:-] | %s",
		ui.ColorName(stateColor), state,
		ui.ColorName(sb.theme.UnreadColor), unread,
		now.Format("15:04"))
	if flash != nil {
		line += fmt.Sprintf(" | [%s]%s[-]", sb.theme.FlashColor(flash.Level), display(flash.Text))
	}
	_, _ = fmt.Fprint(sb, line)
}
