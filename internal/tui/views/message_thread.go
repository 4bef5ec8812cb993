package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wschat/internal/store"
	"github.com/matheus3301/wschat/internal/tui/ui"
	"github.com/rivo/tview"
)

// MessageThread shows one conversation above a composer line.
type MessageThread struct {
	*tview.Flex
	theme    *ui.Theme
	history  *tview.TextView
	composer *tview.InputField
	onSend   func(text string)
	onLeave  func()
}

// NewMessageThread creates an empty thread view.
func NewMessageThread(theme *ui.Theme) *MessageThread {
	mt := &MessageThread{
		theme:    theme,
		history:  newHistoryPane(theme),
		composer: newComposer(theme),
	}
	mt.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mt.history, 0, 1, true).
		AddItem(mt.composer, 3, 0, false)

	mt.composer.SetDoneFunc(mt.composerDone)
	mt.Update("", nil, time.Now())
	return mt
}

func newHistoryPane(theme *ui.Theme) *tview.TextView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitleColor(theme.TitleColor)
	return tv
}

func newComposer(theme *ui.Theme) *tview.InputField {
	in := tview.NewInputField().
		SetLabel(" > ").
		SetFieldWidth(0).
		SetPlaceholder("Type a message")
	in.SetBorder(true)
	in.SetBorderColor(theme.BorderColor)
	in.SetBackgroundColor(theme.BgColor)
	in.SetFieldBackgroundColor(theme.BgColor)
	in.SetFieldTextColor(theme.FgColor)
	in.SetPlaceholderTextColor(theme.MutedColor)
	in.SetLabelColor(theme.MenuKeyColor)
	in.SetTitle(" Compose (i) ")
	in.SetTitleColor(theme.TitleColor)
	return in
}

func (mt *MessageThread) composerDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		text := mt.composer.GetText()
		mt.composer.SetText("")
		// Blank input is passed through; the store ignores it.
		if mt.onSend != nil {
			mt.onSend(text)
		}
	case tcell.KeyEscape:
		if mt.onLeave != nil {
			mt.onLeave()
		}
	}
}

// Name implements Component.
func (mt *MessageThread) Name() string { return "Messages" }

// Hints implements Component.
func (mt *MessageThread) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "i", Description: "Compose"},
		{Key: "d", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

// SetOnSend sets the callback for Enter in the composer.
func (mt *MessageThread) SetOnSend(fn func(text string)) { mt.onSend = fn }

// SetOnLeave sets the callback for Esc in the composer.
func (mt *MessageThread) SetOnLeave(fn func()) { mt.onLeave = fn }

// Update renders the conversation with contact, oldest first.
func (mt *MessageThread) Update(contact string, msgs []store.Message, now time.Time) {
	mt.history.Clear()
	mt.history.SetTitle(threadTitle(contact))
	_, _ = fmt.Fprint(mt.history, renderThread(mt.theme, contact, msgs, now))
	if len(msgs) > 0 {
		mt.history.ScrollToEnd()
	}
}

// Messages returns the history pane, used as the thread's focus target.
func (mt *MessageThread) Messages() *tview.TextView { return mt.history }

// Composer returns the composer input.
func (mt *MessageThread) Composer() *tview.InputField { return mt.composer }

func threadTitle(contact string) string {
	if contact == "" {
		return " Messages "
	}
	return fmt.Sprintf(" [%s:%s:b] %s [-:-:-] %s ",
		ui.ColorName(tcell.ColorWhite), ui.ColorName(ui.AvatarColor(contact)),
		display(ui.Initials(contact)), display(contact))
}

// renderThread formats msgs as tview markup with a separator line before
// the first message of each day.
func renderThread(theme *ui.Theme, contact string, msgs []store.Message, now time.Time) string {
	muted := ui.ColorName(theme.MutedColor)
	switch {
	case contact == "":
		return fmt.Sprintf("\n  [%s]Select a contact to start chatting[-]", muted)
	case len(msgs) == 0:
		return fmt.Sprintf("\n  [%s]No messages yet[-]", muted)
	}

	var b strings.Builder
	var day time.Time
	for _, m := range msgs {
		if day.IsZero() || !sameDay(day, m.Timestamp) {
			day = m.Timestamp
			fmt.Fprintf(&b, "[%s]── %s ──[-]\n\n", muted, dayLabel(day, now))
		}
		name := ui.ColorName(theme.TitleColor)
		if m.FromMe() {
			name = ui.ColorName(theme.OwnMessageColor)
		}
		fmt.Fprintf(&b, "[%s::b]%s[-:-:-] [%s]%s[-]\n%s\n\n",
			name, display(m.From), muted, m.Timestamp.Format("15:04"), display(m.Text))
	}
	return b.String()
}

// dayLabel names the calendar day of t relative to now.
func dayLabel(t, now time.Time) string {
	switch {
	case sameDay(t, now):
		return "Today"
	case sameDay(t, now.AddDate(0, 0, -1)):
		return "Yesterday"
	case t.Year() == now.Year():
		return t.Format("2 January")
	default:
		return t.Format("2 January 2006")
	}
}
