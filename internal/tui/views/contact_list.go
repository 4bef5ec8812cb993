package views

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wschat/internal/tui/model"
	"github.com/matheus3301/wschat/internal/tui/ui"
	"github.com/rivo/tview"
)

// ContactList is the contact table shown on the left of the main page.
type ContactList struct {
	*tview.Table
	theme *ui.Theme
	rows  []model.Row
}

// NewContactList creates a new contact table.
func NewContactList(theme *ui.Theme) *ContactList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitle(" Contacts ")
	table.SetTitleColor(theme.TitleColor)

	return &ContactList{
		Table: table,
		theme: theme,
	}
}

// Name implements Component.
func (cl *ContactList) Name() string { return "Contacts" }

// Hints implements Component.
func (cl *ContactList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open"},
		{Key: "/", Description: "Filter"},
	}
}

// Update re-renders the table from rows and keeps the cursor on the
// previously highlighted contact when it is still listed.
func (cl *ContactList) Update(rows []model.Row, filter string, now time.Time) {
	current := cl.SelectedName()
	cl.rows = rows
	cl.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{"", 0},
		{" NAME", 1},
		{" LAST MESSAGE", 2},
		{" TIME", 0},
		{"", 0},
	}
	for col, h := range headers {
		cl.SetCell(0, col, tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(cl.theme.TableHeaderFg).
			SetBackgroundColor(cl.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp))
	}

	cursor := 1
	for i, r := range rows {
		row := i + 1
		if r.Name == current {
			cursor = row
		}

		avatar := tview.NewTableCell(" " + display(ui.Initials(r.Name)) + " ").
			SetTextColor(tcell.ColorWhite).
			SetBackgroundColor(ui.AvatarColor(r.Name)).
			SetAttributes(tcell.AttrBold)

		name := " " + display(r.Name)
		nameColor := cl.theme.FgColor
		if r.New {
			name += " [" + ui.ColorName(cl.theme.NewBadgeColor) + "::b]NEW[-:-:-]"
		}
		if r.UnreadCount > 0 {
			nameColor = cl.theme.TableHeaderFg
		}

		cl.SetCell(row, 0, avatar)
		cl.SetCell(row, 1, tview.NewTableCell(name).SetExpansion(1).SetTextColor(nameColor))
		cl.SetCell(row, 2, tview.NewTableCell(" "+display(r.LastMessage)).SetExpansion(2).SetMaxWidth(40).SetTextColor(cl.theme.MutedColor))
		cl.SetCell(row, 3, tview.NewTableCell(formatTimestamp(r.LastMessageTime, now)).SetAlign(tview.AlignRight).SetTextColor(cl.theme.MutedColor))
		cl.SetCell(row, 4, tview.NewTableCell(unreadBadge(r.UnreadCount)).SetAlign(tview.AlignRight).
			SetTextColor(cl.theme.UnreadColor).SetAttributes(tcell.AttrBold))
	}

	if len(rows) > 0 {
		cl.Select(cursor, 0)
	}

	if filter != "" {
		cl.SetTitle(fmt.Sprintf(" Contacts (%d) filter: %s ", len(rows), display(filter)))
	} else {
		cl.SetTitle(fmt.Sprintf(" Contacts (%d) ", len(rows)))
	}
}

// SelectedName returns the name of the highlighted contact.
func (cl *ContactList) SelectedName() string {
	row, _ := cl.GetSelection()
	idx := row - 1 // header
	if idx >= 0 && idx < len(cl.rows) {
		return cl.rows[idx].Name
	}
	return ""
}

// SetOnOpen sets the callback for Enter on a contact.
func (cl *ContactList) SetOnOpen(fn func(name string)) {
	cl.SetSelectedFunc(func(row, _ int) {
		if idx := row - 1; idx >= 0 && idx < len(cl.rows) {
			fn(cl.rows[idx].Name)
		}
	})
}
