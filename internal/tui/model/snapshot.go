// Package model builds the render-ready view of the chat store that the TUI
// draws from.
package model

import (
	"strings"

	"github.com/matheus3301/wschat/internal/status"
	"github.com/matheus3301/wschat/internal/store"
)

// Row is one line of the contact list.
type Row struct {
	store.Contact
	New bool
}

// Snapshot is a point-in-time copy of everything the TUI renders.
type Snapshot struct {
	Tab         store.Tab
	Rows        []Row
	RecentCount int
	NewCount    int
	Selected    string
	Messages    []store.Message
	Unread      int
	State       status.State
	Connected   bool
	Endpoint    string
	Filter      string
}

// Source is the connection side of a snapshot.
type Source interface {
	State() status.State
	Endpoint() string
}

// Build reads st (and src when non-nil) into a Snapshot. Rows follow the
// active tab and are narrowed by filter, matched case-insensitively against
// contact name and last message.
func Build(st *store.Store, src Source, filter string) Snapshot {
	s := Snapshot{
		Tab:         st.ActiveTab(),
		RecentCount: len(st.SortedContacts()),
		NewCount:    st.NewContactsCount(),
		Selected:    st.Selected(),
		Messages:    st.CurrentMessages(),
		Unread:      st.TotalUnreadCount(),
		Connected:   st.Connected(),
		State:       status.Idle,
		Filter:      filter,
	}
	if src != nil {
		s.State = src.State()
		s.Endpoint = src.Endpoint()
	}

	needle := strings.ToLower(strings.TrimSpace(filter))
	for _, c := range st.VisibleContacts() {
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.LastMessage), needle) {
			continue
		}
		s.Rows = append(s.Rows, Row{Contact: c, New: st.IsNew(c.Name)})
	}
	return s
}

// SelectedContact returns the selected contact row, if it is known.
func (s Snapshot) SelectedContact(st *store.Store) (store.Contact, bool) {
	if s.Selected == "" {
		return store.Contact{}, false
	}
	return st.Contact(s.Selected)
}
