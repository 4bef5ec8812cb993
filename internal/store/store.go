package store

import (
	"slices"
	"sync"
	"time"

	"github.com/matheus3301/wschat/internal/bus"
)

// Store is the in-memory chat state: contacts, per-contact conversations,
// the current selection, the set of unseen live contacts and the connection
// flag. All methods are safe for concurrent use; each mutation runs to
// completion before the next one starts.
type Store struct {
	mu sync.RWMutex

	contacts      []*Contact // insertion order, used to break sort ties
	index         map[string]int
	conversations map[string][]Message
	selected      string
	newContacts   map[string]struct{}
	connected     bool
	tab           Tab

	bus *bus.Bus
	now func() time.Time
}

// NewStore creates an empty store. b may be nil.
func NewStore(b *bus.Bus) *Store {
	return &Store{
		index:         make(map[string]int),
		conversations: make(map[string][]Message),
		newContacts:   make(map[string]struct{}),
		tab:           TabRecent,
		bus:           b,
		now:           time.Now,
	}
}

// Seed loads initial contacts and conversations, replacing existing entries
// with the same name. Seeded contacts are never in the new-contact set.
// Conversations for names without a contact get one derived from their last message.
func (s *Store) Seed(contacts []Contact, conversations map[string][]Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range contacts {
		if c.UnreadCount < 0 {
			c.UnreadCount = 0
		}
		if c.Name == s.selected {
			c.UnreadCount = 0
		}
		if i, ok := s.index[c.Name]; ok {
			*s.contacts[i] = c
			continue
		}
		s.addContact(c)
	}
	names := make([]string, 0, len(conversations))
	for name := range conversations {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		msgs := conversations[name]
		s.conversations[name] = append([]Message(nil), msgs...)
		if _, ok := s.index[name]; !ok && len(msgs) > 0 {
			last := msgs[len(msgs)-1]
			s.addContact(Contact{Name: name, LastMessage: last.Text, LastMessageTime: last.Timestamp})
		}
	}
}

// SelectContact records name as the selected contact. An empty name clears
// the selection. Selecting a known contact zeroes its unread count and removes
// it from the new-contact set; unknown names are recorded without other effects.
func (s *Store) SelectContact(name string) {
	s.mu.Lock()
	s.selected = name
	known := false
	if c := s.lookup(name); c != nil {
		known = true
		c.UnreadCount = 0
		delete(s.newContacts, name)
	}
	s.mu.Unlock()

	s.bus.Emit(bus.KindContactSelected, SelectionEvent{Name: name, Known: known})
}

// Selected returns the selected contact name, or "" when none is selected.
func (s *Store) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SetConnected updates the connection flag.
func (s *Store) SetConnected(connected bool) {
	s.mu.Lock()
	changed := s.connected != connected
	s.connected = connected
	s.mu.Unlock()

	if changed {
		s.bus.Emit(bus.KindConnectionChanged, connected)
	}
}

// Connected reports whether the transport is currently open.
func (s *Store) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// SetActiveTab switches the contact list shown by VisibleContacts.
// Unknown tabs are ignored.
func (s *Store) SetActiveTab(tab Tab) {
	if tab != TabRecent && tab != TabNew {
		return
	}
	s.mu.Lock()
	s.tab = tab
	s.mu.Unlock()

	s.bus.Emit(bus.KindTabChanged, tab)
}

// ActiveTab returns the current contact list tab.
func (s *Store) ActiveTab() Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tab
}

// lookup returns the contact with the given name. Callers must hold mu.
func (s *Store) lookup(name string) *Contact {
	if name == "" {
		return nil
	}
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return s.contacts[i]
}

// addContact appends a new contact. Callers must hold mu.
func (s *Store) addContact(c Contact) *Contact {
	cp := c
	s.index[c.Name] = len(s.contacts)
	s.contacts = append(s.contacts, &cp)
	return &cp
}
