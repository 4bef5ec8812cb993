package store

import (
	"strings"

	"github.com/matheus3301/wschat/internal/bus"
)

// ReceiveMessage appends an inbound message from the given sender, stamped
// with the current time. Unseen senders get a new contact and join the
// new-contact set. The sender's unread count grows by one unless it is
// selected, in which case it stays at zero. An empty sender is ignored.
func (s *Store) ReceiveMessage(from, text string) {
	if from == "" {
		return
	}
	s.mu.Lock()
	msg := Message{From: from, Text: text, Timestamp: s.now()}
	s.conversations[from] = append(s.conversations[from], msg)

	selected := s.selected == from
	created := false
	c := s.lookup(from)
	if c == nil {
		created = true
		c = s.addContact(Contact{Name: from})
		s.newContacts[from] = struct{}{}
	}
	c.LastMessage = text
	c.LastMessageTime = msg.Timestamp
	if selected {
		c.UnreadCount = 0
	} else {
		c.UnreadCount++
	}
	s.mu.Unlock()

	if created {
		s.bus.Emit(bus.KindContactCreated, from)
	}
	s.bus.Emit(bus.KindMessageReceived, MessageEvent{Contact: from, Message: msg})
}

// SendMessage appends a message from the local user to the selected
// conversation. It does nothing when no contact is selected or the trimmed
// text is empty. Sending to a selected name that has no contact yet creates
// one so every conversation has a contact.
func (s *Store) SendMessage(text string) {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	to := s.selected
	if to == "" || text == "" {
		s.mu.Unlock()
		return
	}
	msg := Message{From: LocalSender, Text: text, Timestamp: s.now()}
	s.conversations[to] = append(s.conversations[to], msg)

	created := false
	c := s.lookup(to)
	if c == nil {
		created = true
		c = s.addContact(Contact{Name: to})
	}
	c.LastMessage = text
	c.LastMessageTime = msg.Timestamp
	s.mu.Unlock()

	if created {
		s.bus.Emit(bus.KindContactCreated, to)
	}
	s.bus.Emit(bus.KindMessageSent, MessageEvent{Contact: to, Message: msg})
}

// Messages returns a copy of the conversation with the named contact, oldest first.
func (s *Store) Messages(name string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message(nil), s.conversations[name]...)
}

// CurrentMessages returns the conversation with the selected contact, or nil
// when nothing is selected.
func (s *Store) CurrentMessages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == "" {
		return nil
	}
	return append([]Message(nil), s.conversations[s.selected]...)
}
