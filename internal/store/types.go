package store

import "time"

// LocalSender is the From value of messages written by the local user.
const LocalSender = "You"

// Contact is a conversation participant with its aggregate display state.
// Name is the unique key.
type Contact struct {
	Name            string
	LastMessage     string
	UnreadCount     int
	LastMessageTime time.Time
}

// Message is a single chat message. Messages are never modified after creation.
type Message struct {
	From      string
	Text      string
	Timestamp time.Time
}

// FromMe reports whether the message was written by the local user.
func (m Message) FromMe() bool {
	return m.From == LocalSender
}

// Tab selects which contact list the UI shows.
type Tab string

const (
	TabRecent Tab = "recent"
	TabNew    Tab = "new"
)

// MessageEvent is the payload of chat.message_received and chat.message_sent.
type MessageEvent struct {
	Contact string
	Message Message
}

// SelectionEvent is the payload of chat.contact_selected. Name is empty when
// the selection was cleared.
type SelectionEvent struct {
	Name  string
	Known bool
}
