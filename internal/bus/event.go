package bus

import "time"

// Event kinds published by the chat store and the connection engine.
const (
	KindMessageReceived   = "chat.message_received"
	KindMessageSent       = "chat.message_sent"
	KindContactCreated    = "chat.contact_created"
	KindContactSelected   = "chat.contact_selected"
	KindTabChanged        = "chat.tab_changed"
	KindConnectionChanged = "chat.connection_changed"
	KindStatusChanged     = "conn.status_changed"
	KindEventDropped      = "conn.event_dropped"
)

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
