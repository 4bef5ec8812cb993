// Package event defines the JSON wire format the test server pushes to
// clients: {"message": {"from": "...", "message": "..."}}.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is wrapped by every Decode failure.
var ErrMalformed = errors.New("malformed event")

// Payload is the body of an inbound chat event.
type Payload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// Envelope is the top-level wire object.
type Envelope struct {
	Message Payload `json:"message"`
}

// wireEnvelope uses pointers so missing fields can be told apart from empty ones.
type wireEnvelope struct {
	Message *struct {
		From    *string `json:"from"`
		Message *string `json:"message"`
	} `json:"message"`
}

// Decode parses a raw frame into a Payload. The frame must be a JSON object
// carrying a message object with a non-blank "from" and a "message" string.
func Decode(data []byte) (Payload, error) {
	var w wireEnvelope
	if err := json.Unmarshal(data, &w); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch {
	case w.Message == nil:
		return Payload{}, fmt.Errorf("%w: missing \"message\" object", ErrMalformed)
	case w.Message.From == nil || strings.TrimSpace(*w.Message.From) == "":
		return Payload{}, fmt.Errorf("%w: missing \"from\"", ErrMalformed)
	case w.Message.Message == nil:
		return Payload{}, fmt.Errorf("%w: missing \"message.message\"", ErrMalformed)
	}
	return Payload{From: *w.Message.From, Message: *w.Message.Message}, nil
}

// Encode wraps p in an Envelope and marshals it.
func Encode(p Payload) ([]byte, error) {
	data, err := json.Marshal(Envelope{Message: p})
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return data, nil
}
