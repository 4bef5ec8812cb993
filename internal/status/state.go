package status

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/matheus3301/wschat/internal/bus"
)

// State is the lifecycle state of the client transport.
type State string

const (
	Idle         State = "IDLE"
	Connecting   State = "CONNECTING"
	Connected    State = "CONNECTED"
	Disconnected State = "DISCONNECTED"
)

// validTransitions defines allowed state transitions. There is no automatic
// retry: only an explicit connect moves DISCONNECTED back to CONNECTING.
var validTransitions = map[State][]State{
	Idle:         {Connecting},
	Connecting:   {Connected, Disconnected},
	Connected:    {Disconnected},
	Disconnected: {Connecting},
}

// Machine tracks and enforces connection state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	bus     *bus.Bus
}

// NewMachine creates a new state machine starting in Idle state.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{
		current: Idle,
		bus:     b,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition attempts to move to a new state. Returns error if transition is invalid.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !slices.Contains(validTransitions[m.current], to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	m.set(to)
	return nil
}

// TransitionFrom moves to the target state only if the machine is currently in
// one of the given states. It reports whether the transition happened.
func (m *Machine) TransitionFrom(to State, from ...State) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !slices.Contains(from, m.current) || !slices.Contains(validTransitions[m.current], to) {
		return false
	}
	m.set(to)
	return true
}

func (m *Machine) set(to State) {
	from := m.current
	m.current = to
	m.bus.Publish(bus.Event{
		Kind:      bus.KindStatusChanged,
		Timestamp: time.Now(),
		Payload: StatusChange{
			From: from,
			To:   to,
		},
	})
}

// StatusChange is the payload for status change events.
type StatusChange struct {
	From State
	To   State
}
