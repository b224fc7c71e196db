// Package events provides the append-only log of simulation events.
// The engine writes here after every state change; observer layers (the
// WebSocket hub, the telemetry journal) poll it instead of binding to
// engine internals.
package events

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// EventType defines the category of a simulation event.
type EventType string

const (
	EventTypeTimeTick          EventType = "TIME_TICK"
	EventTypeModuleRun         EventType = "MODULE_RUN"
	EventTypeModuleActivated   EventType = "MODULE_ACTIVATED"
	EventTypeModuleDeactivated EventType = "MODULE_DEACTIVATED"
	EventTypeStorageCharged    EventType = "STORAGE_CHARGED"
	EventTypeRosterRun         EventType = "ROSTER_RUN"
	EventTypeStationSnapshot   EventType = "STATION_SNAPSHOT"
)

// SimEvent is an immutable record of one engine-side state change.
type SimEvent struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"` // module title, storage id, or "STATION"
	Payload   interface{} `json:"payload"`
	Tick      int64       `json:"tick"`
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event SimEvent) error
}

// SimLog is the in-memory append-only log of simulation events.
type SimLog struct {
	mu        sync.RWMutex
	events    []SimEvent
	persister EventPersister
}

// NewSimLog creates a new log with an optional write-through persister.
func NewSimLog(persister EventPersister) *SimLog {
	return &SimLog{
		events:    make([]SimEvent, 0),
		persister: persister,
	}
}

// Append adds a new event. Events are immutable once appended.
func (l *SimLog) Append(event SimEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)

	if l.persister != nil {
		// Write through without blocking the tick path.
		go func(e SimEvent) {
			_ = l.persister.Append(e)
		}(event)
	}
}

// Replay returns the full event history. Observers track their own offset
// into the returned slice.
func (l *SimLog) Replay() []SimEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.events
}

// GetByTick returns all events recorded during the given tick.
func (l *SimLog) GetByTick(tick int64) []SimEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []SimEvent
	for _, e := range l.events {
		if e.Tick == tick {
			result = append(result, e)
		}
	}
	return result
}

// GetByType returns all events of the given type.
func (l *SimLog) GetByType(t EventType) []SimEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []SimEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Len returns the number of recorded events.
func (l *SimLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// GenerateEventID creates a unique event identifier.
func GenerateEventID() string {
	return time.Now().Format("20060102150405") + "-" + fmt.Sprintf("%06d", rand.Intn(1000000))
}
