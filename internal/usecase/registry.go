package usecase

import (
	"errors"

	"github.com/rocketscienceinc/connect6-backend/internal/entity"
)

var (
	ErrSinkClosed = errors.New("sink is closed")
	ErrSinkFull   = errors.New("sink buffer is full")
)

// Sink delivers events to one connected player. Send must not block; Close
// tells the transport that no further events will follow.
type Sink interface {
	Send(event entity.Event) error
	Close()
}

type registryEntry struct {
	playerID string
	sink     Sink
}

// registry keeps connected players in registration order.
type registry struct {
	entries []registryEntry
}

func newRegistry() *registry {
	return &registry{}
}

func (that *registry) Add(playerID string, sink Sink) bool {
	if _, ok := that.Get(playerID); ok {
		return false
	}

	that.entries = append(that.entries, registryEntry{playerID: playerID, sink: sink})
	return true
}

func (that *registry) Get(playerID string) (Sink, bool) {
	for _, entry := range that.entries {
		if entry.playerID == playerID {
			return entry.sink, true
		}
	}
	return nil, false
}

func (that *registry) Remove(playerID string) (Sink, bool) {
	for i, entry := range that.entries {
		if entry.playerID == playerID {
			that.entries = append(that.entries[:i], that.entries[i+1:]...)
			return entry.sink, true
		}
	}
	return nil, false
}

func (that *registry) Len() int {
	return len(that.entries)
}

// IDs returns the registered player ids in registration order.
func (that *registry) IDs() []string {
	ids := make([]string, 0, len(that.entries))
	for _, entry := range that.entries {
		ids = append(ids, entry.playerID)
	}
	return ids
}

// Snapshot copies the entries so callers can iterate while the registry changes.
func (that *registry) Snapshot() []registryEntry {
	entries := make([]registryEntry, len(that.entries))
	copy(entries, that.entries)
	return entries
}
