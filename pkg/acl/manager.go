package acl

import (
	"errors"
	"sync"

	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Manager errors.
var (
	ErrEntryNotFound = errors.New("acl entry not found")
	ErrMaxEntries    = errors.New("maximum acl entries exceeded")
)

// MaxEntries is the maximum number of entries a manager accepts.
const MaxEntries = 64

// Manager holds the access control entry list for a device.
// It is shared across sessions and safe for concurrent use; dispatch
// only reads it through Accessors.
type Manager struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewManager creates an empty access control manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add appends an entry to the list.
// Returns ErrMaxEntries if the list is full.
func (m *Manager) Add(entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) >= MaxEntries {
		return ErrMaxEntries
	}
	m.entries = append(m.entries, entry)
	return nil
}

// RemoveAt removes the entry at the given index.
// Returns ErrEntryNotFound if the index is out of range.
func (m *Manager) RemoveAt(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.entries) {
		return ErrEntryNotFound
	}
	m.entries = append(m.entries[:index], m.entries[index+1:]...)
	return nil
}

// Entries returns a copy of the entry list.
func (m *Manager) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Entry, len(m.entries))
	copy(result, m.entries)
	return result
}

// Count returns the number of entries.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Clear removes all entries.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}

// Grants returns true if any entry gives the subject the required
// privilege over the endpoint/cluster pair.
func (m *Manager) Grants(subject string, ep wire.EndpointID, cl wire.ClusterID, required Privilege) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries {
		if e.Privilege.Satisfies(required) && e.AppliesTo(subject, ep, cl) {
			return true
		}
	}
	return false
}
