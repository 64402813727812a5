// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rzlpil/attendance-engine/attendance"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	presence map[string]attendance.PresenceRecord
	notes    map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		presence: make(map[string]attendance.PresenceRecord),
		notes:    make(map[string]string),
	}
}

// LoadPresence returns a copy of the user's record. An unknown user yields
// an empty record.
func (m *Memory) LoadPresence(_ context.Context, user string) (attendance.PresenceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.presence[user]
	if !ok {
		return attendance.PresenceRecord{}, nil
	}
	return rec.Clone(), nil
}

// ReplacePresence overwrites the user's full record (replace-all semantics).
func (m *Memory) ReplacePresence(_ context.Context, user string, rec attendance.PresenceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.presence[user] = rec.Clone()
	return nil
}

func (m *Memory) LoadNotes(_ context.Context, user string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.notes[user], nil
}

func (m *Memory) SaveNotes(_ context.Context, user string, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[user] = notes
	return nil
}

// Users lists every user with presence or notes, sorted.
func (m *Memory) Users(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	for u := range m.presence {
		seen[u] = true
	}
	for u := range m.notes {
		seen[u] = true
	}

	users := make([]string, 0, len(seen))
	for u := range seen {
		users = append(users, u)
	}
	sort.Strings(users)
	return users, nil
}

// Compile-time check that Memory implements attendance.Store.
var _ attendance.Store = (*Memory)(nil)
