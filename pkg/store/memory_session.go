package store

import (
	"context"
	"slices"
	"sync"
	"time"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// MemorySessionStore is an in-memory implementation of SessionStore.
// Each session has its own lock, so updates to different sessions do not
// wait on each other. It is safe for concurrent use.
type MemorySessionStore struct {
	opts
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
}

type memoryEntry struct {
	sync.Mutex
	session *schema.Session
	expires time.Time
	deleted bool
}

var _ schema.SessionStore = (*MemorySessionStore)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMemorySessionStore creates a new empty in-memory session store
func NewMemorySessionStore(opt ...Opt) (*MemorySessionStore, error) {
	o, err := applyOpts(opt)
	if err != nil {
		return nil, err
	}
	return &MemorySessionStore{
		opts:     o,
		sessions: make(map[string]*memoryEntry),
	}, nil
}

// Close is a no-op for the memory store
func (m *MemorySessionStore) Close() error {
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetSession returns a copy of a session and extends its lifetime
func (m *MemorySessionStore) GetSession(_ context.Context, id string) (*schema.Session, error) {
	id = sessionID(id)

	m.mu.RLock()
	entry, exists := m.sessions[id]
	m.mu.RUnlock()
	if !exists {
		return nil, mia.ErrNotFound.Withf("session %q", id)
	}

	entry.Lock()
	defer entry.Unlock()
	now := time.Now()
	if !entry.live(now) {
		return nil, mia.ErrNotFound.Withf("session %q", id)
	}
	entry.expires = now.Add(m.ttl)
	return entry.session.Clone(), nil
}

// UpdateSession runs fn against a session while holding its lock. A
// session which does not exist or has expired is created.
func (m *MemorySessionStore) UpdateSession(_ context.Context, id string, fn func(*schema.Session) error) (*schema.Session, error) {
	id = sessionID(id)
	for {
		entry := m.entry(id)
		entry.Lock()
		if entry.deleted {
			// Removed while we waited, so start again with a fresh entry
			entry.Unlock()
			continue
		}
		result, err := m.update(entry, id, fn)
		entry.Unlock()
		return result, err
	}
}

// DeleteSession removes a session
func (m *MemorySessionStore) DeleteSession(_ context.Context, id string) error {
	id = sessionID(id)

	m.mu.Lock()
	entry, exists := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if exists {
		entry.Lock()
		entry.deleted = true
		entry.session = nil
		entry.Unlock()
	}
	return nil
}

// ListSessions returns the identifiers of live sessions in order
func (m *MemorySessionStore) ListSessions(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	result := make([]string, 0, len(m.sessions))
	for id, entry := range m.sessions {
		entry.Lock()
		if entry.live(now) {
			result = append(result, id)
		}
		entry.Unlock()
	}
	slices.Sort(result)
	return result, nil
}

// Purge removes expired sessions and returns how many were removed
func (m *MemorySessionStore) Purge(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var n int
	for id, entry := range m.sessions {
		entry.Lock()
		if !entry.live(now) {
			if entry.session != nil {
				n++
			}
			entry.deleted = true
			entry.session = nil
			delete(m.sessions, id)
		}
		entry.Unlock()
	}
	return n, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// entry returns the entry for a session, creating it if necessary
func (m *MemorySessionStore) entry(id string) *memoryEntry {
	m.mu.RLock()
	entry, exists := m.sessions[id]
	m.mu.RUnlock()
	if exists {
		return entry
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, exists := m.sessions[id]; exists {
		return entry
	}
	entry = new(memoryEntry)
	m.sessions[id] = entry
	return entry
}

// update runs fn against the session of a locked entry
func (m *MemorySessionStore) update(entry *memoryEntry, id string, fn func(*schema.Session) error) (*schema.Session, error) {
	now := time.Now()
	current := entry.session
	if !entry.live(now) {
		current = nil
	}
	result, err := m.apply(id, current, fn)
	if err != nil {
		return nil, err
	}
	entry.session = result
	entry.expires = now.Add(m.ttl)
	return result.Clone(), nil
}

// live returns true when the entry holds a session which has not expired
func (e *memoryEntry) live(now time.Time) bool {
	return !e.deleted && e.session != nil && now.Before(e.expires)
}
