package store

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// FileSessionStore is a file-backed implementation of SessionStore, so
// that sessions survive a restart. Each session is stored as a JSON file
// in a directory. It is safe for concurrent use.
type FileSessionStore struct {
	opts
	mu  sync.RWMutex
	dir string
}

var _ schema.SessionStore = (*FileSessionStore)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewFileSessionStore creates a new file-backed session store in the given
// directory. The directory is created if it does not exist.
func NewFileSessionStore(dir string, opt ...Opt) (*FileSessionStore, error) {
	o, err := applyOpts(opt)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &FileSessionStore{opts: o, dir: dir}, nil
}

// Close is a no-op for the file store
func (f *FileSessionStore) Close() error {
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetSession retrieves a session by ID from disk and extends its lifetime.
func (f *FileSessionStore) GetSession(_ context.Context, id string) (*schema.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	s, err := f.read(sessionID(id))
	if err != nil {
		return nil, err
	} else if f.expired(s, now) {
		return nil, mia.ErrNotFound.Withf("session %q", s.ID)
	}
	s.UpdatedAt = now
	if err := f.write(s); err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateSession runs fn against a session and writes the result to disk.
// A session which does not exist or has expired is created.
func (f *FileSessionStore) UpdateSession(_ context.Context, id string, fn func(*schema.Session) error) (*schema.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id = sessionID(id)
	current, err := f.read(id)
	if err != nil && mia.Code(err) != mia.ErrNotFound {
		return nil, err
	} else if current != nil && f.expired(current, time.Now()) {
		current = nil
	}

	result, err := f.apply(id, current, fn)
	if err != nil {
		return nil, err
	}
	if err := f.write(result); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteSession removes a session file by ID.
func (f *FileSessionStore) DeleteSession(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(jsonPath(f.dir, sessionID(id))); err != nil && !os.IsNotExist(err) {
		return mia.ErrInternalServerError.Withf("remove: %v", err)
	}
	return nil
}

// ListSessions returns the identifiers of live sessions on disk
func (f *FileSessionStore) ListSessions(_ context.Context) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids, err := readJSONDir(f.dir)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		s, err := f.read(id)
		if err != nil {
			continue // skip corrupt files
		}
		if f.expired(s, now) {
			continue
		}
		result = append(result, id)
	}
	slices.Sort(result)
	return result, nil
}

// Purge removes expired session files and returns how many were removed
func (f *FileSessionStore) Purge(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids, err := readJSONDir(f.dir)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	var n int
	for _, id := range ids {
		if s, err := f.read(id); err == nil && f.expired(s, now) {
			if err := os.Remove(jsonPath(f.dir, id)); err == nil {
				n++
			}
		}
	}
	return n, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// write serialises a session to its JSON file.
func (f *FileSessionStore) write(s *schema.Session) error {
	return writeJSON(jsonPath(f.dir, s.ID), s)
}

// read deserialises a session from its JSON file.
func (f *FileSessionStore) read(id string) (*schema.Session, error) {
	var s schema.Session
	if err := readJSON(jsonPath(f.dir, id), fmt.Sprintf("session %q", id), &s); err != nil {
		return nil, err
	}
	if s.Context == nil {
		s.Context = map[string]any{}
	}
	if s.Messages == nil {
		s.Messages = []schema.Message{}
	}
	return &s, nil
}
