package store

import (
	"strings"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS - SESSION UTILITIES

// sessionID returns the identifier to store a session under
func sessionID(id string) string {
	if id = strings.TrimSpace(id); id == "" {
		return schema.DefaultSession
	}
	return id
}

// apply runs fn against a copy of session, or a new session when session is
// nil, and returns the copy. The history is capped at max messages.
func (o opts) apply(id string, session *schema.Session, fn func(*schema.Session) error) (*schema.Session, error) {
	var result *schema.Session
	if session == nil {
		result = schema.NewSession(id, o.language)
	} else {
		result = session.Clone()
	}
	if fn != nil {
		if err := fn(result); err != nil {
			return nil, err
		}
	}
	result.Truncate(o.max)
	result.UpdatedAt = time.Now()
	return result, nil
}

// expired returns true when a session was last updated more than ttl ago
func (o opts) expired(session *schema.Session, now time.Time) bool {
	return session.UpdatedAt.Add(o.ttl).Before(now)
}
