package schema

import "context"

////////////////////////////////////////////////////////////////////////////////
// INTERFACES

// SessionStore persists sessions. Updates to the same session are mutually
// exclusive; updates to different sessions are independent.
type SessionStore interface {
	// GetSession returns a copy of the session, or ErrNotFound
	GetSession(ctx context.Context, id string) (*Session, error)

	// UpdateSession runs fn against the session, creating it when it does
	// not exist, and stores the result unless fn returns an error. It
	// returns a copy of the stored session.
	UpdateSession(ctx context.Context, id string, fn func(*Session) error) (*Session, error)

	// DeleteSession removes a session. Deleting a missing session is not an
	// error.
	DeleteSession(ctx context.Context, id string) error

	// ListSessions returns the identifiers of all live sessions
	ListSessions(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store
	Close() error
}

// FeedbackStore records feedback on replies
type FeedbackStore interface {
	RecordFeedback(ctx context.Context, feedback Feedback) error
	ListFeedback(ctx context.Context, session string) ([]Feedback, error)
	Close() error
}
