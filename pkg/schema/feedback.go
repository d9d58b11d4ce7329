package schema

import "time"

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Feedback on a reply. The rating is stored as submitted.
type Feedback struct {
	ID        string    `json:"id"`
	Session   string    `json:"session_id"`
	MessageID string    `json:"message_id,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"feedback,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
