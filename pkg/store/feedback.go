package store

import (
	"time"

	// Packages
	uuid "github.com/google/uuid"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS - FEEDBACK UTILITIES

// newFeedback fills in the identifier and timestamp of feedback
func newFeedback(feedback schema.Feedback) schema.Feedback {
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	if feedback.Timestamp.IsZero() {
		feedback.Timestamp = time.Now()
	}
	feedback.Session = sessionID(feedback.Session)
	return feedback
}
