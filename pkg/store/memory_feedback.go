package store

import (
	"context"
	"sync"

	// Packages
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// MemoryFeedbackStore keeps feedback in memory, in the order it was
// recorded. It is safe for concurrent use.
type MemoryFeedbackStore struct {
	mu       sync.RWMutex
	feedback []schema.Feedback
}

var _ schema.FeedbackStore = (*MemoryFeedbackStore)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewMemoryFeedbackStore() *MemoryFeedbackStore {
	return new(MemoryFeedbackStore)
}

func (m *MemoryFeedbackStore) Close() error {
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RecordFeedback stores feedback
func (m *MemoryFeedbackStore) RecordFeedback(_ context.Context, feedback schema.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback = append(m.feedback, newFeedback(feedback))
	return nil
}

// ListFeedback returns the feedback for a session, or all feedback when
// session is empty
func (m *MemoryFeedbackStore) ListFeedback(_ context.Context, session string) ([]schema.Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]schema.Feedback, 0, len(m.feedback))
	for _, feedback := range m.feedback {
		if session == "" || feedback.Session == session {
			result = append(result, feedback)
		}
	}
	return result, nil
}
