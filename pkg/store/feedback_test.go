package store_test

import (
	"context"
	"os"
	"testing"

	// Packages
	uuid "github.com/google/uuid"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	store "github.com/mutablelogic/go-mia/pkg/store"
	assert "github.com/stretchr/testify/assert"
)

func runFeedbackTests(t *testing.T, s schema.FeedbackStore) {
	assert := assert.New(t)
	session := uuid.NewString()

	assert.NoError(s.RecordFeedback(context.TODO(), schema.Feedback{Session: session, Rating: 5, Comment: "great"}))
	assert.NoError(s.RecordFeedback(context.TODO(), schema.Feedback{Session: session, MessageID: uuid.NewString(), Rating: 42}))
	assert.NoError(s.RecordFeedback(context.TODO(), schema.Feedback{Session: "other", Rating: -1}))

	feedback, err := s.ListFeedback(context.TODO(), session)
	if !assert.NoError(err) {
		t.FailNow()
	}
	if assert.Len(feedback, 2) {
		assert.Equal(5, feedback[0].Rating)
		assert.Equal("great", feedback[0].Comment)
		assert.NotEmpty(feedback[0].ID)
		assert.False(feedback[0].Timestamp.IsZero())
		assert.Equal(42, feedback[1].Rating)
	}

	feedback, err = s.ListFeedback(context.TODO(), "missing")
	assert.NoError(err)
	assert.Empty(feedback)
}

func Test_feedback_001(t *testing.T) {
	s := store.NewMemoryFeedbackStore()
	defer s.Close()
	runFeedbackTests(t, s)
}

func Test_feedback_002(t *testing.T) {
	assert := assert.New(t)
	s := store.NewMemoryFeedbackStore()
	s.RecordFeedback(context.TODO(), schema.Feedback{Rating: 3})
	feedback, _ := s.ListFeedback(context.TODO(), "")
	if assert.Len(feedback, 1) {
		assert.Equal("default", feedback[0].Session)
	}
}

func Test_feedback_003(t *testing.T) {
	dsn := os.Getenv("FEEDBACK_DSN")
	if dsn == "" {
		t.Skip("FEEDBACK_DSN not set")
	}
	s, err := store.OpenFeedbackStore(dsn)
	if err != nil {
		t.Fatalf("OpenFeedbackStore: %v", err)
	}
	defer s.Close()
	runFeedbackTests(t, s)
}
