package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	// Packages
	uuid "github.com/google/uuid"
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

func message(text, intent string) schema.Message {
	return schema.Message{
		ID:          uuid.New().String(),
		UserMessage: text,
		AIResponse:  "reply to " + text,
		Intent:      intent,
		Confidence:  0.5,
		Entities:    schema.NewEntities(),
	}
}

func appendMessage(text, intent string) func(*schema.Session) error {
	return func(s *schema.Session) error {
		s.Append(message(text, intent))
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// SHARED SESSION STORE TESTS

type sessionStoreTest struct {
	Name string
	Fn   func(*testing.T, schema.SessionStore)
}

var sessionStoreTests = []sessionStoreTest{
	{"GetMissing", func(t *testing.T, s schema.SessionStore) {
		assert := assert.New(t)
		_, err := s.GetSession(context.TODO(), "missing")
		assert.Equal(mia.ErrNotFound, mia.Code(err))
	}},
	{"UpdateCreates", func(t *testing.T, s schema.SessionStore) {
		assert := assert.New(t)
		session, err := s.UpdateSession(context.TODO(), "a", appendMessage("hello", "greeting"))
		if !assert.NoError(err) {
			t.FailNow()
		}
		assert.Equal("a", session.ID)
		assert.Equal(schema.StateActive, session.State)
		assert.Len(session.Messages, 1)
		assert.NotNil(session.Context)

		got, err := s.GetSession(context.TODO(), "a")
		if assert.NoError(err) {
			assert.Len(got.Messages, 1)
			assert.Equal("hello", got.Messages[0].UserMessage)
			assert.Equal(schema.StateActive, got.State)
		}
	}},
	{"DefaultIdentifier", func(t *testing.T, s schema.SessionStore) {
		assert := assert.New(t)
		session, err := s.UpdateSession(context.TODO(), "", nil)
		if assert.NoError(err) {
			assert.Equal("default", session.ID)
			assert.Equal(schema.StateGreeting, session.State)
			assert.Empty(session.Messages)
		}
		_, err = s.GetSession(context.TODO(), "default")
		assert.NoError(err)
	}},
	{"Isolation", func(t *testing.T, s schema.SessionStore) {
		assert := assert.New(t)
		s.UpdateSession(context.TODO(), "a", appendMessage("one", "greeting"))
		s.UpdateSession(context.TODO(), "b", appendMessage("two", "how_to"))
		s.UpdateSession(context.TODO(), "b", appendMessage("three", "goodbye"))

		a, err := s.GetSession(context.TODO(), "a")
		assert.NoError(err)
		b, err := s.GetSession(context.TODO(), "b")
		assert.NoError(err)
		assert.Len(a.Messages, 1)
		assert.Len(b.Messages, 2)
		assert.Equal(schema.StateEnding, b.State)
	}},
	{"Copies", func(t *testing.T, s schema.SessionStore) {
		assert := assert.New(t)
		session, _ := s.UpdateSession(context.TODO(), "a", func(s *schema.Session) error {
			s.Merge(map[string]any{"device": "laptop"})
			s.Append(message("hello", "greeting"))
			return nil
		})
		session.Context["device"] = "phone"
		session.Messages[0].UserMessage = "changed"

		got, _ := s.GetSession(context.TODO(), "a")
		assert.Equal("laptop", got.Context["device"])
		assert.Equal("hello", got.Messages[0].UserMessage)
	}},
	{"FunctionError", func(t *testing.T, s schema.SessionStore) {
		assert := assert.New(t)
		failure := errors.New("failure")
		_, err := s.UpdateSession(context.TODO(), "a", func(*schema.Session) error { return failure })
		assert.ErrorIs(err, failure)
		_, err = s.GetSession(context.TODO(), "a")
		assert.Equal(mia.ErrNotFound, mia.Code(err))

		s.UpdateSession(context.TODO(), "a", appendMessage("hello", "greeting"))
		_, err = s.UpdateSession(context.TODO(), "a", func(s *schema.Session) error {
			s.Append(message("lost", "goodbye"))
			return failure
		})
		assert.ErrorIs(err, failure)
		got, _ := s.GetSession(context.TODO(), "a")
		assert.Len(got.Messages, 1)
	}},
	{"Delete", func(t *testing.T, s schema.SessionStore) {
		assert := assert.New(t)
		s.UpdateSession(context.TODO(), "a", appendMessage("hello", "greeting"))
		s.UpdateSession(context.TODO(), "b", appendMessage("hello", "greeting"))
		assert.NoError(s.DeleteSession(context.TODO(), "a"))
		assert.NoError(s.DeleteSession(context.TODO(), "a"))

		_, err := s.GetSession(context.TODO(), "a")
		assert.Equal(mia.ErrNotFound, mia.Code(err))
		_, err = s.GetSession(context.TODO(), "b")
		assert.NoError(err)

		// A deleted session starts again from the beginning
		session, err := s.UpdateSession(context.TODO(), "a", nil)
		if assert.NoError(err) {
			assert.Empty(session.Messages)
		}
	}},
	{"List", func(t *testing.T, s schema.SessionStore) {
		assert := assert.New(t)
		ids, err := s.ListSessions(context.TODO())
		assert.NoError(err)
		assert.Empty(ids)

		for _, id := range []string{"c", "a", "b"} {
			s.UpdateSession(context.TODO(), id, nil)
		}
		s.DeleteSession(context.TODO(), "b")
		ids, err = s.ListSessions(context.TODO())
		assert.NoError(err)
		assert.Equal([]string{"a", "c"}, ids)
	}},
	{"Concurrent", func(t *testing.T, s schema.SessionStore) {
		assert := assert.New(t)
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				for j := 0; j < 5; j++ {
					_, err := s.UpdateSession(context.TODO(), "shared", appendMessage(fmt.Sprint(i, j), "general"))
					assert.NoError(err)
					_, err = s.UpdateSession(context.TODO(), fmt.Sprint("own", i), appendMessage(fmt.Sprint(j), "general"))
					assert.NoError(err)
				}
			}(i)
		}
		wg.Wait()

		session, err := s.GetSession(context.TODO(), "shared")
		if assert.NoError(err) {
			assert.Len(session.Messages, 50)
		}
		for i := 0; i < 10; i++ {
			session, err := s.GetSession(context.TODO(), fmt.Sprint("own", i))
			if assert.NoError(err) {
				assert.Len(session.Messages, 5)
			}
		}
	}},
}

func runSessionStoreTests(t *testing.T, factory func(*testing.T) schema.SessionStore) {
	t.Helper()
	for _, tt := range sessionStoreTests {
		t.Run(tt.Name, func(t *testing.T) {
			s := factory(t)
			t.Cleanup(func() { s.Close() })
			tt.Fn(t, s)
		})
	}
}
