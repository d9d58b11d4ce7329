/*
manager runs the conversation pipeline: language detection, the special
topic override, intent classification, entity extraction, response
selection, avatar instructions and speech synthesis. It also exposes the
avatar, knowledge and voice operations to the HTTP layer.
*/
package manager

import (
	"context"
	"time"

	// Packages
	avatar "github.com/mutablelogic/go-mia/pkg/avatar"
	knowledge "github.com/mutablelogic/go-mia/pkg/knowledge"
	nlu "github.com/mutablelogic/go-mia/pkg/nlu"
	responder "github.com/mutablelogic/go-mia/pkg/responder"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	store "github.com/mutablelogic/go-mia/pkg/store"
	topic "github.com/mutablelogic/go-mia/pkg/topic"
	voice "github.com/mutablelogic/go-mia/pkg/voice"
	zerolog "github.com/rs/zerolog"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Manager is safe for concurrent use
type Manager struct {
	nlu       *nlu.Engine
	topics    *topic.Matcher
	responder *responder.Responder
	knowledge *knowledge.Base
	avatars   *avatar.Store
	voice     *voice.Synthesizer

	sessionStore  schema.SessionStore
	feedbackStore schema.FeedbackStore
	tracer        trace.Tracer
	log           zerolog.Logger

	// Options passed through to the components
	language     string
	responseOpts []responder.Opt
	storeOpts    []store.Opt
	purge        time.Duration
}

// purger is implemented by session stores which expire sessions themselves
type purger interface {
	Purge(ctx context.Context) (int, error)
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Interval between purges of expired sessions
	DefaultPurgeInterval = 10 * time.Minute
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a manager. Without options sessions and feedback are kept in
// memory and speech is mocked.
func New(opts ...Opt) (*Manager, error) {
	m := new(Manager)
	m.log = zerolog.Nop()
	m.language = schema.LanguageEnglish
	m.purge = DefaultPurgeInterval

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	// Create the pipeline
	var err error
	if m.nlu, err = nlu.New(nlu.WithDefaultLanguage(m.language)); err != nil {
		return nil, err
	}
	if m.topics, err = topic.New(); err != nil {
		return nil, err
	}
	if m.knowledge, err = knowledge.New(); err != nil {
		return nil, err
	}
	if m.responder, err = responder.New(append([]responder.Opt{responder.WithGuides(m.knowledge)}, m.responseOpts...)...); err != nil {
		return nil, err
	}
	if m.avatars, err = avatar.NewStore(); err != nil {
		return nil, err
	}

	// Default to in-memory stores and mock speech if none were provided
	if m.sessionStore == nil {
		if m.sessionStore, err = store.NewMemorySessionStore(append([]store.Opt{store.WithLanguage(m.language)}, m.storeOpts...)...); err != nil {
			return nil, err
		}
	}
	if m.feedbackStore == nil {
		m.feedbackStore = store.NewMemoryFeedbackStore()
	}
	if m.voice == nil {
		if m.voice, err = voice.New(voice.WithTracer(m.tracer)); err != nil {
			return nil, err
		}
	}

	// Return success
	return m, nil
}

// Close releases the stores
func (m *Manager) Close() error {
	var result error
	if err := m.sessionStore.Close(); err != nil {
		result = err
	}
	if err := m.feedbackStore.Close(); err != nil && result == nil {
		result = err
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Run purges expired sessions until the context is cancelled
func (m *Manager) Run(ctx context.Context) error {
	purger, ok := m.sessionStore.(purger)
	if !ok {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(m.purge)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n, err := purger.Purge(ctx); err != nil {
				m.log.Error().Err(err).Msg("purge sessions")
			} else if n > 0 {
				m.log.Debug().Int("sessions", n).Msg("purged expired sessions")
			}
		}
	}
}

// Mock returns true when speech is not synthesized by a speech service
func (m *Manager) Mock() bool {
	return m.voice.Mock()
}

// Health reports the state of the service
func (m *Manager) Health() schema.Health {
	return schema.Health{
		Status:  "healthy",
		Service: "Mia Tech Support Avatar",
		Version: avatar.Version,
	}
}
