package manager

import (
	"time"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	responder "github.com/mutablelogic/go-mia/pkg/responder"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	store "github.com/mutablelogic/go-mia/pkg/store"
	voice "github.com/mutablelogic/go-mia/pkg/voice"
	zerolog "github.com/rs/zerolog"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring the manager
type Opt func(*Manager) error

///////////////////////////////////////////////////////////////////////////////
// STORAGE OPTIONS

// WithSessionStore sets the session storage backend for the manager.
// If not set, an in-memory store is used by default.
func WithSessionStore(store schema.SessionStore) Opt {
	return func(m *Manager) error {
		if store == nil {
			return mia.ErrBadParameter.With("session store is required")
		}
		m.sessionStore = store
		return nil
	}
}

// WithFeedbackStore sets the feedback storage backend for the manager.
// If not set, an in-memory store is used by default.
func WithFeedbackStore(store schema.FeedbackStore) Opt {
	return func(m *Manager) error {
		if store == nil {
			return mia.ErrBadParameter.With("feedback store is required")
		}
		m.feedbackStore = store
		return nil
	}
}

// WithTTL sets how long the default session store keeps an idle session
func WithTTL(ttl time.Duration) Opt {
	return func(m *Manager) error {
		m.storeOpts = append(m.storeOpts, store.WithTTL(ttl))
		return nil
	}
}

// WithMaxMessages caps the history of sessions in the default session store
func WithMaxMessages(n int) Opt {
	return func(m *Manager) error {
		m.storeOpts = append(m.storeOpts, store.WithMaxMessages(n))
		return nil
	}
}

// WithPurgeInterval sets how often expired sessions are purged
func WithPurgeInterval(interval time.Duration) Opt {
	return func(m *Manager) error {
		if interval <= 0 {
			return mia.ErrBadParameter.Withf("invalid purge interval %v", interval)
		}
		m.purge = interval
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PIPELINE OPTIONS

// WithSynthesizer sets the speech synthesizer. If not set, speech is mocked.
func WithSynthesizer(synthesizer *voice.Synthesizer) Opt {
	return func(m *Manager) error {
		if synthesizer == nil {
			return mia.ErrBadParameter.With("synthesizer is required")
		}
		m.voice = synthesizer
		return nil
	}
}

// WithDefaultLanguage sets the language used when detection is
// inconclusive, and the language of new sessions
func WithDefaultLanguage(code string) Opt {
	return func(m *Manager) error {
		if code == "" {
			return mia.ErrBadParameter.With("default language is required")
		}
		m.language = code
		return nil
	}
}

// WithSeed seeds the random choice of replies
func WithSeed(seed int64) Opt {
	return func(m *Manager) error {
		m.responseOpts = append(m.responseOpts, responder.WithSeed(seed))
		return nil
	}
}

// WithRates sets the probability of encouragements and witty remarks
func WithRates(encouragement, witty float64) Opt {
	return func(m *Manager) error {
		m.responseOpts = append(m.responseOpts, responder.WithRates(encouragement, witty))
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// OBSERVABILITY OPTIONS

// WithTracer sets the tracer for operation spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(m *Manager) error {
		m.tracer = tracer
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(log zerolog.Logger) Opt {
	return func(m *Manager) error {
		m.log = log
		return nil
	}
}
