package store

import (
	"time"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type opts struct {
	ttl      time.Duration
	max      int
	language string
	prefix   string
}

// Opt configures a session store
type Opt func(*opts) error

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultTTL    = 24 * time.Hour
	DefaultPrefix = "mia:session:"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func applyOpts(opt []Opt) (opts, error) {
	o := opts{
		ttl:      DefaultTTL,
		language: schema.LanguageEnglish,
		prefix:   DefaultPrefix,
	}
	for _, fn := range opt {
		if err := fn(&o); err != nil {
			return o, err
		}
	}
	return o, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithTTL sets how long a session lives after it was last accessed
func WithTTL(ttl time.Duration) Opt {
	return func(o *opts) error {
		if ttl <= 0 {
			return mia.ErrBadParameter.Withf("invalid session ttl %v", ttl)
		}
		o.ttl = ttl
		return nil
	}
}

// WithMaxMessages caps the history of each session, dropping the oldest
// messages. Zero keeps everything.
func WithMaxMessages(n int) Opt {
	return func(o *opts) error {
		if n < 0 {
			return mia.ErrBadParameter.Withf("invalid history limit %d", n)
		}
		o.max = n
		return nil
	}
}

// WithLanguage sets the language of new sessions
func WithLanguage(code string) Opt {
	return func(o *opts) error {
		if code == "" {
			return mia.ErrBadParameter.With("language is required")
		}
		o.language = code
		return nil
	}
}

// WithPrefix sets the key prefix of the Redis store
func WithPrefix(prefix string) Opt {
	return func(o *opts) error {
		if prefix == "" {
			return mia.ErrBadParameter.With("key prefix is required")
		}
		o.prefix = prefix
		return nil
	}
}
