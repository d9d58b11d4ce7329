package nlu

import (
	// Packages
	mia "github.com/mutablelogic/go-mia"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Engine) error

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithDefaultLanguage sets the language returned when detection is
// inconclusive
func WithDefaultLanguage(code string) Opt {
	return func(e *Engine) error {
		if code == "" {
			return mia.ErrBadParameter.With("default language is required")
		}
		e.def = code
		return nil
	}
}
