package responder

import (
	// Packages
	mia "github.com/mutablelogic/go-mia"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Responder) error

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithSeed seeds the random choice of templates and decorations
func WithSeed(seed int64) Opt {
	return func(r *Responder) error {
		r.seed = seed
		return nil
	}
}

// WithRates sets the probability of appending an encouragement to a
// problem solving reply, and of appending a witty remark to any reply
func WithRates(encouragement, witty float64) Opt {
	return func(r *Responder) error {
		if encouragement < 0 || encouragement > 1 || witty < 0 || witty > 1 {
			return mia.ErrBadParameter.With("rates must be between 0 and 1")
		}
		r.encouragement, r.witty = encouragement, witty
		return nil
	}
}

// WithGuides sets the source of step-by-step guides for problem solving
// and how-to replies
func WithGuides(guides GuideFinder) Opt {
	return func(r *Responder) error {
		r.guides = guides
		return nil
	}
}
