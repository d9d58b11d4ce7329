package voice

import (
	// Packages
	mia "github.com/mutablelogic/go-mia"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Synthesizer) error

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithSpeaker sets the speech service. Without one, synthesis returns mock
// results.
func WithSpeaker(speaker Speaker) Opt {
	return func(s *Synthesizer) error {
		s.speaker = speaker
		return nil
	}
}

// WithAudioDir sets the directory audio files are written to and served
// from
func WithAudioDir(dir string) Opt {
	return func(s *Synthesizer) error {
		if dir == "" {
			return mia.ErrBadParameter.With("audio directory is empty")
		}
		s.audioDir = dir
		return nil
	}
}

// WithBatchLimit sets the number of texts synthesized in parallel
func WithBatchLimit(n int) Opt {
	return func(s *Synthesizer) error {
		if n < 1 {
			return mia.ErrBadParameter.Withf("batch limit %d", n)
		}
		s.limit = n
		return nil
	}
}

// WithTracer sets the tracer for synthesis spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(s *Synthesizer) error {
		s.tracer = tracer
		return nil
	}
}
