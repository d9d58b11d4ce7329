package avatar

import (
	_ "embed"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	yaml "gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Store keeps the state of each avatar session. It is safe for concurrent
// use.
type Store struct {
	sync.RWMutex
	presets  map[string]schema.AvatarPreset
	sessions map[string]*schema.AvatarState
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Name    = "Mia"
	Version = "1.0.0"

	defaultIntensity         = 1.0
	defaultExpressionSeconds = 3.0
	defaultGestureSeconds    = 2.0
)

var capabilities = []string{"conversational_ai", "facial_expressions", "voice_synthesis", "gesture_animation", "tech_support"}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewStore returns an empty store with the embedded presets
func NewStore() (*Store, error) {
	s := &Store{
		sessions: make(map[string]*schema.AvatarState),
	}
	if err := yaml.Unmarshal(presetsYAML, &s.presets); err != nil {
		return nil, err
	}
	return s, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Status describes the avatar and the values it accepts
func (s *Store) Status() schema.AvatarStatus {
	return schema.AvatarStatus{
		Name:         Name,
		Version:      Version,
		Status:       "active",
		Capabilities: slices.Clone(capabilities),
		Expressions:  slices.Clone(Expressions),
		Gestures:     without(Gestures, hiddenGestures),
		VoiceTones:   without(VoiceTones, hiddenVoiceTones),
	}
}

// SetExpression sets the facial expression of a session
func (s *Store) SetExpression(req schema.ExpressionRequest) (*schema.AvatarUpdate, error) {
	expression := withDefault(req.Expression, "neutral")
	if err := validate("expression", expression, Expressions); err != nil {
		return nil, err
	}
	intensity, duration := valueOr(req.Intensity, defaultIntensity), valueOr(req.Duration, defaultExpressionSeconds)

	session := s.update(req.Session, func(state *schema.AvatarState) {
		state.Expression = expression
		state.ExpressionIntensity = intensity
		state.ExpressionDuration = duration
	})
	return &schema.AvatarUpdate{
		Message:    "Expression set to " + expression,
		Session:    session,
		Expression: expression,
		Intensity:  intensity,
		Duration:   duration,
		Timestamp:  time.Now(),
	}, nil
}

// SetGesture sets the gesture of a session
func (s *Store) SetGesture(req schema.GestureRequest) (*schema.AvatarUpdate, error) {
	gesture := withDefault(req.Gesture, "none")
	if err := validate("gesture", gesture, Gestures); err != nil {
		return nil, err
	}
	duration := valueOr(req.Duration, defaultGestureSeconds)

	session := s.update(req.Session, func(state *schema.AvatarState) {
		state.Gesture = gesture
		state.GestureDuration = duration
	})
	return &schema.AvatarUpdate{
		Message:   "Gesture set to " + gesture,
		Session:   session,
		Gesture:   gesture,
		Duration:  duration,
		Timestamp: time.Now(),
	}, nil
}

// SetVoiceTone sets the voice tone of a session
func (s *Store) SetVoiceTone(req schema.VoiceToneRequest) (*schema.AvatarUpdate, error) {
	tone := withDefault(req.VoiceTone, "professional")
	if err := validate("voice tone", tone, VoiceTones); err != nil {
		return nil, err
	}

	session := s.update(req.Session, func(state *schema.AvatarState) {
		state.VoiceTone = tone
	})
	return &schema.AvatarUpdate{
		Message:   "Voice tone set to " + tone,
		Session:   session,
		VoiceTone: tone,
		Timestamp: time.Now(),
	}, nil
}

// PlaySequence applies an expression, gesture and voice tone together
func (s *Store) PlaySequence(req schema.SequenceRequest) (*schema.AvatarUpdate, error) {
	sequence := schema.DefaultSequence
	if req.Sequence != nil {
		sequence = *req.Sequence
	}
	if err := validate("expression", sequence.Expression, Expressions); err != nil {
		return nil, err
	}
	if err := validate("gesture", sequence.Gesture, Gestures); err != nil {
		return nil, err
	}
	if err := validate("voice tone", sequence.VoiceTone, VoiceTones); err != nil {
		return nil, err
	}

	session := s.update(req.Session, func(state *schema.AvatarState) {
		state.Expression = sequence.Expression
		state.ExpressionIntensity = sequence.ExpressionIntensity
		state.Gesture = sequence.Gesture
		state.VoiceTone = sequence.VoiceTone
		state.AnimationDuration = sequence.Duration
		state.TransitionSpeed = sequence.TransitionSpeed
	})
	return &schema.AvatarUpdate{
		Message:   "Animation sequence started",
		Session:   session,
		Sequence:  &sequence,
		Timestamp: time.Now(),
	}, nil
}

// Presets returns the named presets
func (s *Store) Presets() map[string]schema.AvatarPreset {
	return maps.Clone(s.presets)
}

// ApplyPreset applies a named preset to a session
func (s *Store) ApplyPreset(name string, req schema.PresetRequest) (*schema.AvatarUpdate, error) {
	preset, exists := s.presets[name]
	if !exists {
		return nil, mia.ErrNotFound.Withf("preset %q, available presets: %s", name, strings.Join(slices.Sorted(maps.Keys(s.presets)), ", "))
	}

	session := s.update(req.Session, func(state *schema.AvatarState) {
		state.Expression = preset.Expression
		state.Gesture = preset.Gesture
		state.VoiceTone = preset.VoiceTone
		state.AnimationDuration = preset.Duration
		state.Preset = name
	})
	config := preset
	config.Description = ""
	return &schema.AvatarUpdate{
		Message:   "Preset " + name + " applied successfully",
		Session:   session,
		Preset:    name,
		Config:    &config,
		Timestamp: time.Now(),
	}, nil
}

// Apply records the instruction sent with a reply as the state of a session
func (s *Store) Apply(session string, instruction schema.AvatarInstruction) {
	s.update(session, func(state *schema.AvatarState) {
		state.Expression = instruction.Expression
		state.Gesture = instruction.Gesture
		state.VoiceTone = instruction.VoiceTone
		state.AnimationDuration = instruction.Duration
	})
}

// Get returns the state of a session
func (s *Store) Get(session string) (*schema.AvatarState, error) {
	s.RLock()
	defer s.RUnlock()
	state, exists := s.sessions[session]
	if !exists {
		return nil, mia.ErrNotFound.Withf("avatar session %q", session)
	}
	result := *state
	return &result, nil
}

// Delete removes the state of a session. Deleting an unknown session is not
// an error.
func (s *Store) Delete(session string) {
	s.Lock()
	defer s.Unlock()
	delete(s.sessions, session)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// update creates the session when it does not exist, applies fn and returns
// the session identifier
func (s *Store) update(session string, fn func(*schema.AvatarState)) string {
	session = withDefault(session, schema.DefaultSession)

	s.Lock()
	defer s.Unlock()
	state, exists := s.sessions[session]
	if !exists {
		state = &schema.AvatarState{
			Session:    session,
			Expression: "neutral",
			Gesture:    "none",
			VoiceTone:  "professional",
		}
		s.sessions[session] = state
	}
	fn(state)
	state.LastUpdate = time.Now()
	return session
}

func validate(kind, value string, valid []string) error {
	if !slices.Contains(valid, value) {
		return mia.ErrBadParameter.Withf("invalid %s %q, valid options: %s", kind, value, strings.Join(valid, ", "))
	}
	return nil
}

func withDefault(value, def string) string {
	if value = strings.TrimSpace(value); value == "" {
		return def
	}
	return value
}

func valueOr(value *float64, def float64) float64 {
	if value == nil {
		return def
	}
	return *value
}
