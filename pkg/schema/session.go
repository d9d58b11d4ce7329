package schema

import (
	"maps"
	"time"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Session is the accumulated state for one caller-chosen identifier
type Session struct {
	ID        string         `json:"session_id"`
	Messages  []Message      `json:"messages"`
	Context   map[string]any `json:"context"`
	Language  string         `json:"language"`
	State     string         `json:"conversation_state"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Message is one exchange within a session. Topic replies also carry the
// emotion, animation and voice tone of the pre-authored bundle.
type Message struct {
	ID          string         `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	UserMessage string         `json:"user_message"`
	AIResponse  string         `json:"ai_response"`
	Intent      string         `json:"intent"`
	Confidence  float64        `json:"confidence"`
	Language    string         `json:"language,omitempty"`
	Entities    Entities       `json:"entities"`
	Context     map[string]any `json:"context,omitempty"`
	Emotion     string         `json:"emotion,omitempty"`
	Animation   string         `json:"animation,omitempty"`
	VoiceTone   string         `json:"voice_tone,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Conversation states
const (
	StateGreeting        = "greeting"
	StateActive          = "active"
	StateTroubleshooting = "troubleshooting"
	StateTeaching        = "teaching"
	StateResolved        = "resolved"
	StateEnding          = "ending"
)

var stateTransitions = map[string]string{
	"greeting":        StateActive,
	"problem_solving": StateTroubleshooting,
	"how_to":          StateTeaching,
	"confirmation":    StateResolved,
	"goodbye":         StateEnding,
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewSession returns an empty session in the greeting state
func NewSession(id, language string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Messages:  []Message{},
		Context:   map[string]any{},
		Language:  language,
		State:     StateGreeting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Append adds a message to the session and advances the conversation state
func (s *Session) Append(message Message) {
	s.Messages = append(s.Messages, message)
	if next, exists := stateTransitions[message.Intent]; exists {
		s.State = next
	}
	s.UpdatedAt = time.Now()
}

// Merge copies the keys of context into the session context, overwriting
// existing keys
func (s *Session) Merge(context map[string]any) {
	if s.Context == nil {
		s.Context = make(map[string]any, len(context))
	}
	maps.Copy(s.Context, context)
	s.UpdatedAt = time.Now()
}

// Truncate drops the oldest messages so that at most max remain. A max of
// zero keeps everything.
func (s *Session) Truncate(max int) {
	if max > 0 && len(s.Messages) > max {
		s.Messages = append([]Message{}, s.Messages[len(s.Messages)-max:]...)
	}
}

// Last returns the most recent message, or nil
func (s *Session) Last() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	result := *s
	result.Context = maps.Clone(s.Context)
	if result.Context == nil {
		result.Context = map[string]any{}
	}
	result.Messages = make([]Message, len(s.Messages))
	for i, message := range s.Messages {
		message.Entities = message.Entities.Clone()
		message.Context = maps.Clone(message.Context)
		result.Messages[i] = message
	}
	return &result
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (s Session) String() string {
	return Stringify(s)
}
