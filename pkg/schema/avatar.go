package schema

import (
	"encoding/json"
	"time"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// AvatarInstruction tells the external renderer how to animate a reply
type AvatarInstruction struct {
	Expression string  `json:"expression"`
	Gesture    string  `json:"gesture"`
	VoiceTone  string  `json:"voice_tone"`
	Duration   float64 `json:"animation_duration"`
}

// AvatarState is the last instruction applied to an avatar session
type AvatarState struct {
	Session             string    `json:"session_id"`
	Expression          string    `json:"current_expression"`
	ExpressionIntensity float64   `json:"expression_intensity,omitempty"`
	ExpressionDuration  float64   `json:"expression_duration,omitempty"`
	Gesture             string    `json:"current_gesture"`
	GestureDuration     float64   `json:"gesture_duration,omitempty"`
	VoiceTone           string    `json:"voice_tone"`
	AnimationDuration   float64   `json:"animation_duration,omitempty"`
	TransitionSpeed     float64   `json:"transition_speed,omitempty"`
	Preset              string    `json:"preset_applied,omitempty"`
	LastUpdate          time.Time `json:"last_update"`
}

// AnimationSequence is a coordinated expression, gesture and voice change
type AnimationSequence struct {
	Expression          string  `json:"expression"`
	ExpressionIntensity float64 `json:"expression_intensity"`
	Gesture             string  `json:"gesture"`
	VoiceTone           string  `json:"voice_tone"`
	Duration            float64 `json:"duration"`
	TransitionSpeed     float64 `json:"transition_speed"`
}

// DefaultSequence holds the values of fields left out of a sequence
var DefaultSequence = AnimationSequence{
	Expression:          "neutral",
	ExpressionIntensity: 1.0,
	Gesture:             "none",
	VoiceTone:           "professional",
	Duration:            3.0,
	TransitionSpeed:     1.0,
}

// AvatarPreset is a named instruction for a common scenario
type AvatarPreset struct {
	Expression  string  `json:"expression" yaml:"expression"`
	Gesture     string  `json:"gesture" yaml:"gesture"`
	VoiceTone   string  `json:"voice_tone" yaml:"voice_tone"`
	Duration    float64 `json:"duration" yaml:"duration"`
	Description string  `json:"description,omitempty" yaml:"description"`
}

// AvatarStatus describes the avatar and what it can render
type AvatarStatus struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Status       string   `json:"status"`
	Capabilities []string `json:"capabilities"`
	Expressions  []string `json:"supported_expressions"`
	Gestures     []string `json:"supported_gestures"`
	VoiceTones   []string `json:"voice_options"`
}

// AvatarCoordination synchronises an animation with synthesized speech
type AvatarCoordination struct {
	AvatarInstruction
	VoiceDuration float64  `json:"voice_duration"`
	TotalTime     float64  `json:"total_interaction_time"`
	LipSync       *LipSync `json:"lip_sync_data,omitempty"`
	Synchronized  bool     `json:"synchronized"`
}

////////////////////////////////////////////////////////////////////////////////
// JSON

// UnmarshalJSON merges the supplied fields over DefaultSequence
func (s *AnimationSequence) UnmarshalJSON(data []byte) error {
	type sequence AnimationSequence
	v := sequence(DefaultSequence)
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = AnimationSequence(v)
	return nil
}
