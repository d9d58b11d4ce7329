package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

// TopicReply is a pre-authored reply for a special topic, used verbatim
type TopicReply struct {
	Response  string `json:"response" yaml:"response"`
	Intent    string `json:"intent" yaml:"-"`
	Emotion   string `json:"emotion" yaml:"emotion"`
	Animation string `json:"animation" yaml:"animation"`
	VoiceTone string `json:"voice_tone" yaml:"voice_tone"`
	FollowUp  string `json:"follow_up,omitempty" yaml:"follow_up"`
}
