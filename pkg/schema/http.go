package schema

import "time"

////////////////////////////////////////////////////////////////////////////////
// CONVERSATION

// ChatRequest is a message sent to the assistant
type ChatRequest struct {
	Message string         `json:"message" arg:"" help:"Message text"`
	Session string         `json:"session_id,omitempty" help:"Session identifier" default:"default"`
	Context map[string]any `json:"context,omitempty" kong:"-"`
}

// ChatResponse is the reply to a ChatRequest
type ChatResponse struct {
	Response   string            `json:"response"`
	Confidence float64           `json:"confidence"`
	Intent     string            `json:"intent"`
	Language   string            `json:"language"`
	Entities   Entities          `json:"entities"`
	Avatar     AvatarInstruction `json:"avatar_instructions"`
	Session    string            `json:"session_id"`
	MessageID  string            `json:"message_id"`
	Emotion    string            `json:"emotion,omitempty"`
	FollowUp   string            `json:"follow_up,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// IntentRequest asks for a message to be classified without a reply
type IntentRequest struct {
	Message  string `json:"message" arg:"" help:"Message text"`
	Language string `json:"language,omitempty" help:"Language code, detected when empty" optional:""`
}

// IntentResponse is the classification of a message
type IntentResponse struct {
	Intent
	Language string   `json:"language"`
	Entities Entities `json:"entities"`
}

// ContextRequest merges keys into the context of a session
type ContextRequest struct {
	Session string         `json:"session_id,omitempty"`
	Context map[string]any `json:"context"`
}

// HistoryResponse is the message history of a session
type HistoryResponse struct {
	Session  string    `json:"session_id"`
	Language string    `json:"language,omitempty"`
	State    string    `json:"conversation_state,omitempty"`
	History  []Message `json:"history"`
	Count    int       `json:"message_count"`
}

// FeedbackRequest rates a reply
type FeedbackRequest struct {
	Session   string `json:"session_id,omitempty"`
	MessageID string `json:"message_id,omitempty"`
	Rating    int    `json:"rating"`
	Feedback  string `json:"feedback,omitempty"`
}

// LanguageRequest sets the language of a session
type LanguageRequest struct {
	Session  string `json:"session_id,omitempty"`
	Language string `json:"language"`
}

// Language describes a supported language
type Language struct {
	Code     string `json:"code" yaml:"-"`
	Name     string `json:"name" yaml:"name"`
	Native   string `json:"native_name" yaml:"native_name"`
	VoiceID  string `json:"voice_id" yaml:"voice_id"`
	Greeting string `json:"greeting" yaml:"greeting"`
	Fallback string `json:"fallback" yaml:"fallback"`
}

// LanguagesResponse lists the supported languages
type LanguagesResponse struct {
	Languages []Language `json:"languages"`
	Default   string     `json:"default_language"`
	Count     int        `json:"count"`
}

// LanguageResponse reports a change to the language of a session
type LanguageResponse struct {
	Session  string `json:"session_id"`
	Previous string `json:"old_language"`
	Language string `json:"new_language"`
	Message  string `json:"message"`
	VoiceID  string `json:"voice_id,omitempty"`
}

// MessageResponse is a generic acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
	Session string `json:"session_id,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// AVATAR

// ExpressionRequest sets the facial expression of an avatar session
type ExpressionRequest struct {
	Session    string   `json:"session_id,omitempty"`
	Expression string   `json:"expression,omitempty"`
	Intensity  *float64 `json:"intensity,omitempty"`
	Duration   *float64 `json:"duration,omitempty"`
}

// GestureRequest sets the gesture of an avatar session
type GestureRequest struct {
	Session  string   `json:"session_id,omitempty"`
	Gesture  string   `json:"gesture,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
}

// VoiceToneRequest sets the voice tone of an avatar session
type VoiceToneRequest struct {
	Session   string `json:"session_id,omitempty"`
	VoiceTone string `json:"voice_tone,omitempty"`
}

// SequenceRequest plays an animation sequence. Fields left out of the
// sequence take their default values.
type SequenceRequest struct {
	Session  string             `json:"session_id,omitempty"`
	Sequence *AnimationSequence `json:"sequence,omitempty"`
}

// PresetRequest applies a preset to an avatar session
type PresetRequest struct {
	Session string `json:"session_id,omitempty"`
}

// AvatarUpdate reports a change applied to an avatar session
type AvatarUpdate struct {
	Message    string             `json:"message"`
	Session    string             `json:"session_id,omitempty"`
	Expression string             `json:"expression,omitempty"`
	Intensity  float64            `json:"intensity,omitempty"`
	Gesture    string             `json:"gesture,omitempty"`
	VoiceTone  string             `json:"voice_tone,omitempty"`
	Duration   float64            `json:"duration,omitempty"`
	Preset     string             `json:"preset,omitempty"`
	Sequence   *AnimationSequence `json:"sequence,omitempty"`
	Config     *AvatarPreset      `json:"configuration,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
}

// AvatarResponse is the state of an avatar session
type AvatarResponse struct {
	Session   string      `json:"session_id"`
	State     AvatarState `json:"avatar_state"`
	Timestamp time.Time   `json:"timestamp"`
}

// AvatarStatusResponse describes the avatar
type AvatarStatusResponse struct {
	Avatar    AvatarStatus `json:"avatar"`
	Timestamp time.Time    `json:"timestamp"`
}

// PresetsResponse lists the avatar presets
type PresetsResponse struct {
	Presets map[string]AvatarPreset `json:"presets"`
	Count   int                     `json:"count"`
}

////////////////////////////////////////////////////////////////////////////////
// KNOWLEDGE

// SearchRequest searches the knowledge base
type SearchRequest struct {
	Query    string `json:"query" arg:"" help:"Search query"`
	Category string `json:"category,omitempty" help:"Restrict results to a category" optional:""`
}

// SearchResponse lists matching solutions
type SearchResponse struct {
	Solutions []Solution `json:"solutions"`
	Query     string     `json:"query,omitempty"`
	Keywords  []string   `json:"keywords,omitempty"`
	Category  string     `json:"category,omitempty"`
	Count     int        `json:"count"`
}

// SolutionResponse is a solution with its related solutions
type SolutionResponse struct {
	Solution Solution      `json:"solution"`
	Related  []SolutionRef `json:"related_solutions"`
}

// CategoriesResponse lists the knowledge base categories
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
	Count      int        `json:"total_categories"`
}

// QuickFixRequest asks for a quick fix
type QuickFixRequest struct {
	Issue string `json:"issue_type"`
}

// QuickFixResponse is the quick fix for an issue type
type QuickFixResponse struct {
	QuickFix QuickFix `json:"quick_fix"`
	Issue    string   `json:"issue_type"`
}

// QuestionsResponse lists diagnostic questions for a category
type QuestionsResponse struct {
	Questions []string `json:"questions"`
	Category  string   `json:"category"`
	Count     int      `json:"count"`
}

// KeywordsRequest searches the knowledge base by keyword
type KeywordsRequest struct {
	Keywords []string `json:"keywords"`
}

////////////////////////////////////////////////////////////////////////////////
// VOICE

// VoiceProfileRequest selects the current voice profile
type VoiceProfileRequest struct {
	Key string `json:"voice_key"`
}

// VoicesResponse lists the voice catalog
type VoicesResponse struct {
	Voices  []VoiceProfile `json:"voices"`
	Current string         `json:"current_voice"`
	Count   int            `json:"count"`
}

// ConversationVoiceRequest voices an existing reply
type ConversationVoiceRequest struct {
	Session  string    `json:"session_id,omitempty"`
	Response ReplyText `json:"ai_response"`
}

// ReplyText is a reply with the animation it was sent with
type ReplyText struct {
	Text   string             `json:"text"`
	Avatar *AvatarInstruction `json:"avatar_instructions,omitempty"`
}

// ConversationVoiceResponse is the speech and avatar coordination for a
// reply
type ConversationVoiceResponse struct {
	Session      string             `json:"session_id"`
	Response     ReplyText          `json:"ai_response"`
	Voice        *Speech            `json:"voice_synthesis"`
	Coordination AvatarCoordination `json:"avatar_coordination"`
	Mock         bool               `json:"mock_mode"`
	Timestamp    time.Time          `json:"timestamp"`
}

// VoiceProfileResponse reports the current voice profile
type VoiceProfileResponse struct {
	Message string `json:"message"`
	Current string `json:"current_voice"`
}

// VoicePresetsResponse lists the voice presets
type VoicePresetsResponse struct {
	Presets map[string]VoicePreset `json:"presets"`
	Count   int                    `json:"count"`
}

// BatchRequest synthesizes several texts with one tone
type BatchRequest struct {
	Texts     []string `json:"texts"`
	VoiceTone string   `json:"voice_tone,omitempty"`
	Language  string   `json:"language,omitempty"`
}

// BatchResult is the synthesis of one text in a batch
type BatchResult struct {
	Index  int     `json:"index"`
	Text   string  `json:"text"`
	Result *Speech `json:"synthesis_result"`
}

// BatchResponse is the result of a BatchRequest
type BatchResponse struct {
	Results   []BatchResult `json:"batch_results"`
	Total     int           `json:"total_processed"`
	VoiceTone string        `json:"voice_tone"`
}

////////////////////////////////////////////////////////////////////////////////
// INTEGRATED

// CompleteRequest is a message answered with text, voice and animation
type CompleteRequest struct {
	ChatRequest
	IncludeVoice *bool  `json:"include_voice,omitempty"`
	VoiceFormat  string `json:"voice_format,omitempty"`
}

// Reply is the conversational part of an integrated response
type Reply struct {
	Text       string   `json:"text"`
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Language   string   `json:"language,omitempty"`
	Entities   Entities `json:"entities"`
	MessageID  string   `json:"message_id"`
	FollowUp   string   `json:"follow_up,omitempty"`
}

// CompleteResponse combines a reply with synthesized speech and avatar
// coordination
type CompleteResponse struct {
	UserMessage  string              `json:"user_message"`
	Reply        Reply               `json:"ai_response"`
	Avatar       AvatarInstruction   `json:"avatar_instructions"`
	Voice        *Speech             `json:"voice_synthesis,omitempty"`
	Coordination *AvatarCoordination `json:"avatar_coordination,omitempty"`
	Session      string              `json:"session_id"`
	ResponseType string              `json:"response_type,omitempty"`
	Timestamp    time.Time           `json:"timestamp"`
}

// VoiceOnlyRequest voices text outside of a conversation
type VoiceOnlyRequest struct {
	Text      string `json:"text"`
	VoiceTone string `json:"voice_tone,omitempty"`
	Session   string `json:"session_id,omitempty"`
	Language  string `json:"language,omitempty"`
}

// VoiceOnlyResponse is the speech for a VoiceOnlyRequest
type VoiceOnlyResponse struct {
	Text      string    `json:"text"`
	Voice     *Speech   `json:"voice_synthesis"`
	Session   string    `json:"session_id"`
	Mock      bool      `json:"mock_mode"`
	Timestamp time.Time `json:"timestamp"`
}

// FlowRequest processes several messages in sequence within one session
type FlowRequest struct {
	Messages     []string       `json:"messages"`
	Session      string         `json:"session_id,omitempty"`
	Context      map[string]any `json:"context,omitempty"`
	IncludeVoice *bool          `json:"include_voice,omitempty"`
}

// FlowItem is one step of a conversation flow
type FlowItem struct {
	Sequence    int               `json:"sequence"`
	UserMessage string            `json:"user_message"`
	Reply       Reply             `json:"ai_response"`
	Avatar      AvatarInstruction `json:"avatar_instructions"`
	Voice       *Speech           `json:"voice_synthesis,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// FlowResponse is the result of a FlowRequest
type FlowResponse struct {
	Flow         []FlowItem `json:"conversation_flow"`
	Session      string     `json:"session_id"`
	Total        int        `json:"total_messages"`
	IncludeVoice bool       `json:"include_voice"`
}

////////////////////////////////////////////////////////////////////////////////
// HEALTH

// Health is the service health report
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
