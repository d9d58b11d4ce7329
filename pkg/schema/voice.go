package schema

import "time"

////////////////////////////////////////////////////////////////////////////////
// TYPES

// VoiceProfile is an entry in the voice catalog
type VoiceProfile struct {
	Key             string  `json:"key" yaml:"key"`
	Name            string  `json:"name" yaml:"name"`
	Description     string  `json:"description" yaml:"description"`
	Language        string  `json:"language" yaml:"language"`
	LanguageName    string  `json:"language_name" yaml:"language_name"`
	VoiceID         string  `json:"voice_id" yaml:"voice_id"`
	Stability       float64 `json:"stability" yaml:"stability"`
	SimilarityBoost float64 `json:"similarity_boost" yaml:"similarity_boost"`
	Style           float64 `json:"style" yaml:"style"`
	SpeakerBoost    bool    `json:"use_speaker_boost" yaml:"use_speaker_boost"`
}

// VoicePreset describes a tone suited to an interaction
type VoicePreset struct {
	VoiceTone   string `json:"voice_tone" yaml:"voice_tone"`
	Description string `json:"description" yaml:"description"`
	UseCase     string `json:"use_case" yaml:"use_case"`
}

// SpeechRequest asks for text to be synthesized
type SpeechRequest struct {
	Text         string `json:"text" arg:"" help:"Text to synthesize"`
	VoiceTone    string `json:"voice_tone,omitempty" help:"Voice tone" default:"professional"`
	Language     string `json:"language,omitempty" help:"Language code" default:"en"`
	OutputFormat string `json:"output_format,omitempty" help:"Audio output format" default:"mp3_44100_128"`
	ReturnAudio  *bool  `json:"return_audio,omitempty" help:"Return audio as base64 rather than a file" negatable:""`
}

// Speech is the result of synthesizing text. A failed synthesis sets
// Success to false and carries the reason in Error.
type Speech struct {
	Success          bool      `json:"success"`
	Text             string    `json:"text"`
	OptimizedText    string    `json:"optimized_text,omitempty"`
	VoiceProfile     string    `json:"voice_profile,omitempty"`
	VoiceID          string    `json:"voice_id,omitempty"`
	VoiceTone        string    `json:"voice_tone"`
	Language         string    `json:"language,omitempty"`
	AudioFormat      string    `json:"audio_format,omitempty"`
	AudioSize        int       `json:"audio_size,omitempty"`
	DurationEstimate float64   `json:"duration_estimate"`
	AudioBase64      string    `json:"audio_base64,omitempty"`
	AudioFile        string    `json:"audio_file_path,omitempty"`
	LipSync          *LipSync  `json:"lip_sync_timing,omitempty"`
	Mock             bool      `json:"mock_mode,omitempty"`
	Error            string    `json:"error,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// LipSync is an estimated per-word timing table
type LipSync struct {
	Words           []WordTiming `json:"words"`
	TotalDuration   float64      `json:"total_duration"`
	WordCount       int          `json:"word_count"`
	AverageDuration float64      `json:"average_word_duration"`
}

// WordTiming is the estimated position of one word in the audio
type WordTiming struct {
	Word     string  `json:"word"`
	Start    float64 `json:"start_time"`
	End      float64 `json:"end_time"`
	Duration float64 `json:"duration"`
}

// TestConnectionResponse reports the state of the speech service
type TestConnectionResponse struct {
	Test      ConnectionTest `json:"connection_test"`
	Status    string         `json:"service_status"`
	Mock      bool           `json:"mock_mode"`
	Timestamp time.Time      `json:"timestamp"`
}

// ConnectionTest is the result of probing the speech service
type ConnectionTest struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Mock      bool   `json:"mock_mode"`
	AudioSize int    `json:"test_audio_size,omitempty"`
}
