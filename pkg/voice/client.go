package voice

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is an ElevenLabs text-to-speech client
type Client struct {
	*client.Client
}

// Speaker converts text to audio with a voice
type Speaker interface {
	Speak(ctx context.Context, text string, voice schema.VoiceProfile, format string) ([]byte, error)
}

type speechRequest struct {
	Text     string        `json:"text"`
	Model    string        `json:"model_id"`
	Settings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	SpeakerBoost    bool    `json:"use_speaker_boost"`
}

type voicesResponse struct {
	Voices []struct {
		ID   string `json:"voice_id"`
		Name string `json:"name"`
	} `json:"voices"`
}

// audio collects a binary response body
type audio struct {
	bytes.Buffer
}

var _ Speaker = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint         = "https://api.elevenlabs.io/v1"
	defaultModel     = "eleven_multilingual_v2"
	DefaultFormat    = "mp3_44100_128"
	latencyOptimized = 2
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewClient creates an ElevenLabs client with an API key
func NewClient(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	opts = append([]client.ClientOpt{client.OptEndpoint(endPoint)}, opts...)
	opts = append(opts, client.OptHeader("xi-api-key", apiKey))
	if c, err := client.New(opts...); err != nil {
		return nil, err
	} else {
		return &Client{c}, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Speak converts text to audio in the requested output format
func (c *Client) Speak(ctx context.Context, text string, voice schema.VoiceProfile, format string) ([]byte, error) {
	if format == "" {
		format = DefaultFormat
	}
	payload, err := client.NewJSONRequestEx(http.MethodPost, speechRequest{
		Text:  text,
		Model: defaultModel,
		Settings: voiceSettings{
			Stability:       voice.Stability,
			SimilarityBoost: voice.SimilarityBoost,
			Style:           voice.Style,
			SpeakerBoost:    voice.SpeakerBoost,
		},
	}, "audio/mpeg")
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("output_format", format)
	query.Set("optimize_streaming_latency", strconv.Itoa(latencyOptimized))

	var response audio
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("text-to-speech", voice.VoiceID), client.OptQuery(query)); err != nil {
		return nil, err
	}
	return response.Bytes(), nil
}

// Voices returns the identifiers of the voices available to the account
func (c *Client) Voices(ctx context.Context) (map[string]string, error) {
	var response voicesResponse
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("voices")); err != nil {
		return nil, err
	}
	result := make(map[string]string, len(response.Voices))
	for _, voice := range response.Voices {
		result[voice.ID] = voice.Name
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// Unmarshal reads an audio response body
func (a *audio) Unmarshal(_ http.Header, r io.Reader) error {
	_, err := a.ReadFrom(r)
	return err
}
