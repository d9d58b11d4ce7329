package manager

import (
	"context"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	voice "github.com/mutablelogic/go-mia/pkg/voice"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Synthesize converts text to speech. A failed synthesis returns the failed
// result together with the error.
func (m *Manager) Synthesize(ctx context.Context, req schema.SpeechRequest) (result *schema.Speech, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "Synthesize",
		attribute.String("voice_tone", req.VoiceTone),
	)
	defer func() { endSpan(err) }()

	return m.voice.Synthesize(ctx, req)
}

// SynthesizeWithTiming converts text to speech with lip-sync timing
func (m *Manager) SynthesizeWithTiming(ctx context.Context, req schema.SpeechRequest) (result *schema.Speech, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "SynthesizeWithTiming",
		attribute.String("voice_tone", req.VoiceTone),
	)
	defer func() { endSpan(err) }()

	return m.voice.SynthesizeWithTiming(ctx, req)
}

// Voices lists the voice catalog
func (m *Manager) Voices() *schema.VoicesResponse {
	voices := m.voice.Voices()
	return &schema.VoicesResponse{
		Voices:  voices,
		Current: m.voice.Voice(),
		Count:   len(voices),
	}
}

// SetVoice selects the voice used when a request has no tone
func (m *Manager) SetVoice(req schema.VoiceProfileRequest) (*schema.VoiceProfileResponse, error) {
	if err := m.voice.SetVoice(req.Key); err != nil {
		return nil, err
	}
	return &schema.VoiceProfileResponse{
		Message: "Voice profile set to " + req.Key,
		Current: m.voice.Voice(),
	}, nil
}

// TestConnection checks the speech service
func (m *Manager) TestConnection(ctx context.Context) (result *schema.TestConnectionResponse, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "TestConnection")
	defer func() { endSpan(err) }()

	test := m.voice.TestConnection(ctx)
	status := "degraded"
	if test.Success {
		status = "operational"
	}
	return &schema.TestConnectionResponse{
		Test:      test,
		Status:    status,
		Mock:      m.voice.Mock(),
		Timestamp: time.Now(),
	}, nil
}

// VoicePresets lists the tones suited to common interactions
func (m *Manager) VoicePresets() *schema.VoicePresetsResponse {
	presets := m.voice.Presets()
	return &schema.VoicePresetsResponse{
		Presets: presets,
		Count:   len(presets),
	}
}

// Batch synthesizes several texts with one tone
func (m *Manager) Batch(ctx context.Context, req schema.BatchRequest) (result *schema.BatchResponse, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "Batch",
		attribute.Int("texts", len(req.Texts)),
	)
	defer func() { endSpan(err) }()

	results, err := m.voice.Batch(ctx, req)
	if err != nil {
		return nil, err
	}
	tone := req.VoiceTone
	if tone == "" {
		tone = voice.DefaultTone
	}
	return &schema.BatchResponse{
		Results:   results,
		Total:     len(results),
		VoiceTone: tone,
	}, nil
}

// AudioFile returns the path of a generated audio file
func (m *Manager) AudioFile(name string) (string, error) {
	return m.voice.AudioFile(name)
}
