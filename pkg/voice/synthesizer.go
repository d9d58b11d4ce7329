/*
voice turns replies into speech with ElevenLabs, estimating duration and
lip-sync timing for the avatar. Without an API key it returns mock results
so the rest of the system works unchanged.
*/
package voice

import (
	"context"
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Synthesizer is safe for concurrent use
type Synthesizer struct {
	catalog  *Catalog
	speaker  Speaker
	audioDir string
	limit    int
	tracer   trace.Tracer

	mu      sync.RWMutex
	current string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultBatchLimit = 4
	DefaultTone       = "professional"

	mockProfile   = "Mock Voice"
	mockAudio     = "mock_audio_data_base64"
	mockAudioSize = 1024
	testPhrase    = "Hello! I'm Mia, your tech support assistant."
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a synthesizer with the embedded voice catalog
func New(opts ...Opt) (*Synthesizer, error) {
	catalog, err := LoadCatalog()
	if err != nil {
		return nil, err
	}
	s := &Synthesizer{
		catalog:  catalog,
		audioDir: filepath.Join(os.TempDir(), "mia"),
		limit:    DefaultBatchLimit,
		current:  DefaultVoice,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.audioDir, err = filepath.Abs(s.audioDir); err != nil {
		return nil, err
	}
	return s, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Mock returns true when there is no speech service
func (s *Synthesizer) Mock() bool {
	return s.speaker == nil
}

// Synthesize converts text to speech. An empty tone uses the current voice.
// When the speech service fails, the failed result is returned with an
// error wrapping ErrServiceUnavailable.
func (s *Synthesizer) Synthesize(ctx context.Context, req schema.SpeechRequest) (result *schema.Speech, err error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, mia.ErrBadParameter.With("text is required")
	}
	lang := req.Language
	if lang == "" {
		lang = schema.LanguageEnglish
	}
	format := req.OutputFormat
	if format == "" {
		format = DefaultFormat
	}

	// Mock
	if s.speaker == nil {
		result = s.MockSpeech(text, req.VoiceTone)
		result.Language = lang
		return result, nil
	}

	// Select the voice
	var profile schema.VoiceProfile
	if req.VoiceTone == "" {
		voice, err := s.catalog.Voice(s.Voice())
		if err != nil {
			return nil, err
		}
		profile = *voice
	} else {
		profile = s.catalog.Profile(req.VoiceTone, lang)
	}

	// Otel span
	ctx, endSpan := otel.StartSpan(s.tracer, ctx, "Synthesize",
		attribute.String("voice", profile.Key),
		attribute.Int("length", len(text)),
	)
	defer func() { endSpan(err) }()

	optimized := s.catalog.Optimize(text, lang)
	data, err := s.speaker.Speak(ctx, optimized, profile, format)
	if err != nil {
		return &schema.Speech{
			Text:      text,
			VoiceTone: req.VoiceTone,
			Language:  lang,
			Error:     err.Error(),
			Timestamp: time.Now(),
		}, mia.ErrServiceUnavailable.Withf("speech synthesis: %v", err)
	}

	result = &schema.Speech{
		Success:          true,
		Text:             text,
		OptimizedText:    optimized,
		VoiceProfile:     profile.Name,
		VoiceID:          profile.VoiceID,
		VoiceTone:        req.VoiceTone,
		Language:         lang,
		AudioFormat:      format,
		AudioSize:        len(data),
		DurationEstimate: EstimateDuration(optimized),
		Timestamp:        time.Now(),
	}
	if req.ReturnAudio == nil || *req.ReturnAudio {
		result.AudioBase64 = base64.StdEncoding.EncodeToString(data)
	} else if result.AudioFile, err = s.writeAudio(data, format); err != nil {
		return nil, err
	}

	// Return success
	return result, nil
}

// SynthesizeWithTiming converts text to speech and adds the lip-sync timing
// of each word
func (s *Synthesizer) SynthesizeWithTiming(ctx context.Context, req schema.SpeechRequest) (*schema.Speech, error) {
	result, err := s.Synthesize(ctx, req)
	if err != nil {
		return result, err
	}
	result.LipSync = LipSync(result.OptimizedText, result.DurationEstimate)
	return result, nil
}

// MockSpeech returns the result used when there is no speech service
func (s *Synthesizer) MockSpeech(text, tone string) *schema.Speech {
	return &schema.Speech{
		Success:          true,
		Text:             text,
		OptimizedText:    text,
		VoiceProfile:     mockProfile,
		VoiceTone:        tone,
		AudioFormat:      DefaultFormat,
		AudioSize:        mockAudioSize,
		DurationEstimate: EstimateDuration(text),
		AudioBase64:      mockAudio,
		Mock:             true,
		Timestamp:        time.Now(),
	}
}

// Voices returns the voice catalog in listing order
func (s *Synthesizer) Voices() []schema.VoiceProfile {
	return slices.Clone(s.catalog.Voices)
}

// Presets returns the voice tones suited to common interactions
func (s *Synthesizer) Presets() map[string]schema.VoicePreset {
	return s.catalog.PresetMap()
}

// Voice returns the key of the current voice
func (s *Synthesizer) Voice() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetVoice sets the current voice
func (s *Synthesizer) SetVoice(key string) error {
	if key = strings.TrimSpace(key); key == "" {
		return mia.ErrBadParameter.With("voice key is required")
	}
	if _, err := s.catalog.Voice(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = key
	return nil
}

// TestConnection synthesizes a short phrase to check the speech service
func (s *Synthesizer) TestConnection(ctx context.Context) schema.ConnectionTest {
	if s.speaker == nil {
		return schema.ConnectionTest{Message: "ElevenLabs client not initialized", Mock: true}
	}
	result, err := s.Synthesize(ctx, schema.SpeechRequest{Text: testPhrase, VoiceTone: DefaultTone})
	if err != nil {
		return schema.ConnectionTest{Message: "Connection test failed: " + err.Error()}
	}
	return schema.ConnectionTest{Success: true, Message: "ElevenLabs connection successful", AudioSize: result.AudioSize}
}

// Batch synthesizes several texts in parallel with one tone. Blank texts are
// skipped, and a text which fails carries the failure in its result.
func (s *Synthesizer) Batch(ctx context.Context, req schema.BatchRequest) ([]schema.BatchResult, error) {
	if len(req.Texts) == 0 {
		return nil, mia.ErrBadParameter.With("texts array is required")
	}
	tone := req.VoiceTone
	if tone == "" {
		tone = DefaultTone
	}

	results := make([]*schema.BatchResult, len(req.Texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, text := range req.Texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		g.Go(func() error {
			speech, err := s.Synthesize(ctx, schema.SpeechRequest{Text: text, VoiceTone: tone, Language: req.Language})
			if speech == nil {
				return err
			}
			results[i] = &schema.BatchResult{Index: i, Text: text, Result: speech}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := make([]schema.BatchResult, 0, len(results))
	for _, result := range results {
		if result != nil {
			batch = append(batch, *result)
		}
	}
	return batch, nil
}

// AudioFile returns the path of a generated audio file. Paths outside the
// audio directory are rejected.
func (s *Synthesizer) AudioFile(name string) (string, error) {
	path := filepath.Clean(name)
	if !filepath.IsAbs(path) {
		if abs := string(filepath.Separator) + path; s.within(abs) {
			path = abs
		} else {
			path = filepath.Join(s.audioDir, path)
		}
	}
	if !s.within(path) {
		return "", mia.ErrBadParameter.Withf("invalid file path %q", name)
	}
	if info, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", mia.ErrNotFound.Withf("audio file %q", name)
	} else if err != nil {
		return "", err
	} else if info.IsDir() {
		return "", mia.ErrBadParameter.Withf("invalid file path %q", name)
	}
	return path, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s *Synthesizer) writeAudio(data []byte, format string) (string, error) {
	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return "", err
	}
	ext, _, _ := strings.Cut(format, "_")
	f, err := os.CreateTemp(s.audioDir, "mia_*."+ext)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return "", errors.Join(err, os.Remove(f.Name()))
	}
	return f.Name(), nil
}

func (s *Synthesizer) within(path string) bool {
	rel, err := filepath.Rel(s.audioDir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "."
}
