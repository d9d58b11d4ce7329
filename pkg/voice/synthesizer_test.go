package voice_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	voice "github.com/mutablelogic/go-mia/pkg/voice"
	assert "github.com/stretchr/testify/assert"
)

// speaker records the voices it is asked to speak with
type speaker struct {
	sync.Mutex
	voices []string
	err    error
}

func (s *speaker) Speak(_ context.Context, text string, profile schema.VoiceProfile, format string) ([]byte, error) {
	s.Lock()
	defer s.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.voices = append(s.voices, profile.Key)
	return []byte("audio:" + text), nil
}

func testSynthesizer(t *testing.T, opts ...voice.Opt) *voice.Synthesizer {
	t.Helper()
	s, err := voice.New(opts...)
	if err != nil {
		t.Fatalf("failed to create synthesizer: %v", err)
	}
	return s
}

func Test_synthesizer_001(t *testing.T) {
	assert := assert.New(t)
	s := testSynthesizer(t)
	assert.True(s.Mock())

	speech, err := s.Synthesize(context.TODO(), schema.SpeechRequest{Text: " Hello there ", VoiceTone: "warm"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.True(speech.Success)
	assert.True(speech.Mock)
	assert.Equal("Hello there", speech.Text)
	assert.Equal("Hello there", speech.OptimizedText)
	assert.Equal("Mock Voice", speech.VoiceProfile)
	assert.Equal("warm", speech.VoiceTone)
	assert.Equal(1024, speech.AudioSize)
	assert.Equal("mock_audio_data_base64", speech.AudioBase64)
	assert.Equal(0.8, speech.DurationEstimate)

	_, err = s.Synthesize(context.TODO(), schema.SpeechRequest{Text: "   "})
	assert.ErrorIs(err, mia.ErrBadParameter)
}

func Test_synthesizer_002(t *testing.T) {
	assert := assert.New(t)
	fake := new(speaker)
	s := testSynthesizer(t, voice.WithSpeaker(fake))
	assert.False(s.Mock())

	speech, err := s.SynthesizeWithTiming(context.TODO(), schema.SpeechRequest{Text: "Check the WiFi. Then restart", VoiceTone: "excited", Language: "es"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.True(speech.Success)
	assert.False(speech.Mock)
	assert.Equal(`Check the Wi-Fi. <break time="0.3s"/> Then restart`, speech.OptimizedText)
	assert.Equal("Mía Alentadora (Español)", speech.VoiceProfile)
	assert.Equal("ErXwobaYiN019PkySvjV", speech.VoiceID)
	assert.Equal("mp3_44100_128", speech.AudioFormat)
	assert.NotEmpty(speech.AudioBase64)
	assert.Equal(2.0, speech.DurationEstimate)
	if assert.NotNil(speech.LipSync) {
		assert.Equal(5, speech.LipSync.WordCount)
		assert.Equal(2.0, speech.LipSync.Words[4].End)
	}
	assert.Equal([]string{"encouraging_supportive_es"}, fake.voices)
}

func Test_synthesizer_003(t *testing.T) {
	assert := assert.New(t)
	fake := &speaker{err: errors.New("quota exceeded")}
	s := testSynthesizer(t, voice.WithSpeaker(fake))

	speech, err := s.Synthesize(context.TODO(), schema.SpeechRequest{Text: "Hello"})
	assert.ErrorIs(err, mia.ErrServiceUnavailable)
	if assert.NotNil(speech) {
		assert.False(speech.Success)
		assert.Equal("quota exceeded", speech.Error)
	}

	test := s.TestConnection(context.TODO())
	assert.False(test.Success)
	assert.False(test.Mock)
	assert.Contains(test.Message, "Connection test failed")
}

func Test_synthesizer_004(t *testing.T) {
	assert := assert.New(t)

	test := testSynthesizer(t).TestConnection(context.TODO())
	assert.Equal(schema.ConnectionTest{Message: "ElevenLabs client not initialized", Mock: true}, test)

	test = testSynthesizer(t, voice.WithSpeaker(new(speaker))).TestConnection(context.TODO())
	assert.True(test.Success)
	assert.Equal("ElevenLabs connection successful", test.Message)
	assert.Greater(test.AudioSize, 0)
}

func Test_synthesizer_005(t *testing.T) {
	assert := assert.New(t)
	fake := new(speaker)
	s := testSynthesizer(t, voice.WithSpeaker(fake))

	assert.Equal(voice.DefaultVoice, s.Voice())
	assert.ErrorIs(s.SetVoice(""), mia.ErrBadParameter)
	assert.ErrorIs(s.SetVoice("robot_voice"), mia.ErrBadParameter)
	assert.NoError(s.SetVoice("warm_friendly_es"))
	assert.Equal("warm_friendly_es", s.Voice())

	// An empty tone uses the current voice
	_, err := s.Synthesize(context.TODO(), schema.SpeechRequest{Text: "Hola"})
	assert.NoError(err)
	_, err = s.Synthesize(context.TODO(), schema.SpeechRequest{Text: "Hello", VoiceTone: "focused"})
	assert.NoError(err)
	assert.Equal([]string{"warm_friendly_es", "confident_expert_en"}, fake.voices)

	assert.Len(s.Voices(), 8)
	assert.Equal("warm", s.Presets()["greeting"].VoiceTone)
}

func Test_synthesizer_006(t *testing.T) {
	assert := assert.New(t)
	s := testSynthesizer(t, voice.WithBatchLimit(2))

	results, err := s.Batch(context.TODO(), schema.BatchRequest{Texts: []string{"One", " ", "Two three", "", "Four"}})
	if !assert.NoError(err) {
		t.FailNow()
	}
	if assert.Len(results, 3) {
		assert.Equal(0, results[0].Index)
		assert.Equal(2, results[1].Index)
		assert.Equal("Two three", results[1].Text)
		assert.Equal(4, results[2].Index)
		assert.Equal("professional", results[2].Result.VoiceTone)
	}

	_, err = s.Batch(context.TODO(), schema.BatchRequest{})
	assert.ErrorIs(err, mia.ErrBadParameter)

	// Failures are reported per text
	failing := testSynthesizer(t, voice.WithSpeaker(&speaker{err: errors.New("down")}))
	results, err = failing.Batch(context.TODO(), schema.BatchRequest{Texts: []string{"One", "Two"}})
	assert.NoError(err)
	if assert.Len(results, 2) {
		assert.False(results[0].Result.Success)
		assert.Equal("down", results[1].Result.Error)
	}
}

func Test_synthesizer_007(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	s := testSynthesizer(t, voice.WithSpeaker(new(speaker)), voice.WithAudioDir(dir))

	returnAudio := false
	speech, err := s.Synthesize(context.TODO(), schema.SpeechRequest{Text: "Hello", ReturnAudio: &returnAudio})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Empty(speech.AudioBase64)
	assert.Equal(".mp3", filepath.Ext(speech.AudioFile))

	data, err := os.ReadFile(speech.AudioFile)
	assert.NoError(err)
	assert.Equal("audio:Hello", string(data))

	// Absolute, relative and rooted-without-slash paths all resolve
	path, err := s.AudioFile(speech.AudioFile)
	assert.NoError(err)
	assert.Equal(speech.AudioFile, path)
	path, err = s.AudioFile(filepath.Base(speech.AudioFile))
	assert.NoError(err)
	assert.Equal(speech.AudioFile, path)
	path, err = s.AudioFile(speech.AudioFile[1:])
	assert.NoError(err)
	assert.Equal(speech.AudioFile, path)

	_, err = s.AudioFile("/etc/passwd")
	assert.ErrorIs(err, mia.ErrBadParameter)
	_, err = s.AudioFile("../../etc/passwd")
	assert.ErrorIs(err, mia.ErrBadParameter)
	_, err = s.AudioFile("missing.mp3")
	assert.ErrorIs(err, mia.ErrNotFound)
}
