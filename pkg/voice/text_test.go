package voice_test

import (
	"strings"
	"testing"

	// Packages
	voice "github.com/mutablelogic/go-mia/pkg/voice"
	assert "github.com/stretchr/testify/assert"
)

func testCatalog(t *testing.T) *voice.Catalog {
	t.Helper()
	catalog, err := voice.LoadCatalog()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return catalog
}

func Test_text_001(t *testing.T) {
	catalog := testCatalog(t)

	tests := []struct {
		text, lang, want string
	}{
		{"Wait... what??", "en", `Wait. <break time="0.3s"/> what?`},
		{"Done. Next!! Go", "en", `Done. <break time="0.3s"/> Next! <break time="0.3s"/> Go`},
		{"Check the WiFi and USB", "en", "Check the Wi-Fi and U-S-B"},
		{"Use the API in JavaScript", "en", "Use the A-P-I in Java Script"},
		{"Revisa el email y el router", "es", "Revisa el correo electrónico y el enrutador"},
		{"Check the email and router", "en", "Check the email and router"},
		{"Check the WiFi", "fr", "Check the WiFi"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Optimize(tt.text, tt.lang))
		})
	}
}

func Test_text_002(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0.8, voice.EstimateDuration("Hello there"))
	assert.Equal(0.0, voice.EstimateDuration(""))
	assert.Equal(0.8, voice.EstimateDuration(`Hello. <break time="0.3s"/> there`))
	assert.Equal(60.0, voice.EstimateDuration(strings.Repeat("word ", 150)))
}

func Test_text_003(t *testing.T) {
	assert := assert.New(t)

	timing := voice.LipSync(`Hello. <break time="0.3s"/> wonderful world`, 1.2)
	assert.Equal(3, timing.WordCount)
	assert.Equal(1.2, timing.TotalDuration)
	assert.Equal(0.4, timing.AverageDuration)
	if assert.Len(timing.Words, 3) {
		assert.Equal("Hello.", timing.Words[0].Word)
		assert.Equal(0.0, timing.Words[0].Start)
		assert.Equal(1.2, timing.Words[2].End)

		// Longer words take longer
		assert.Greater(timing.Words[1].Duration, timing.Words[2].Duration)

		// Words follow each other
		for i := 1; i < len(timing.Words); i++ {
			assert.Equal(timing.Words[i-1].End, timing.Words[i].Start)
		}
	}

	empty := voice.LipSync("", 0)
	assert.Empty(empty.Words)
	assert.Equal(0, empty.WordCount)
}

func Test_text_004(t *testing.T) {
	assert := assert.New(t)
	catalog := testCatalog(t)

	tests := []struct {
		tone, lang, key string
	}{
		{"professional", "en", "professional_female_en"},
		{"clear", "es", "professional_female_es"},
		{"confirming", "en", "professional_female_en"},
		{"warm", "en", "warm_friendly_en"},
		{"empathetic", "es", "warm_friendly_es"},
		{"uncertain", "en", "warm_friendly_en"},
		{"focused", "en", "confident_expert_en"},
		{"confident", "es", "confident_expert_es"},
		{"excited", "en", "encouraging_supportive_en"},
		{"sarcastic", "en", "professional_female_en"},
		{"warm", "fr", "warm_friendly_en"},
		{"", "", "professional_female_en"},
	}
	for _, tt := range tests {
		assert.Equal(tt.key, catalog.Profile(tt.tone, tt.lang).Key, tt.tone+"/"+tt.lang)
	}

	profile := catalog.Profile("professional", "en")
	assert.Equal("EXAVITQu4vr4xnSDxMaL", profile.VoiceID)
	assert.Equal(0.75, profile.Stability)
	assert.True(profile.SpeakerBoost)

	assert.Len(catalog.Voices, 8)
	assert.Len(catalog.PresetMap(), 6)
}
