package voice

import (
	_ "embed"
	"maps"
	"slices"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	yaml "gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Catalog is the set of voices and the tones which select them
type Catalog struct {
	Voices         []schema.VoiceProfile         `yaml:"voices"`
	Tones          map[string]string             `yaml:"tones"`
	Presets        map[string]schema.VoicePreset `yaml:"presets"`
	Pronunciations map[string][][2]string        `yaml:"pronunciations"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultVoice  = "professional_female_en"
	defaultFamily = "professional_female"
	commonTerms   = "common"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// LoadCatalog parses the embedded catalog
func LoadCatalog() (*Catalog, error) {
	c := new(Catalog)
	if err := yaml.Unmarshal(catalogYAML, c); err != nil {
		return nil, err
	}
	if _, err := c.Voice(DefaultVoice); err != nil {
		return nil, err
	}
	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Voice returns a voice by key
func (c *Catalog) Voice(key string) (*schema.VoiceProfile, error) {
	i := slices.IndexFunc(c.Voices, func(v schema.VoiceProfile) bool {
		return v.Key == key
	})
	if i < 0 {
		return nil, mia.ErrBadParameter.Withf("invalid voice key %q, available voices: %v", key, c.Keys())
	}
	voice := c.Voices[i]
	return &voice, nil
}

// Keys returns the voice keys in listing order
func (c *Catalog) Keys() []string {
	result := make([]string, 0, len(c.Voices))
	for _, voice := range c.Voices {
		result = append(result, voice.Key)
	}
	return result
}

// Profile returns the voice for a tone and language. Unknown tones use the
// professional voice, and languages without a voice use English.
func (c *Catalog) Profile(tone, lang string) schema.VoiceProfile {
	family, exists := c.Tones[tone]
	if !exists {
		family = defaultFamily
	}
	for _, key := range []string{family + "_" + lang, family + "_" + schema.LanguageEnglish, DefaultVoice} {
		if voice, err := c.Voice(key); err == nil {
			return *voice
		}
	}
	return c.Voices[0]
}

// PresetMap returns a copy of the presets
func (c *Catalog) PresetMap() map[string]schema.VoicePreset {
	return maps.Clone(c.Presets)
}

// terms returns the spoken forms for a language
func (c *Catalog) terms(lang string) [][2]string {
	switch lang {
	case schema.LanguageEnglish, schema.LanguageSpanish:
		return append(slices.Clone(c.Pronunciations[commonTerms]), c.Pronunciations[lang]...)
	default:
		return nil
	}
}
