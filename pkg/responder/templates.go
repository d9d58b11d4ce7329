package responder

import (
	_ "embed"
	"regexp"
	"slices"

	// Packages
	yaml "gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Templates is the text the responder draws replies from
type Templates struct {
	Replies       map[string]map[string][]string `yaml:"templates"`
	ResponseTypes map[string]map[string]string   `yaml:"response_types"`
	Emotions      map[string]EmotionOpener       `yaml:"emotions"`
	Encouragement []string                       `yaml:"encouragements"`
	Witty         []string                       `yaml:"witty"`
	TechTerms     map[string]map[string]string   `yaml:"tech_terms"`
}

// EmotionOpener is prepended to a reply when the first emotion mentioned is
// one of its words
type EmotionOpener struct {
	Words  []string `yaml:"words"`
	Prefix string   `yaml:"prefix"`
}

type techTerm struct {
	pattern     *regexp.Regexp
	replacement string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultSlot     = "default"
	fallbackIntent  = "general_inquiry"
	explanationType = "explanation"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// LoadTemplates parses the embedded templates
func LoadTemplates() (*Templates, error) {
	var t Templates
	if err := yaml.Unmarshal(templatesYAML, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Lookup returns the reply templates for an intent and language, falling
// back to the language-neutral list and then to the general inquiry list
func (t *Templates) Lookup(intent, lang string) []string {
	for _, key := range []string{intent, fallbackIntent} {
		if slots, exists := t.Replies[key]; exists {
			if list := slots[lang]; len(list) > 0 {
				return list
			}
			if list := slots[defaultSlot]; len(list) > 0 {
				return list
			}
		}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// compileTerms returns the tech term rewrites for each language, in a
// stable order
func (t *Templates) compileTerms() (map[string][]techTerm, error) {
	result := make(map[string][]techTerm, len(t.TechTerms))
	for lang, terms := range t.TechTerms {
		keys := make([]string, 0, len(terms))
		for term, replacement := range terms {
			if term != replacement {
				keys = append(keys, term)
			}
		}
		slices.Sort(keys)
		for _, term := range keys {
			re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
			if err != nil {
				return nil, err
			}
			result[lang] = append(result[lang], techTerm{pattern: re, replacement: terms[term]})
		}
	}
	return result, nil
}
