/*
topic recognises messages about the XETA product line and answers them with
pre-authored replies, bypassing intent classification.
*/
package topic

import (
	_ "embed"
	"strings"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	cases "golang.org/x/text/cases"
	language "golang.org/x/text/language"
	yaml "gopkg.in/yaml.v3"
)

//go:embed topics.yaml
var topicsYAML []byte

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Matcher is immutable after creation and safe for concurrent use
type Matcher struct {
	Triggers []string `yaml:"triggers"`
	Topics   []Topic  `yaml:"topics"`
}

// Topic is one group of replies, selected when any keyword appears in the
// message. A topic without keywords matches any triggered message.
type Topic struct {
	Intent    string           `yaml:"intent"`
	Keywords  []string         `yaml:"keywords"`
	Emotion   string           `yaml:"emotion"`
	Animation string           `yaml:"animation"`
	VoiceTone string           `yaml:"voice_tone"`
	Replies   map[string]reply `yaml:"replies"`
}

type reply struct {
	Response string `yaml:"response"`
	FollowUp string `yaml:"follow_up"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var lower = cases.Lower(language.Und)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a matcher for the embedded topics
func New() (*Matcher, error) {
	m := new(Matcher)
	if err := yaml.Unmarshal(topicsYAML, m); err != nil {
		return nil, err
	}
	for _, topic := range m.Topics {
		if _, exists := topic.Replies[schema.LanguageEnglish]; !exists {
			return nil, mia.ErrInternalServerError.Withf("topic %q has no english reply", topic.Intent)
		}
	}
	return m, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Match returns the reply for a message, or false when the message is not
// about a special topic. Spanish replies are returned for "es", English for
// any other language.
func (m *Matcher) Match(text, lang string) (*schema.TopicReply, bool) {
	text = lower.String(text)
	if !containsAny(text, m.Triggers) {
		return nil, false
	}
	for _, topic := range m.Topics {
		if len(topic.Keywords) == 0 || containsAny(text, topic.Keywords) {
			return topic.reply(lang), true
		}
	}
	return nil, false
}

// Intents returns the intent labels of all topics, in match order
func (m *Matcher) Intents() []string {
	result := make([]string, 0, len(m.Topics))
	for _, topic := range m.Topics {
		result = append(result, topic.Intent)
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t Topic) reply(lang string) *schema.TopicReply {
	r, exists := t.Replies[lang]
	if !exists || lang != schema.LanguageSpanish {
		r = t.Replies[schema.LanguageEnglish]
	}
	return &schema.TopicReply{
		Response:  r.Response,
		Intent:    t.Intent,
		Emotion:   t.Emotion,
		Animation: t.Animation,
		VoiceTone: t.VoiceTone,
		FollowUp:  r.FollowUp,
	}
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
