package nlu

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"strings"

	// Packages
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

//go:embed rules/*.json
var rulesFS embed.FS

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Rules is the pattern data for one language. The rules file with an empty
// language holds the language-neutral tables.
type Rules struct {
	Language string              `json:"language"`
	Profile  *schema.Language    `json:"profile,omitempty"`
	Detect   []string            `json:"detect,omitempty"`
	Switch   []string            `json:"switch,omitempty"`
	Intents  []IntentRule        `json:"intents,omitempty"`
	Entities map[string][]string `json:"entities,omitempty"`
}

// IntentRule is an intent label and the patterns that indicate it
type IntentRule struct {
	Intent   string   `json:"intent"`
	Patterns []string `json:"patterns"`
}

// ruleset is the compiled form of the rules for one language, with the
// language-neutral intents and entities merged in
type ruleset struct {
	profile   schema.Language
	detect    []*regexp.Regexp
	switches  []*regexp.Regexp
	base      []compiledIntent
	preferred []compiledIntent
	entities  map[string][]*regexp.Regexp
}

type compiledIntent struct {
	intent   string
	patterns []*regexp.Regexp
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// LoadRules reads all embedded rules/*.json files and returns them keyed by
// language code
func LoadRules() (map[string]*Rules, error) {
	entries, err := rulesFS.ReadDir("rules")
	if err != nil {
		return nil, err
	}

	result := make(map[string]*Rules, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := rulesFS.ReadFile(path.Join("rules", entry.Name()))
		if err != nil {
			return nil, err
		}
		var rules Rules
		if err := json.Unmarshal(data, &rules); err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		if _, exists := result[rules.Language]; exists {
			return nil, fmt.Errorf("%s: duplicate rules for language %q", entry.Name(), rules.Language)
		}
		result[rules.Language] = &rules
	}

	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// compile builds the ruleset for a language from its own rules and the
// language-neutral rules
func compile(base, lang *Rules) (*ruleset, error) {
	var err error
	r := &ruleset{
		entities: make(map[string][]*regexp.Regexp, len(schema.EntityCategories)),
	}
	if lang.Profile != nil {
		r.profile = *lang.Profile
	}
	r.profile.Code = lang.Language

	if r.detect, err = compilePatterns(lang.Detect); err != nil {
		return nil, err
	}
	if r.switches, err = compilePatterns(lang.Switch); err != nil {
		return nil, err
	}
	if r.base, err = compileIntents(base.Intents); err != nil {
		return nil, err
	}
	if r.preferred, err = compileIntents(lang.Intents); err != nil {
		return nil, err
	}

	// Entities are additive: neutral patterns first, then the language's own
	for _, category := range schema.EntityCategories {
		for _, source := range []*Rules{base, lang} {
			patterns, err := compilePatterns(source.Entities[category])
			if err != nil {
				return nil, err
			}
			r.entities[category] = append(r.entities[category], patterns...)
		}
	}
	for _, source := range []*Rules{base, lang} {
		for category := range source.Entities {
			if _, exists := r.entities[category]; !exists {
				return nil, fmt.Errorf("unknown entity category %q", category)
			}
		}
	}

	return r, nil
}

func compileIntents(rules []IntentRule) ([]compiledIntent, error) {
	result := make([]compiledIntent, 0, len(rules))
	for _, rule := range rules {
		if rule.Intent == "" {
			return nil, fmt.Errorf("intent rule without a label")
		}
		patterns, err := compilePatterns(rule.Patterns)
		if err != nil {
			return nil, fmt.Errorf("intent %q: %w", rule.Intent, err)
		}
		result = append(result, compiledIntent{intent: rule.Intent, patterns: patterns})
	}
	return result, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	result := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, err
		}
		result = append(result, re)
	}
	return result, nil
}
