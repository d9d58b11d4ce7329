/*
nlu detects the language of a message, classifies its intent and extracts
keyword entities, using regular expression tables embedded in the package.
Classification is deterministic.
*/
package nlu

import (
	"regexp"
	"slices"
	"strings"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	cases "golang.org/x/text/cases"
	language "golang.org/x/text/language"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Engine holds the compiled rulesets, one per supported language. It is
// safe for concurrent use.
type Engine struct {
	def   string
	codes []string
	rules map[string]*ruleset
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Confidence of the default intent
	defaultConfidence = 0.5

	// Boost applied when a language-specific intent matches
	preferredBoost = 0.2

	// Scores at or below this are treated as no match
	threshold = 0.1
)

var (
	intentCategories = map[string]string{
		"greeting":         schema.CategorySocial,
		"goodbye":          schema.CategorySocial,
		"gratitude":        schema.CategorySocial,
		"problem_solving":  schema.CategoryTechnical,
		"software_support": schema.CategoryTechnical,
		"hardware_support": schema.CategoryTechnical,
		"network_support":  schema.CategoryTechnical,
		"security_support": schema.CategoryTechnical,
		"account_support":  schema.CategoryTechnical,
		"how_to":           schema.CategoryEducational,
		"confirmation":     schema.CategoryFeedback,
		"denial":           schema.CategoryFeedback,
	}
	urgentKeywords = []string{"urgent", "emergency", "critical", "asap", "immediately", "deadline"}
	highKeywords   = []string{"important", "soon", "quickly", "meeting", "presentation"}
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New compiles the embedded rules. The default language is English unless
// set with WithDefaultLanguage.
func New(opts ...Opt) (*Engine, error) {
	e := &Engine{
		def:   schema.LanguageEnglish,
		rules: make(map[string]*ruleset),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	all, err := LoadRules()
	if err != nil {
		return nil, err
	}
	base, exists := all[""]
	if !exists {
		return nil, mia.ErrInternalServerError.With("missing language-neutral rules")
	}
	for code, rules := range all {
		if code == "" {
			continue
		}
		r, err := compile(base, rules)
		if err != nil {
			return nil, mia.ErrInternalServerError.Withf("rules for %q: %v", code, err)
		}
		e.rules[code] = r
		e.codes = append(e.codes, code)
	}
	slices.Sort(e.codes)

	if _, exists := e.rules[e.def]; !exists {
		return nil, mia.ErrBadParameter.Withf("unsupported default language %q", e.def)
	}

	return e, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// DefaultLanguage returns the code of the default language
func (e *Engine) DefaultLanguage() string {
	return e.def
}

// Languages returns the supported languages, ordered by code
func (e *Engine) Languages() []schema.Language {
	result := make([]schema.Language, 0, len(e.codes))
	for _, code := range e.codes {
		result = append(result, e.rules[code].profile)
	}
	return result
}

// Profile returns the profile for a supported language, or nil
func (e *Engine) Profile(code string) *schema.Language {
	if r, exists := e.rules[code]; exists {
		profile := r.profile
		return &profile
	}
	return nil
}

// Language resolves a language code, tag ("es-MX") or name ("Spanish") to
// a supported language code
func (e *Engine) Language(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", mia.ErrBadParameter.With("language is required")
	}
	for _, code := range e.codes {
		profile := e.rules[code].profile
		if strings.EqualFold(value, profile.Name) || strings.EqualFold(value, profile.Native) {
			return code, nil
		}
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", mia.ErrBadParameter.Withf("invalid language %q", value)
	}
	base, _ := tag.Base()
	if _, exists := e.rules[base.String()]; !exists {
		return "", mia.ErrNotFound.Withf("unsupported language %q", value)
	}
	return base.String(), nil
}

// Detect returns the language whose detection patterns match text most
// often. Ties and texts with no matches return the default language.
func (e *Engine) Detect(text string) string {
	text = lower(text)
	best, bestScore, tie := e.def, 0, false
	for _, code := range e.codes {
		score := 0
		for _, re := range e.rules[code].detect {
			score += len(re.FindAllStringIndex(text, -1))
		}
		switch {
		case score > bestScore:
			best, bestScore, tie = code, score, false
		case score == bestScore && score > 0:
			tie = true
		}
	}
	if bestScore == 0 || tie {
		return e.def
	}
	return best
}

// Classify returns the intent of text. Each intent scores the number of its
// patterns which match; the first highest scoring intent wins with
// confidence score/3. When the language has preferred intents, the last
// one which matches replaces the result and boosts the confidence once.
func (e *Engine) Classify(text, lang string) schema.Intent {
	text = strings.TrimSpace(lower(text))
	result := schema.Intent{
		Intent:     schema.DefaultIntent,
		Confidence: defaultConfidence,
		Urgency:    Urgency(text),
	}
	if text == "" {
		result.Category = Category(result.Intent)
		return result
	}

	r := e.ruleset(lang)
	best, bestScore := "", 0
	for _, rule := range r.base {
		score := 0
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				score++
			}
		}
		if score == 0 {
			continue
		}
		if result.Scores == nil {
			result.Scores = make(map[string]int)
		}
		result.Scores[rule.intent] = score
		if score > bestScore {
			best, bestScore = rule.intent, score
		}
	}
	if confidence := min(float64(bestScore)/3.0, 1.0); confidence > threshold {
		result.Intent = best
		result.Confidence = confidence
	}

	// Language-specific intents override the neutral result
	preferred := ""
	for _, rule := range r.preferred {
		if e.matchesAny(rule.patterns, text) {
			preferred = rule.intent
		}
	}
	if preferred != "" {
		result.Intent = preferred
		result.Confidence = min(result.Confidence+preferredBoost, 1.0)
	}

	result.Category = Category(result.Intent)
	return result
}

// Extract returns the entities mentioned in text. Every category is present
// and values are unique, in order of first appearance.
func (e *Engine) Extract(text, lang string) schema.Entities {
	text = lower(text)
	result := schema.NewEntities()
	r := e.ruleset(lang)
	for _, category := range schema.EntityCategories {
		for _, re := range r.entities[category] {
			for _, match := range re.FindAllStringSubmatch(text, -1) {
				if len(match) > 1 {
					result.Add(category, match[1])
				} else {
					result.Add(category, match[0])
				}
			}
		}
	}
	return result
}

// SwitchRequest returns the language requested by text when it asks for a
// language other than current. Requests for English take precedence.
func (e *Engine) SwitchRequest(text, current string) (string, bool) {
	text = lower(text)
	requested := false
	for _, code := range e.codes {
		if code == current {
			continue
		}
		if e.matchesAny(e.rules[code].switches, text) {
			requested = true
			break
		}
	}
	if !requested {
		return "", false
	}
	for _, code := range e.switchOrder() {
		if e.matchesAny(e.rules[code].switches, text) {
			return code, true
		}
	}
	return e.def, true
}

// Category returns the category of an intent
func Category(intent string) string {
	if category, exists := intentCategories[intent]; exists {
		return category
	}
	return schema.CategoryGeneral
}

// Urgency returns the urgency of text from keywords it contains
func Urgency(text string) string {
	text = lower(text)
	for _, keyword := range urgentKeywords {
		if strings.Contains(text, keyword) {
			return schema.UrgencyUrgent
		}
	}
	for _, keyword := range highKeywords {
		if strings.Contains(text, keyword) {
			return schema.UrgencyHigh
		}
	}
	return schema.UrgencyNormal
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// ruleset returns the rules for a language, or for the default language
// when the language is not supported
func (e *Engine) ruleset(lang string) *ruleset {
	if r, exists := e.rules[lang]; exists {
		return r
	}
	return e.rules[e.def]
}

// switchOrder returns language codes with English first
func (e *Engine) switchOrder() []string {
	result := make([]string, 0, len(e.codes))
	if _, exists := e.rules[schema.LanguageEnglish]; exists {
		result = append(result, schema.LanguageEnglish)
	}
	for _, code := range e.codes {
		if code != schema.LanguageEnglish {
			result = append(result, code)
		}
	}
	return result
}

func (e *Engine) matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func lower(text string) string {
	return cases.Lower(language.Und).String(text)
}
