/*
responder selects and personalizes a canned reply for a classified
message. Randomness is drawn from a seeded generator so that replies can be
reproduced.
*/
package responder

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Responder is safe for concurrent use
type Responder struct {
	templates     *Templates
	terms         map[string][]techTerm
	guides        GuideFinder
	seed          int64
	encouragement float64
	witty         float64

	mu  sync.Mutex
	rng *rand.Rand
}

// GuideFinder returns the best matching step-by-step guide for a query, or
// nil when none matches
type GuideFinder interface {
	FindGuide(query, lang string) *schema.Guide
}

// Request is the input to Respond
type Request struct {
	Intent   string
	Text     string
	Language string
	Entities schema.Entities
	Context  map[string]any
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultEncouragementRate = 0.3
	DefaultWittyRate         = 0.2
)

var (
	// Intents answered with a guide when one matches
	guideIntents = []string{"problem_solving", "how_to"}

	// Intents which never get a witty remark
	seriousIntents = []string{"security_support"}
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a responder from the embedded templates. Without WithSeed the
// generator is seeded from the clock.
func New(opts ...Opt) (*Responder, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	r := &Responder{
		templates:     templates,
		seed:          time.Now().UnixNano(),
		encouragement: DefaultEncouragementRate,
		witty:         DefaultWittyRate,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if r.terms, err = templates.compileTerms(); err != nil {
		return nil, err
	}
	r.rng = rand.New(rand.NewSource(r.seed))
	return r, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Respond returns the reply for a classified message
func (r *Responder) Respond(req Request) string {
	// Guides answer problem solving and how-to questions directly
	if r.guides != nil && slices.Contains(guideIntents, req.Intent) {
		if guide := r.guides.FindGuide(req.Text, req.Language); guide != nil {
			return r.Localize(explanationType, FormatGuide(guide), req.Language)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	response := r.choice(r.templates.Lookup(req.Intent, req.Language))
	response = r.personalize(response, req.Entities)
	response = r.decorate(response, req.Intent)
	return r.localize(req.Intent, response, req.Language)
}

// Template returns the localized sentence for a reply type, falling back to
// English
func (r *Responder) Template(kind, lang string) (string, bool) {
	slots, exists := r.templates.ResponseTypes[kind]
	if !exists {
		return "", false
	}
	if text, exists := slots[lang]; exists {
		return text, true
	}
	text, exists := slots[schema.LanguageEnglish]
	return text, exists
}

// Localize joins the sentence for a reply type to content and rewrites
// technical terms for the language. Explanations are separated from their
// content by a blank line.
func (r *Responder) Localize(kind, content, lang string) string {
	return r.localize(kind, content, lang)
}

// FormatGuide renders a guide as its description followed by numbered
// steps
func FormatGuide(guide *schema.Guide) string {
	var b strings.Builder
	b.WriteString(guide.Description)
	b.WriteString("\n\n")
	for i, step := range guide.Steps {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, step)
	}
	return b.String()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (r *Responder) localize(kind, content, lang string) string {
	text := content
	if template, exists := r.Template(kind, lang); exists && template != "" {
		switch {
		case content == "":
			text = template
		case kind == explanationType:
			text = template + "\n\n" + content
		default:
			text = template + " " + content
		}
	}
	return r.translate(text, lang)
}

// translate rewrites whole-word technical terms, leaving text which already
// reads as the replacement alone
func (r *Responder) translate(text, lang string) string {
	for _, term := range r.terms[lang] {
		var b strings.Builder
		last := 0
		for _, loc := range term.pattern.FindAllStringIndex(text, -1) {
			b.WriteString(text[last:loc[0]])
			if rest := text[loc[0]:]; len(rest) >= len(term.replacement) && strings.EqualFold(rest[:len(term.replacement)], term.replacement) {
				b.WriteString(text[loc[0]:loc[1]])
			} else {
				b.WriteString(term.replacement)
			}
			last = loc[1]
		}
		b.WriteString(text[last:])
		text = b.String()
	}
	return text
}

// personalize splices the first device and software into the reply and
// adds an opener for the first emotion
func (r *Responder) personalize(response string, entities schema.Entities) string {
	if device := entities.First(schema.EntityDevices); device != "" {
		response = strings.ReplaceAll(response, "your system", "your "+device)
	}
	if software := entities.First(schema.EntitySoftware); software != "" {
		response += fmt.Sprintf(" I see you're working with %s.", software)
	}
	if emotion := entities.First(schema.EntityEmotions); emotion != "" {
		for _, key := range []string{"negative", "positive"} {
			if opener, exists := r.templates.Emotions[key]; exists && slices.Contains(opener.Words, emotion) {
				response = opener.Prefix + response
				break
			}
		}
	}
	return response
}

// decorate appends an encouragement and a witty remark at random
func (r *Responder) decorate(response, intent string) string {
	if intent == "problem_solving" && r.rng.Float64() < r.encouragement {
		response += r.choice(r.templates.Encouragement)
	}
	if r.rng.Float64() < r.witty && !slices.Contains(seriousIntents, intent) {
		response += r.choice(r.templates.Witty)
	}
	return response
}

func (r *Responder) choice(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[r.rng.Intn(len(list))]
}
