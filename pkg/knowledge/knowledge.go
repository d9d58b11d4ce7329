/*
knowledge holds the troubleshooting solutions, quick fixes, diagnostic
questions and localized guides used to answer technical questions.
*/
package knowledge

import (
	"cmp"
	_ "embed"
	"slices"
	"strings"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	cases "golang.org/x/text/cases"
	language "golang.org/x/text/language"
	yaml "gopkg.in/yaml.v3"
)

//go:embed solutions.yaml
var solutionsYAML []byte

//go:embed guides.yaml
var guidesYAML []byte

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Base is immutable after creation and safe for concurrent use
type Base struct {
	solutions  []schema.Solution
	index      map[string]int
	issues     map[string]schema.CommonIssue
	quickFixes map[string]schema.QuickFix
	questions  map[string][]string
	guides     []guideSet
}

type guideSet struct {
	Key       string                  `yaml:"key"`
	Languages map[string]schema.Guide `yaml:"languages"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	maxResults = 5
)

var lower = cases.Lower(language.Und)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns the embedded knowledge base
func New() (*Base, error) {
	var data struct {
		Solutions  []schema.Solution             `yaml:"solutions"`
		Issues     map[string]schema.CommonIssue `yaml:"common_issues"`
		QuickFixes map[string]schema.QuickFix    `yaml:"quick_fixes"`
		Questions  map[string][]string           `yaml:"diagnostic_questions"`
	}
	if err := yaml.Unmarshal(solutionsYAML, &data); err != nil {
		return nil, err
	}

	var guides struct {
		Guides []guideSet `yaml:"guides"`
	}
	if err := yaml.Unmarshal(guidesYAML, &guides); err != nil {
		return nil, err
	}

	kb := &Base{
		solutions:  data.Solutions,
		index:      make(map[string]int, len(data.Solutions)),
		issues:     data.Issues,
		quickFixes: make(map[string]schema.QuickFix, len(data.QuickFixes)),
		questions:  data.Questions,
		guides:     guides.Guides,
	}
	for i, solution := range kb.solutions {
		if _, exists := kb.index[solution.ID]; exists {
			return nil, mia.ErrConflict.Withf("duplicate solution %q", solution.ID)
		}
		kb.index[solution.ID] = i
	}
	for key, fix := range data.QuickFixes {
		fix.Issue = key
		kb.quickFixes[key] = fix
	}

	// Return success
	return kb, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - SOLUTIONS

// Search ranks solutions against a query. Each keyword found in the query
// scores 2, a query word found in the title scores 3 and a query word found
// in the description scores 1. When category is not empty, only solutions
// in that category are returned. At most five solutions are returned,
// highest score first.
func (kb *Base) Search(query, category string) []schema.Solution {
	query = lower.String(query)
	words := strings.Fields(query)

	result := make([]schema.Solution, 0, maxResults)
	for _, solution := range kb.solutions {
		if category != "" && solution.Category != category {
			continue
		}
		score := 0
		for _, keyword := range solution.Keywords {
			if strings.Contains(query, lower.String(keyword)) {
				score += 2
			}
		}
		if containsAnyWord(lower.String(solution.Title), words) {
			score += 3
		}
		if containsAnyWord(lower.String(solution.Description), words) {
			score += 1
		}
		if score > 0 {
			solution.RelevanceScore = score
			result = append(result, solution)
		}
	}

	slices.SortStableFunc(result, func(a, b schema.Solution) int {
		return cmp.Compare(b.RelevanceScore, a.RelevanceScore)
	})
	if len(result) > maxResults {
		result = result[:maxResults]
	}
	return result
}

// SearchKeywords returns the solutions which have any of the keywords,
// ordered by the number of keywords matched
func (kb *Base) SearchKeywords(keywords []string) []schema.Solution {
	result := make([]schema.Solution, 0, len(kb.solutions))
	for _, solution := range kb.solutions {
		score := 0
		for _, keyword := range keywords {
			if slices.ContainsFunc(solution.Keywords, func(k string) bool {
				return strings.EqualFold(k, keyword)
			}) {
				score++
			}
		}
		if score > 0 {
			solution.RelevanceScore = score
			result = append(result, solution)
		}
	}
	slices.SortStableFunc(result, func(a, b schema.Solution) int {
		return cmp.Compare(b.RelevanceScore, a.RelevanceScore)
	})
	return result
}

// Solution returns a solution by identifier
func (kb *Base) Solution(id string) (*schema.Solution, error) {
	i, exists := kb.index[id]
	if !exists {
		return nil, mia.ErrNotFound.Withf("solution %q", id)
	}
	solution := kb.solutions[i]
	return &solution, nil
}

// Related returns the solutions a solution refers to which exist in the
// knowledge base
func (kb *Base) Related(id string) []schema.SolutionRef {
	result := []schema.SolutionRef{}
	solution, err := kb.Solution(id)
	if err != nil {
		return result
	}
	for _, key := range solution.RelatedIssues {
		if related, err := kb.Solution(key); err == nil {
			result = append(result, schema.SolutionRef{
				ID:         related.ID,
				Title:      related.Title,
				Category:   related.Category,
				Difficulty: related.Difficulty,
			})
		}
	}
	return result
}

// ByCategory returns the solutions in a category
func (kb *Base) ByCategory(category string) ([]schema.Solution, error) {
	var result []schema.Solution
	for _, solution := range kb.solutions {
		if solution.Category == category {
			result = append(result, solution)
		}
	}
	if len(result) == 0 {
		return nil, mia.ErrNotFound.Withf("no solutions found for category %q", category)
	}
	return result, nil
}

// Categories summarises the categories, in the order they first appear
func (kb *Base) Categories() []schema.Category {
	var result []schema.Category
	for _, solution := range kb.solutions {
		i := slices.IndexFunc(result, func(c schema.Category) bool {
			return c.Name == solution.Category
		})
		if i < 0 {
			result = append(result, schema.Category{Name: solution.Category})
			i = len(result) - 1
		}
		result[i].Count++
		if !slices.Contains(result[i].Difficulties, solution.Difficulty) {
			result[i].Difficulties = append(result[i].Difficulties, solution.Difficulty)
		}
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - QUICK FIXES AND DIAGNOSTICS

// QuickFix returns the quick fix for an issue type, ignoring case
func (kb *Base) QuickFix(issue string) (*schema.QuickFix, error) {
	issue = lower.String(strings.TrimSpace(issue))
	if issue == "" {
		return nil, mia.ErrBadParameter.With("issue type is required")
	}
	fix, exists := kb.quickFixes[issue]
	if !exists {
		return nil, mia.ErrNotFound.Withf("quick fix not found for issue type %q", issue)
	}
	return &fix, nil
}

// DiagnosticQuestions returns the questions which help narrow down a
// problem in a category
func (kb *Base) DiagnosticQuestions(category string) ([]string, error) {
	questions, exists := kb.questions[category]
	if !exists || len(questions) == 0 {
		return nil, mia.ErrNotFound.Withf("no diagnostic questions found for category %q", category)
	}
	return slices.Clone(questions), nil
}

// CommonIssue returns the symptoms, causes and checks for a common issue
func (kb *Base) CommonIssue(name string) (*schema.CommonIssue, error) {
	issue, exists := kb.issues[name]
	if !exists {
		return nil, mia.ErrNotFound.Withf("common issue %q", name)
	}
	return &issue, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - GUIDES

// Guides ranks the localized guides against a query. Each keyword found in
// the query scores 3, and each query word scores 2 when found in the title
// and 1 when found in the description. Only guides in the language are
// considered.
func (kb *Base) Guides(query, lang string) []schema.Guide {
	query = lower.String(query)
	words := strings.Fields(query)

	var result []schema.Guide
	for _, set := range kb.guides {
		guide, exists := set.Languages[lang]
		if !exists {
			continue
		}
		title, description := lower.String(guide.Title), lower.String(guide.Description)
		score := 0
		for _, keyword := range guide.Keywords {
			if strings.Contains(query, lower.String(keyword)) {
				score += 3
			}
		}
		for _, word := range words {
			if strings.Contains(title, word) {
				score += 2
			}
			if strings.Contains(description, word) {
				score += 1
			}
		}
		if score > 0 {
			guide.Key, guide.Language, guide.Score = set.Key, lang, score
			result = append(result, guide)
		}
	}

	slices.SortStableFunc(result, func(a, b schema.Guide) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(result) > maxResults {
		result = result[:maxResults]
	}
	return result
}

// FindGuide returns the best matching guide, or nil
func (kb *Base) FindGuide(query, lang string) *schema.Guide {
	if guides := kb.Guides(query, lang); len(guides) > 0 {
		return &guides[0]
	}
	return nil
}

// Guide returns a guide by key in a language, falling back to English
func (kb *Base) Guide(key, lang string) (*schema.Guide, error) {
	for _, set := range kb.guides {
		if set.Key != key {
			continue
		}
		guide, exists := set.Languages[lang]
		if !exists {
			lang = schema.LanguageEnglish
			if guide, exists = set.Languages[lang]; !exists {
				break
			}
		}
		guide.Key, guide.Language = key, lang
		return &guide, nil
	}
	return nil, mia.ErrNotFound.Withf("guide %q", key)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func containsAnyWord(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
