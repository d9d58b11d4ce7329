package manager

import (
	"strings"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Search returns the solutions which best match a query
func (m *Manager) Search(req schema.SearchRequest) (*schema.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, mia.ErrBadParameter.With("query is required")
	}
	solutions := m.knowledge.Search(query, req.Category)
	return &schema.SearchResponse{
		Solutions: solutions,
		Query:     query,
		Category:  req.Category,
		Count:     len(solutions),
	}, nil
}

// SearchKeywords returns the solutions ranked by the number of keywords
// they carry
func (m *Manager) SearchKeywords(req schema.KeywordsRequest) (*schema.SearchResponse, error) {
	keywords := make([]string, 0, len(req.Keywords))
	for _, keyword := range req.Keywords {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			keywords = append(keywords, keyword)
		}
	}
	if len(keywords) == 0 {
		return nil, mia.ErrBadParameter.With("keywords array is required")
	}
	solutions := m.knowledge.SearchKeywords(keywords)
	return &schema.SearchResponse{
		Solutions: solutions,
		Keywords:  keywords,
		Count:     len(solutions),
	}, nil
}

// Solution returns a solution with the solutions related to it
func (m *Manager) Solution(id string) (*schema.SolutionResponse, error) {
	solution, err := m.knowledge.Solution(id)
	if err != nil {
		return nil, err
	}
	return &schema.SolutionResponse{
		Solution: *solution,
		Related:  m.knowledge.Related(id),
	}, nil
}

// Categories lists the knowledge base categories
func (m *Manager) Categories() *schema.CategoriesResponse {
	categories := m.knowledge.Categories()
	return &schema.CategoriesResponse{
		Categories: categories,
		Count:      len(categories),
	}
}

// Category returns the solutions in a category
func (m *Manager) Category(category string) (*schema.SearchResponse, error) {
	solutions, err := m.knowledge.ByCategory(category)
	if err != nil {
		return nil, err
	}
	return &schema.SearchResponse{
		Solutions: solutions,
		Category:  category,
		Count:     len(solutions),
	}, nil
}

// QuickFix returns the quick fix for an issue type
func (m *Manager) QuickFix(req schema.QuickFixRequest) (*schema.QuickFixResponse, error) {
	fix, err := m.knowledge.QuickFix(req.Issue)
	if err != nil {
		return nil, err
	}
	return &schema.QuickFixResponse{
		QuickFix: *fix,
		Issue:    strings.TrimSpace(req.Issue),
	}, nil
}

// DiagnosticQuestions returns the questions to ask about a category of
// problem
func (m *Manager) DiagnosticQuestions(category string) (*schema.QuestionsResponse, error) {
	questions, err := m.knowledge.DiagnosticQuestions(category)
	if err != nil {
		return nil, err
	}
	return &schema.QuestionsResponse{
		Questions: questions,
		Category:  category,
		Count:     len(questions),
	}, nil
}
