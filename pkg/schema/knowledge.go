package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Solution is a troubleshooting guide in the knowledge base
type Solution struct {
	ID             string   `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Description    string   `json:"description" yaml:"description"`
	Category       string   `json:"category" yaml:"category"`
	Difficulty     string   `json:"difficulty" yaml:"difficulty"`
	EstimatedTime  string   `json:"estimated_time" yaml:"estimated_time"`
	Prerequisites  []string `json:"prerequisites" yaml:"prerequisites"`
	Steps          []string `json:"steps" yaml:"steps"`
	Tips           []string `json:"troubleshooting_tips" yaml:"troubleshooting_tips"`
	RelatedIssues  []string `json:"related_issues" yaml:"related_issues"`
	Keywords       []string `json:"keywords" yaml:"keywords"`
	RelevanceScore int      `json:"relevance_score,omitempty" yaml:"-"`
}

// SolutionRef identifies a related solution
type SolutionRef struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

// QuickFix is a short list of steps for a common problem
type QuickFix struct {
	Issue         string   `json:"issue_type" yaml:"-"`
	Title         string   `json:"title" yaml:"title"`
	Steps         []string `json:"steps" yaml:"steps"`
	EstimatedTime string   `json:"estimated_time" yaml:"estimated_time"`
}

// CommonIssue describes the symptoms and causes of a frequent problem
type CommonIssue struct {
	Symptoms    []string `json:"symptoms" yaml:"symptoms"`
	Causes      []string `json:"common_causes" yaml:"common_causes"`
	QuickChecks []string `json:"quick_checks" yaml:"quick_checks"`
}

// Category summarises the solutions in one knowledge base category
type Category struct {
	Name         string   `json:"name"`
	Count        int      `json:"count"`
	Difficulties []string `json:"difficulties"`
}

// Guide is a localized step-by-step guide
type Guide struct {
	Key         string   `json:"key" yaml:"-"`
	Language    string   `json:"language" yaml:"-"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	Steps       []string `json:"steps" yaml:"steps"`
	Score       int      `json:"score,omitempty" yaml:"-"`
}
