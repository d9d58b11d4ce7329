package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Intent is the result of classifying a message
type Intent struct {
	Intent     string         `json:"intent"`
	Confidence float64        `json:"confidence"`
	Category   string         `json:"category,omitempty"`
	Urgency    string         `json:"urgency,omitempty"`
	Scores     map[string]int `json:"scores,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Intent categories
const (
	CategorySocial      = "social"
	CategoryTechnical   = "technical"
	CategoryEducational = "educational"
	CategoryFeedback    = "feedback"
	CategoryGeneral     = "general"
)

// Urgency levels
const (
	UrgencyUrgent = "urgent"
	UrgencyHigh   = "high"
	UrgencyNormal = "normal"
)
