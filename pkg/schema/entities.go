package schema

import "slices"

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Entities are the keyword hits extracted from a message, by category. All
// five categories are always present and never contain duplicates.
type Entities struct {
	Devices  []string `json:"devices"`
	Software []string `json:"software"`
	Issues   []string `json:"issues"`
	Urgency  []string `json:"urgency_indicators"`
	Emotions []string `json:"emotions"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	EntityDevices  = "devices"
	EntitySoftware = "software"
	EntityIssues   = "issues"
	EntityUrgency  = "urgency_indicators"
	EntityEmotions = "emotions"
)

// EntityCategories lists the entity categories in extraction order
var EntityCategories = []string{EntityDevices, EntitySoftware, EntityIssues, EntityUrgency, EntityEmotions}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewEntities() Entities {
	return Entities{
		Devices:  []string{},
		Software: []string{},
		Issues:   []string{},
		Urgency:  []string{},
		Emotions: []string{},
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Add appends value to a category unless it is already present, and returns
// false if the category is unknown
func (e *Entities) Add(category, value string) bool {
	list := e.list(category)
	if list == nil {
		return false
	}
	if !slices.Contains(*list, value) {
		*list = append(*list, value)
	}
	return true
}

// Get returns the values for a category
func (e Entities) Get(category string) []string {
	if list := e.list(category); list != nil {
		return *list
	}
	return nil
}

// First returns the first value of a category, or an empty string
func (e Entities) First(category string) string {
	if values := e.Get(category); len(values) > 0 {
		return values[0]
	}
	return ""
}

// Clone returns a deep copy, replacing nil categories with empty ones
func (e Entities) Clone() Entities {
	result := NewEntities()
	for _, category := range EntityCategories {
		for _, value := range e.Get(category) {
			result.Add(category, value)
		}
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (e *Entities) list(category string) *[]string {
	switch category {
	case EntityDevices:
		return &e.Devices
	case EntitySoftware:
		return &e.Software
	case EntityIssues:
		return &e.Issues
	case EntityUrgency:
		return &e.Urgency
	case EntityEmotions:
		return &e.Emotions
	}
	return nil
}
