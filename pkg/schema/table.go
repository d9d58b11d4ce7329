package schema

import (
	"fmt"

	// Packages
	uitable "github.com/mutablelogic/go-mia/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// SolutionTable implements table.TableData for search results
type SolutionTable []Solution

// CategoryTable implements table.TableData for knowledge base categories
type CategoryTable []Category

// VoiceTable implements table.TableData for the voice catalog, highlighting
// the current voice
type VoiceTable struct {
	Voices  []VoiceProfile
	Current string
}

// MessageTable implements table.TableData for the history of a session
type MessageTable []Message

///////////////////////////////////////////////////////////////////////////////
// SOLUTIONS

func (t SolutionTable) Header() []string {
	return []string{"ID", "TITLE", "CATEGORY", "DIFFICULTY", "TIME", "SCORE"}
}

func (t SolutionTable) Len() int {
	return len(t)
}

func (t SolutionTable) Row(i int) []any {
	s := t[i]
	return []any{s.ID, s.Title, s.Category, s.Difficulty, s.EstimatedTime, s.RelevanceScore}
}

///////////////////////////////////////////////////////////////////////////////
// CATEGORIES

func (t CategoryTable) Header() []string {
	return []string{"CATEGORY", "SOLUTIONS", "DIFFICULTIES"}
}

func (t CategoryTable) Len() int {
	return len(t)
}

func (t CategoryTable) Row(i int) []any {
	return []any{t[i].Name, t[i].Count, t[i].Difficulties}
}

///////////////////////////////////////////////////////////////////////////////
// VOICES

func (t VoiceTable) Header() []string {
	return []string{"KEY", "NAME", "LANGUAGE", "DESCRIPTION"}
}

func (t VoiceTable) Len() int {
	return len(t.Voices)
}

func (t VoiceTable) Row(i int) []any {
	v := t.Voices[i]
	row := []any{v.Key, v.Name, v.LanguageName, uitable.Truncate(v.Description, 60)}
	if v.Key == t.Current {
		for j, cell := range row {
			row[j] = uitable.Bold{Value: cell}
		}
	}
	return row
}

///////////////////////////////////////////////////////////////////////////////
// MESSAGES

func (t MessageTable) Header() []string {
	return []string{"TIME", "MESSAGE", "REPLY", "INTENT"}
}

func (t MessageTable) Len() int {
	return len(t)
}

func (t MessageTable) Row(i int) []any {
	m := t[i]
	intent := m.Intent
	if m.Confidence > 0 {
		intent = fmt.Sprintf("%s (%.0f%%)", m.Intent, m.Confidence*100)
	}
	return []any{m.Timestamp, uitable.Truncate(m.UserMessage, 40), uitable.Truncate(m.AIResponse, 60), intent}
}
