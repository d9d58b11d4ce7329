package voice

import (
	"math"
	"strings"

	// Packages
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	wordsPerMinute = 150
	pause          = `<break time="0.3s"/>`
)

var (
	collapse = strings.NewReplacer("...", ".", "!!", "!", "??", "?")
	pauses   = strings.NewReplacer(". ", ". "+pause+" ", "! ", "! "+pause+" ", "? ", "? "+pause+" ")
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Optimize prepares text for synthesis: repeated punctuation is collapsed,
// pauses are inserted after sentences and technical terms are spelled out
// the way they should be spoken
func (c *Catalog) Optimize(text, lang string) string {
	text = collapse.Replace(text)
	text = pauses.Replace(text)
	for _, term := range c.terms(lang) {
		text = strings.ReplaceAll(text, term[0], term[1])
	}
	return text
}

// EstimateDuration returns the spoken duration of text in seconds at 150
// words per minute, ignoring pause markup
func EstimateDuration(text string) float64 {
	words := len(strings.Fields(strings.ReplaceAll(text, pause, "")))
	return round(float64(words) / wordsPerMinute * 60)
}

// LipSync estimates when each word is spoken. Longer words take longer, and
// the word durations add up to the total duration.
func LipSync(text string, duration float64) *schema.LipSync {
	words := strings.Fields(strings.ReplaceAll(text, pause, ""))
	result := &schema.LipSync{
		Words:         make([]schema.WordTiming, 0, len(words)),
		TotalDuration: duration,
		WordCount:     len(words),
	}
	if len(words) == 0 {
		return result
	}

	// Weight each word by its length
	weights := make([]float64, len(words))
	var total float64
	for i, word := range words {
		weights[i] = 0.8 + float64(len([]rune(word)))/10
		total += weights[i]
	}

	var start float64
	for i, word := range words {
		end := start + duration*weights[i]/total
		if i == len(words)-1 {
			end = duration
		}
		result.Words = append(result.Words, schema.WordTiming{
			Word:     word,
			Start:    round(start),
			End:      round(end),
			Duration: round(end - start),
		})
		start = end
	}
	result.AverageDuration = round(duration / float64(len(words)))
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
