// Package advice turns free text coming back from the generative model
// into structured tips. The upstream generator is treated as
// unreliable: the parser is total, fills missing sections with
// defaults, and never returns partial fields.
package advice

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTitle      = "Financial Advice"
	DefaultCategory   = "budgeting"
	DefaultDifficulty = "beginner"
)

type Tip struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Advice        string    `json:"advice"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	OriginalQuery string    `json:"original_query"`
	AIGenerated   bool      `json:"is_ai_generated"`
	CreatedAt     time.Time `json:"created_at"`
}

var (
	titleRe      = regexp.MustCompile(`(?is)TITLE:?\s*(.*?)(?:ADVICE:|$)`)
	adviceRe     = regexp.MustCompile(`(?is)ADVICE:?\s*(.*?)(?:CATEGORY:|$)`)
	categoryRe   = regexp.MustCompile(`(?i)CATEGORY:?\s*([a-z]+)`)
	difficultyRe = regexp.MustCompile(`(?i)DIFFICULTY:?\s*([a-z]+)`)
)

// Parse extracts the TITLE/ADVICE/CATEGORY/DIFFICULTY sections from a
// model response. Missing sections fall back to defaults; a response
// with no markers at all becomes a tip whose advice is the verbatim
// text.
func Parse(text, query string) Tip {
	tip := Tip{
		ID:            uuid.NewString(),
		Title:         DefaultTitle,
		Advice:        sanitizeUTF8(strings.TrimSpace(text)),
		Category:      DefaultCategory,
		Difficulty:    DefaultDifficulty,
		OriginalQuery: query,
		AIGenerated:   true,
		CreatedAt:     time.Now(),
	}

	if m := titleRe.FindStringSubmatch(text); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			tip.Title = sanitizeUTF8(title)
		}
	}
	if m := adviceRe.FindStringSubmatch(text); m != nil {
		if advice := strings.TrimSpace(m[1]); advice != "" {
			tip.Advice = sanitizeUTF8(advice)
		}
	}
	if m := categoryRe.FindStringSubmatch(text); m != nil {
		tip.Category = strings.ToLower(m[1])
	}
	if m := difficultyRe.FindStringSubmatch(text); m != nil {
		tip.Difficulty = strings.ToLower(m[1])
	}

	return tip
}
