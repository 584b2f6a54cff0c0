package advice

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantTitle      string
		wantAdvice     string
		wantCategory   string
		wantDifficulty string
	}{
		{
			name: "fully labeled response",
			text: "TITLE: Build an Emergency Fund\n\n" +
				"ADVICE: Start by saving a small amount every month.\n\n" +
				"1. Open a separate account\n2. Automate transfers\n\n" +
				"CATEGORY: saving\n\nDIFFICULTY: beginner",
			wantTitle:      "Build an Emergency Fund",
			wantAdvice:     "Start by saving a small amount every month.\n\n1. Open a separate account\n2. Automate transfers",
			wantCategory:   "saving",
			wantDifficulty: "beginner",
		},
		{
			name:           "lowercase markers still match",
			text:           "title: Pay Down Debt\nadvice: Snowball the smallest balance first.\ncategory: debt\ndifficulty: intermediate",
			wantTitle:      "Pay Down Debt",
			wantAdvice:     "Snowball the smallest balance first.",
			wantCategory:   "debt",
			wantDifficulty: "intermediate",
		},
		{
			name:           "no markers falls back to defaults with verbatim advice",
			text:           "Just spend less than you earn, honestly.",
			wantTitle:      DefaultTitle,
			wantAdvice:     "Just spend less than you earn, honestly.",
			wantCategory:   DefaultCategory,
			wantDifficulty: DefaultDifficulty,
		},
		{
			name:           "category is lowercased",
			text:           "CATEGORY: INVESTING",
			wantTitle:      DefaultTitle,
			wantAdvice:     "CATEGORY: INVESTING",
			wantCategory:   "investing",
			wantDifficulty: DefaultDifficulty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tip := Parse(tt.text, "how do I save money?")
			if tip.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", tip.Title, tt.wantTitle)
			}
			if tip.Advice != tt.wantAdvice {
				t.Errorf("Advice = %q, want %q", tip.Advice, tt.wantAdvice)
			}
			if tip.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", tip.Category, tt.wantCategory)
			}
			if tip.Difficulty != tt.wantDifficulty {
				t.Errorf("Difficulty = %q, want %q", tip.Difficulty, tt.wantDifficulty)
			}
			if tip.OriginalQuery != "how do I save money?" {
				t.Errorf("OriginalQuery = %q", tip.OriginalQuery)
			}
			if tip.ID == "" || !tip.AIGenerated || tip.CreatedAt.IsZero() {
				t.Errorf("metadata not populated: %+v", tip)
			}
		})
	}
}

func TestParseNeverReturnsEmptyFields(t *testing.T) {
	for _, text := range []string{"", "   ", "TITLE:", "TITLE:\nADVICE:\nCATEGORY:\nDIFFICULTY:"} {
		tip := Parse(text, "q")
		if tip.Title == "" || tip.Category == "" || tip.Difficulty == "" {
			t.Errorf("Parse(%q) returned empty structured fields: %+v", text, tip)
		}
	}
}

func TestSanitizeUTF8(t *testing.T) {
	in := "save\xffmoney"
	got := sanitizeUTF8(in)
	if got != "savemoney" {
		t.Errorf("sanitizeUTF8 = %q", got)
	}
	if strings.Contains(got, "\xff") {
		t.Error("invalid byte survived sanitization")
	}
}
