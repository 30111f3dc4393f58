package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text without markdown",
			input:    "Page speed is fine",
			expected: "Page speed is fine",
		},
		{
			name:     "bold criterion",
			input:    "**Keyword in Title Tag:** Yes",
			expected: "Keyword in Title Tag: Yes",
		},
		{
			name:     "link",
			input:    "Check [PageSpeed](https://pagespeed.web.dev) results",
			expected: "Check PageSpeed results",
		},
		{
			name:     "heading",
			input:    "# SEO Analysis Report\n\nSummary",
			expected: "SEO Analysis Report\n\nSummary",
		},
		{
			name:     "code inline",
			input:    "Add a `rel=canonical` tag",
			expected: "Add a rel=canonical tag",
		},
		{
			name:     "unordered list",
			input:    "- Item 1\n- Item 2\n- Item 3",
			expected: "- Item 1\n\n- Item 2\n\n- Item 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StripMarkdown(tt.input)
			if result != tt.expected {
				t.Errorf("StripMarkdown(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSummarizeMarkdown(t *testing.T) {
	t.Run("short text is untouched", func(t *testing.T) {
		if got := SummarizeMarkdown("**Good** structure", 100); got != "Good structure" {
			t.Errorf("SummarizeMarkdown() = %q", got)
		}
	})

	t.Run("long text is cut on word boundary", func(t *testing.T) {
		input := strings.Repeat("palavra ", 50)
		got := SummarizeMarkdown(input, 30)

		if !strings.HasSuffix(got, "...") {
			t.Fatalf("expected ellipsis, got %q", got)
		}
		body := strings.TrimSuffix(got, "...")
		if utf8.RuneCountInString(body) > 30 {
			t.Errorf("summary body has %d runes, want <= 30", utf8.RuneCountInString(body))
		}
		if strings.HasSuffix(body, "palavr") {
			t.Errorf("summary cut a word in half: %q", got)
		}
	})

	t.Run("zero limit disables truncation", func(t *testing.T) {
		input := strings.Repeat("a ", 10)
		if got := SummarizeMarkdown(input, 0); got != strings.TrimSpace(input) {
			t.Errorf("SummarizeMarkdown() = %q", got)
		}
	})
}

func BenchmarkStripMarkdown(b *testing.B) {
	input := `# SEO Analysis Report

## 1. Keyword Optimization
- **Keyword in Title Tag:** Yes
- **Action Items:**
  - Move the keyword to the start of the title

Para mais informações, acesse o [guia](http://example.com).`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		StripMarkdown(input)
	}
}
