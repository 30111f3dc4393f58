package services

import (
	"strings"
	"testing"
)

func TestBuildMainPrompt(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		keyword     string
		contains    []string
		notContains []string
	}{
		{
			name:    "without keyword",
			url:     "https://www.example.com/blog",
			keyword: "",
			contains: []string{
				"Analyze the website https://www.example.com/blog and provide",
				"**example.com**",
				"SEO Analysis Report",
				"### **1. Content Depth and Quality**",
				"### **6. Readability**",
				"Top 3 Priority Fixes",
				"Semantic Keywords",
				"Final Verdict",
			},
			notContains: []string{"Target Keyword", "Search Intent Analysis", "natural content flow"},
		},
		{
			name:    "with keyword",
			url:     "https://example.com",
			keyword: "  running shoes ",
			contains: []string{
				`focusing on the keyword "running shoes"`,
				`**Target Keyword:** "running shoes"`,
				"Keyword Optimization Opportunities",
				`Identify primary search intent for "running shoes"`,
				"natural content flow",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildMainPrompt(tt.url, tt.keyword)

			if !strings.Contains(prompt.System, "# SEO Analysis for [URL]") {
				t.Error("system prompt should demand the markdown layout")
			}
			if prompt.MaxTokens <= 0 {
				t.Error("MaxTokens should be set")
			}
			for _, want := range tt.contains {
				if !strings.Contains(prompt.User, want) {
					t.Errorf("prompt missing %q", want)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(prompt.User, unwanted) {
					t.Errorf("prompt should not contain %q", unwanted)
				}
			}
		})
	}
}

func TestBuildSupplementaryPrompt(t *testing.T) {
	prompt := BuildSupplementaryPrompt("https://example.com", "")
	if strings.Contains(prompt.User, "Target Keyword") {
		t.Error("keyword line should be omitted when empty")
	}
	if !strings.Contains(prompt.User, "6. Performance optimization suggestions") {
		t.Error("focus list should be numbered")
	}

	prompt = BuildSupplementaryPrompt("https://example.com", "seo")
	if !strings.Contains(prompt.User, "Target Keyword: seo") {
		t.Error("keyword line should be present")
	}
}

func TestCombineAnalysis(t *testing.T) {
	if got := CombineAnalysis("main", ""); got != "main" {
		t.Errorf("CombineAnalysis() = %q, want main", got)
	}
	want := "main\n\n---\n\n### **🔧 Additional Technical Insights**\n\nextra"
	if got := CombineAnalysis("main", "extra"); got != want {
		t.Errorf("CombineAnalysis() = %q, want %q", got, want)
	}
}
