package utils

import "testing"

func TestNormalizeKeyword(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"lowercase", "SEO Tools", "seo tools"},
		{"accents", "Educação Física", "educacao fisica"},
		{"collapses spaces", "  consultoria   seo  ", "consultoria seo"},
		{"already normalized", "seo", "seo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := NormalizeKeyword(tt.input); result != tt.expected {
				t.Errorf("NormalizeKeyword(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRemoveAccents(t *testing.T) {
	if got := RemoveAccents("São Paulo"); got != "Sao Paulo" {
		t.Errorf("RemoveAccents() = %q, want %q", got, "Sao Paulo")
	}
}
