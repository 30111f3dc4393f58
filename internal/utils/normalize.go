package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveAccents remove acentos e diacríticos
// Exemplo: "Educação" -> "Educacao"
func RemoveAccents(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, _ := transform.String(t, text)
	return normalized
}

// NormalizeKeyword prepara a palavra-chave para compor chaves de cache:
// sem acentos, minúscula e com espaços internos colapsados.
// Exemplo: "  Consultoria  SEO São Paulo " -> "consultoria seo sao paulo"
func NormalizeKeyword(keyword string) string {
	if keyword == "" {
		return ""
	}

	normalized := strings.ToLower(RemoveAccents(keyword))
	return strings.Join(strings.Fields(normalized), " ")
}
