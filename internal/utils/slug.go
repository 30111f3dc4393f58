package utils

import (
	"regexp"
	"strings"
)

const (
	MaxSlugBaseLength = 50
	ShortIDLength     = 8
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug monta o identificador legível de um relatório arquivado.
// Formato: {kebab-case-texto}-{id-curto}
// Exemplo: "example.com consultoria SEO" + "3f2a9c1e-..." -> "example-com-consultoria-seo-3f2a9c1e"
func GenerateSlug(text, id string) string {
	if id == "" {
		return ""
	}

	shortID := truncateID(strings.ReplaceAll(id, "-", ""))
	slug := normalizeToSlug(text)
	if slug == "" {
		return shortID
	}

	return slug + "-" + shortID
}

// normalizeToSlug converte texto para kebab-case ASCII, limitado a MaxSlugBaseLength
func normalizeToSlug(text string) string {
	normalized := strings.ToLower(RemoveAccents(text))

	slug := nonSlugChars.ReplaceAllString(normalized, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > MaxSlugBaseLength {
		slug = slug[:MaxSlugBaseLength]
		if lastHyphen := strings.LastIndex(slug, "-"); lastHyphen > 0 {
			slug = slug[:lastHyphen]
		}
		slug = strings.TrimRight(slug, "-")
	}

	return slug
}

func truncateID(id string) string {
	if len(id) > ShortIDLength {
		return id[:ShortIDLength]
	}
	return id
}
