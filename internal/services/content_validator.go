package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minContentLength = 1000
	minSections      = 3
	minBulletPoints  = 10
)

var (
	hashHeaderRegex   = regexp.MustCompile(`(?m)^#+\s+.*$`)
	numberedBoldRegex = regexp.MustCompile(`(?m)^\d+\.\s+\*\*.*\*\*$`)
	boldLineRegex     = regexp.MustCompile(`(?m)^\*\*.*\*\*$`)
)

// ContentStats descreve a estrutura de um texto gerado
type ContentStats struct {
	Length            int  `json:"length"`
	HasMarkdown       bool `json:"hasMarkdown"`
	Sections          int  `json:"sections"`
	BulletPoints      int  `json:"bulletPoints"`
	HasAnalysisHeader bool `json:"hasAnalysisHeader"`
}

// ContentValidationError indica uma resposta do modelo curta ou sem estrutura.
// É tratada como falha temporária: outra geração costuma resolver.
type ContentValidationError struct {
	Stats ContentStats
}

func (e *ContentValidationError) Error() string {
	return fmt.Sprintf("conteúdo insuficiente (tamanho=%d seções=%d bullets=%d markdown=%t cabeçalho=%t)",
		e.Stats.Length, e.Stats.Sections, e.Stats.BulletPoints, e.Stats.HasMarkdown, e.Stats.HasAnalysisHeader)
}

// Temporary marca o erro como passível de nova tentativa
func (e *ContentValidationError) Temporary() bool { return true }

// AnalyzeContent calcula as métricas de estrutura do texto.
// Length conta caracteres do texto sem espaços nas pontas.
func AnalyzeContent(text string) ContentStats {
	text = strings.TrimSpace(text)
	return ContentStats{
		Length:      utf8.RuneCountInString(text),
		HasMarkdown: strings.Contains(text, "#") || strings.Contains(text, "**"),
		Sections: len(hashHeaderRegex.FindAllStringIndex(text, -1)) +
			len(numberedBoldRegex.FindAllStringIndex(text, -1)) +
			len(boldLineRegex.FindAllStringIndex(text, -1)),
		BulletPoints:      strings.Count(text, "\n-"),
		HasAnalysisHeader: strings.Contains(strings.ToLower(text), "seo analysis"),
	}
}

// HasMinimumContent verifica se a análise tem tamanho e estrutura mínimos
func HasMinimumContent(text string) (bool, ContentStats) {
	stats := AnalyzeContent(text)
	ok := stats.Length >= minContentLength &&
		stats.HasMarkdown &&
		stats.Sections >= minSections &&
		stats.BulletPoints >= minBulletPoints &&
		stats.HasAnalysisHeader
	return ok, stats
}
