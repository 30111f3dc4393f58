// Package search consulta motores de busca por páginas que apontam para um domínio.
package search

import (
	"context"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
)

// BacklinkSource devolve backlinks de um domínio já normalizado (sem protocolo e www)
type BacklinkSource interface {
	Name() string
	Backlinks(ctx context.Context, domain string) ([]models.BacklinkRecord, error)
}

type resultItem struct {
	Link    string `json:"link"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

func toRecords(items []resultItem, source string) []models.BacklinkRecord {
	records := make([]models.BacklinkRecord, 0, len(items))
	for _, item := range items {
		if item.Link == "" {
			continue
		}
		records = append(records, models.BacklinkRecord{
			URL:     item.Link,
			Title:   item.Title,
			Snippet: item.Snippet,
			Source:  source,
		})
	}
	return records
}
