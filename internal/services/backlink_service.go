package services

import (
	"context"
	"log"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/search"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/utils"
)

// BacklinkService agrega backlinks de vários motores de busca.
// Provedores são consultados em paralelo; a ordem da lista define a
// precedência na deduplicação.
type BacklinkService struct {
	sources []search.BacklinkSource
}

// NewBacklinkService recebe apenas os provedores habilitados, em ordem de precedência
func NewBacklinkService(sources ...search.BacklinkSource) *BacklinkService {
	return &BacklinkService{sources: sources}
}

// Aggregate nunca falha por causa de um provedor: falhas contribuem lista vazia
// e marcam o relatório como Degraded
func (s *BacklinkService) Aggregate(ctx context.Context, rawDomain string) *models.BacklinkReport {
	domain := utils.ExtractDomain(rawDomain)
	results := make([][]models.BacklinkRecord, len(s.sources))
	failed := make([]bool, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, source := range s.sources {
		g.Go(func() error {
			records, err := source.Backlinks(gctx, domain)
			if err != nil {
				log.Printf("[BacklinkService] %s falhou para %s: %v", source.Name(), domain, err)
				failed[i] = true
				return nil
			}
			results[i] = records
			return nil
		})
	}
	_ = g.Wait()

	report := &models.BacklinkReport{
		Backlinks: []models.BacklinkRecord{},
		Degraded:  len(s.sources) == 0,
	}
	for i, source := range s.sources {
		if failed[i] {
			report.Degraded = true
		}
		switch source.Name() {
		case models.BacklinkSourceGoogle:
			report.Sources.Google += len(results[i])
		case models.BacklinkSourceSerp:
			report.Sources.Serp += len(results[i])
		}
	}

	report.Backlinks = DedupeBacklinks(results...)
	report.TotalBacklinks = len(report.Backlinks)
	report.DAScore = DomainAuthority(report.TotalBacklinks)

	return report
}

// DedupeBacklinks concatena as listas em ordem e mantém a primeira ocorrência
// de cada URL (comparação sem diferenciar maiúsculas)
func DedupeBacklinks(lists ...[]models.BacklinkRecord) []models.BacklinkRecord {
	seen := make(map[string]struct{})
	unique := []models.BacklinkRecord{}

	for _, list := range lists {
		for _, record := range list {
			key := strings.ToLower(strings.TrimSpace(record.URL))
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			unique = append(unique, record)
		}
	}

	return unique
}

// DomainAuthority estima a autoridade a partir do número de backlinks únicos:
// round(min(100, 20*log10(n+1))), com piso 1.
func DomainAuthority(count int) int {
	if count < 0 {
		count = 0
	}

	score := math.Round(math.Min(100, 20*math.Log10(float64(count)+1)))
	if score < 1 {
		return 1
	}
	return int(score)
}
