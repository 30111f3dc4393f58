package services

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/similarweb"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/utils"
)

const (
	maxCompetitors  = 5
	monthLayout     = "2006-01"
	unknownCategory = "Unknown"
)

// TrafficSource é o subconjunto da API SimilarWeb usado pelo agregador
type TrafficSource interface {
	GeneralData(ctx context.Context, domain string) (similarweb.GeneralData, error)
	Visits(ctx context.Context, domain string, r similarweb.Range) ([]similarweb.VisitPoint, error)
	Engagement(ctx context.Context, domain string, r similarweb.Range) ([]similarweb.EngagementPoint, error)
	Competitors(ctx context.Context, domain string) ([]models.CompetitorRecord, error)
}

// TrafficService agrega dados de tráfego. Cada chamada externa é tolerante
// a falhas de forma independente e nenhuma operação retorna erro.
type TrafficService struct {
	source        TrafficSource
	historyMonths int
	now           func() time.Time
}

// NewTrafficService aceita source nulo quando a SimilarWeb não está configurada
func NewTrafficService(source TrafficSource, historyMonths int) *TrafficService {
	if historyMonths < 2 {
		historyMonths = 12
	}
	return &TrafficService{
		source:        source,
		historyMonths: historyMonths,
		now:           time.Now,
	}
}

// ZeroSnapshot é o resultado usado quando os dados atuais não estão disponíveis
func ZeroSnapshot(now time.Time) models.TrafficSnapshot {
	return models.TrafficSnapshot{
		Category:    unknownCategory,
		LastUpdated: now.Format(monthLayout),
		Degraded:    true,
	}
}

// recentRange cobre os últimos n meses completos
func (s *TrafficService) recentRange(months int) similarweb.Range {
	now := s.now()
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	start := end.AddDate(0, -(months - 1), 0)
	return similarweb.Range{Start: start.Format(monthLayout), End: end.Format(monthLayout)}
}

// Snapshot devolve os números mais recentes do domínio, ou o snapshot zerado
// se qualquer uma das três chamadas falhar
func (s *TrafficService) Snapshot(ctx context.Context, rawDomain string) models.TrafficSnapshot {
	domain := utils.ExtractDomain(rawDomain)
	if s.source == nil {
		return ZeroSnapshot(s.now())
	}

	r := s.recentRange(3)

	var (
		general    similarweb.GeneralData
		visits     []similarweb.VisitPoint
		engagement []similarweb.EngagementPoint
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		general, err = s.source.GeneralData(gctx, domain)
		return err
	})
	g.Go(func() (err error) {
		visits, err = s.source.Visits(gctx, domain, r)
		return err
	})
	g.Go(func() (err error) {
		engagement, err = s.source.Engagement(gctx, domain, r)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Printf("[TrafficService] snapshot indisponível para %s: %v", domain, err)
		return ZeroSnapshot(s.now())
	}

	snapshot := models.TrafficSnapshot{
		GlobalRank:  general.GlobalRank.Rank,
		CountryRank: general.CountryRank.Rank,
		Category:    general.Category,
		LastUpdated: s.now().Format(monthLayout),
	}
	if snapshot.Category == "" {
		snapshot.Category = unknownCategory
	}

	if len(visits) > 0 {
		last := visits[len(visits)-1]
		snapshot.TotalVisits = last.Visits
		if month := monthOf(last.Date); month != "" {
			snapshot.LastUpdated = month
		}
	}
	if len(engagement) > 0 {
		last := engagement[len(engagement)-1]
		snapshot.BounceRate = last.BounceRate
		snapshot.PageViews = last.PagesPerVisit
		snapshot.AvgVisitDuration = last.AverageVisitDuration
	}

	return snapshot
}

// Detailed combina snapshot, série histórica, concorrentes e tendências
func (s *TrafficService) Detailed(ctx context.Context, rawDomain string) models.DetailedTraffic {
	domain := utils.ExtractDomain(rawDomain)

	result := models.DetailedTraffic{
		Historical:  []models.HistoricalPoint{},
		Competitors: []models.CompetitorRecord{},
		Timestamp:   s.now().UTC().Format(time.RFC3339),
	}

	var historyOK, competitorsOK bool

	var g errgroup.Group
	g.Go(func() error {
		result.Current = s.Snapshot(ctx, domain)
		return nil
	})
	g.Go(func() error {
		result.Historical, historyOK = s.historical(ctx, domain)
		return nil
	})
	g.Go(func() error {
		result.Competitors, competitorsOK = s.competitors(ctx, domain)
		return nil
	})
	_ = g.Wait()

	result.Trends = ComputeTrends(result.Historical)
	result.Degraded = result.Current.Degraded || !historyOK || !competitorsOK
	return result
}

// historical devolve ok=false quando alguma das séries não pôde ser obtida
func (s *TrafficService) historical(ctx context.Context, domain string) ([]models.HistoricalPoint, bool) {
	if s.source == nil {
		return []models.HistoricalPoint{}, false
	}

	r := s.recentRange(s.historyMonths)

	visits, err := s.source.Visits(ctx, domain, r)
	if err != nil {
		log.Printf("[TrafficService] histórico de visitas indisponível para %s: %v", domain, err)
		return []models.HistoricalPoint{}, false
	}

	ok := true
	engagement, err := s.source.Engagement(ctx, domain, r)
	if err != nil {
		log.Printf("[TrafficService] histórico de engajamento indisponível para %s: %v", domain, err)
		engagement = nil
		ok = false
	}

	return MergeHistory(visits, engagement), ok
}

func (s *TrafficService) competitors(ctx context.Context, domain string) ([]models.CompetitorRecord, bool) {
	if s.source == nil {
		return []models.CompetitorRecord{}, false
	}

	competitors, err := s.source.Competitors(ctx, domain)
	if err != nil {
		log.Printf("[TrafficService] concorrentes indisponíveis para %s: %v", domain, err)
		return []models.CompetitorRecord{}, false
	}

	if competitors == nil {
		competitors = []models.CompetitorRecord{}
	}
	if len(competitors) > maxCompetitors {
		competitors = competitors[:maxCompetitors]
	}
	return competitors, true
}

// MergeHistory junta visitas e engajamento pelo mês. Meses sem engajamento
// ficam com as métricas de engajamento zeradas.
func MergeHistory(visits []similarweb.VisitPoint, engagement []similarweb.EngagementPoint) []models.HistoricalPoint {
	byMonth := make(map[string]similarweb.EngagementPoint, len(engagement))
	for _, e := range engagement {
		if month := monthOf(e.Date); month != "" {
			byMonth[month] = e
		}
	}

	points := make([]models.HistoricalPoint, 0, len(visits))
	for _, v := range visits {
		month := monthOf(v.Date)
		point := models.HistoricalPoint{Date: month, Visits: v.Visits}
		if month == "" {
			point.Date = v.Date
		}
		if e, ok := byMonth[month]; ok {
			point.BounceRate = e.BounceRate
			point.PageViews = e.PagesPerVisit
			point.AvgVisitDuration = e.AverageVisitDuration
		}
		points = append(points, point)
	}
	return points
}

// ComputeTrends compara os dois últimos pontos. A variação de visitas é
// percentual e vale 0 quando o mês anterior não teve visitas.
func ComputeTrends(points []models.HistoricalPoint) models.TrendDeltas {
	if len(points) < 2 {
		return models.TrendDeltas{}
	}

	current := points[len(points)-1]
	previous := points[len(points)-2]

	trends := models.TrendDeltas{
		BounceRateChange: current.BounceRate - previous.BounceRate,
		PageViewsChange:  current.PageViews - previous.PageViews,
		DurationChange:   current.AvgVisitDuration - previous.AvgVisitDuration,
	}
	if previous.Visits != 0 {
		trends.VisitsChange = (current.Visits - previous.Visits) / previous.Visits * 100
	}
	return trends
}

// monthOf reduz "2024-05-01" ou "2024-05" para "2024-05"
func monthOf(date string) string {
	if len(date) < len(monthLayout) {
		return ""
	}
	month := date[:len(monthLayout)]
	if _, err := time.Parse(monthLayout, month); err != nil {
		return ""
	}
	return month
}
