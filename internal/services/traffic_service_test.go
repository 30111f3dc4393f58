package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/similarweb"
)

type fakeTraffic struct {
	general        similarweb.GeneralData
	generalErr     error
	visits         []similarweb.VisitPoint
	visitsErr      error
	engagement     []similarweb.EngagementPoint
	engagementErr  error
	competitors    []models.CompetitorRecord
	competitorsErr error
}

func (f *fakeTraffic) GeneralData(ctx context.Context, domain string) (similarweb.GeneralData, error) {
	return f.general, f.generalErr
}

func (f *fakeTraffic) Visits(ctx context.Context, domain string, r similarweb.Range) ([]similarweb.VisitPoint, error) {
	return f.visits, f.visitsErr
}

func (f *fakeTraffic) Engagement(ctx context.Context, domain string, r similarweb.Range) ([]similarweb.EngagementPoint, error) {
	return f.engagement, f.engagementErr
}

func (f *fakeTraffic) Competitors(ctx context.Context, domain string) ([]models.CompetitorRecord, error) {
	return f.competitors, f.competitorsErr
}

func fixedTrafficService(source TrafficSource) *TrafficService {
	s := NewTrafficService(source, 12)
	s.now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }
	return s
}

func fullFake() *fakeTraffic {
	var general similarweb.GeneralData
	general.GlobalRank.Rank = 1500
	general.CountryRank.Rank = 90
	general.Category = "News"

	return &fakeTraffic{
		general: general,
		visits: []similarweb.VisitPoint{
			{Date: "2024-04-01", Visits: 1000},
			{Date: "2024-05-01", Visits: 1500},
		},
		engagement: []similarweb.EngagementPoint{
			{Date: "2024-04-01", BounceRate: 0.5, PagesPerVisit: 3, AverageVisitDuration: 120},
			{Date: "2024-05-01", BounceRate: 0.4, PagesPerVisit: 4, AverageVisitDuration: 150},
		},
		competitors: []models.CompetitorRecord{
			{Domain: "a.com"}, {Domain: "b.com"}, {Domain: "c.com"},
			{Domain: "d.com"}, {Domain: "e.com"}, {Domain: "f.com"}, {Domain: "g.com"},
		},
	}
}

func TestSnapshot(t *testing.T) {
	got := fixedTrafficService(fullFake()).Snapshot(context.Background(), "https://www.example.com")

	want := models.TrafficSnapshot{
		GlobalRank:       1500,
		CountryRank:      90,
		Category:         "News",
		TotalVisits:      1500,
		BounceRate:       0.4,
		PageViews:        4,
		AvgVisitDuration: 150,
		LastUpdated:      "2024-05",
	}
	if got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestSnapshotFallsBackToZero(t *testing.T) {
	tests := []struct {
		name   string
		source TrafficSource
	}{
		{name: "no source configured", source: nil},
		{name: "general data fails", source: func() TrafficSource {
			f := fullFake()
			f.generalErr = errors.New("HTTP 403")
			return f
		}()},
		{name: "engagement fails", source: func() TrafficSource {
			f := fullFake()
			f.engagementErr = errors.New("timeout")
			return f
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixedTrafficService(tt.source).Snapshot(context.Background(), "example.com")
			want := models.TrafficSnapshot{Category: "Unknown", LastUpdated: "2024-06", Degraded: true}
			if got != want {
				t.Errorf("Snapshot() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestDetailed(t *testing.T) {
	got := fixedTrafficService(fullFake()).Detailed(context.Background(), "example.com")

	if len(got.Historical) != 2 {
		t.Fatalf("len(Historical) = %d, want 2", len(got.Historical))
	}
	if got.Historical[1].Date != "2024-05" || got.Historical[1].PageViews != 4 {
		t.Errorf("unexpected last point: %+v", got.Historical[1])
	}
	if len(got.Competitors) != 5 {
		t.Errorf("len(Competitors) = %d, want 5", len(got.Competitors))
	}
	if got.Trends.VisitsChange != 50 {
		t.Errorf("VisitsChange = %v, want 50", got.Trends.VisitsChange)
	}
	if got.Current.TotalVisits != 1500 {
		t.Errorf("Current.TotalVisits = %v", got.Current.TotalVisits)
	}
	if got.Degraded {
		t.Error("complete result should not be degraded")
	}
}

func TestDetailedPartialFailures(t *testing.T) {
	f := fullFake()
	f.competitorsErr = errors.New("HTTP 500")

	got := fixedTrafficService(f).Detailed(context.Background(), "example.com")

	if len(got.Competitors) != 0 || got.Competitors == nil {
		t.Errorf("Competitors = %#v, want empty list", got.Competitors)
	}
	if len(got.Historical) != 2 {
		t.Errorf("historical should survive competitor failure, got %d points", len(got.Historical))
	}
	if !got.Degraded {
		t.Error("result with a failed call should be degraded")
	}
}

func TestDetailedDegradedOnAnyFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *fakeTraffic)
	}{
		{name: "general data fails", mutate: func(f *fakeTraffic) { f.generalErr = errors.New("HTTP 503") }},
		{name: "visits fail", mutate: func(f *fakeTraffic) { f.visitsErr = errors.New("HTTP 503") }},
		{name: "engagement fails", mutate: func(f *fakeTraffic) { f.engagementErr = errors.New("timeout") }},
		{name: "competitors fail", mutate: func(f *fakeTraffic) { f.competitorsErr = errors.New("HTTP 500") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fullFake()
			tt.mutate(f)
			got := fixedTrafficService(f).Detailed(context.Background(), "example.com")
			if !got.Degraded {
				t.Errorf("Degraded = false, want true")
			}
		})
	}
}

func TestDetailedWithoutSource(t *testing.T) {
	got := fixedTrafficService(nil).Detailed(context.Background(), "example.com")

	if len(got.Historical) != 0 || len(got.Competitors) != 0 {
		t.Errorf("unexpected data: %+v", got)
	}
	if got.Trends != (models.TrendDeltas{}) {
		t.Errorf("Trends = %+v, want zeros", got.Trends)
	}
	if got.Current.Category != "Unknown" {
		t.Errorf("Current = %+v", got.Current)
	}
	if !got.Degraded {
		t.Error("result without source should be degraded")
	}
}

func TestComputeTrends(t *testing.T) {
	tests := []struct {
		name   string
		points []models.HistoricalPoint
		want   models.TrendDeltas
	}{
		{name: "empty", points: nil, want: models.TrendDeltas{}},
		{name: "single point", points: []models.HistoricalPoint{{Visits: 10}}, want: models.TrendDeltas{}},
		{
			name: "growth",
			points: []models.HistoricalPoint{
				{Visits: 100, BounceRate: 0.5, PageViews: 2, AvgVisitDuration: 60},
				{Visits: 150, BounceRate: 0.4, PageViews: 3, AvgVisitDuration: 90},
			},
			want: models.TrendDeltas{VisitsChange: 50, BounceRateChange: -0.1, PageViewsChange: 1, DurationChange: 30},
		},
		{
			name: "zero previous visits",
			points: []models.HistoricalPoint{
				{Visits: 0},
				{Visits: 200},
			},
			want: models.TrendDeltas{VisitsChange: 0},
		},
		{
			name: "only last two points matter",
			points: []models.HistoricalPoint{
				{Visits: 1},
				{Visits: 200},
				{Visits: 100},
			},
			want: models.TrendDeltas{VisitsChange: -50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTrends(tt.points)
			if !closeEnough(got.VisitsChange, tt.want.VisitsChange) ||
				!closeEnough(got.BounceRateChange, tt.want.BounceRateChange) ||
				!closeEnough(got.PageViewsChange, tt.want.PageViewsChange) ||
				!closeEnough(got.DurationChange, tt.want.DurationChange) {
				t.Errorf("ComputeTrends() = %+v, want %+v", got, tt.want)
			}
			if math.IsNaN(got.VisitsChange) || math.IsInf(got.VisitsChange, 0) {
				t.Errorf("VisitsChange should be finite, got %v", got.VisitsChange)
			}
		})
	}
}

func TestMergeHistoryWithoutEngagement(t *testing.T) {
	points := MergeHistory([]similarweb.VisitPoint{{Date: "2024-01-01", Visits: 5}}, nil)

	if len(points) != 1 || points[0].Date != "2024-01" || points[0].BounceRate != 0 {
		t.Errorf("MergeHistory() = %+v", points)
	}
}

func TestRecentRange(t *testing.T) {
	s := fixedTrafficService(nil)

	r := s.recentRange(12)
	if r.Start != "2023-06" || r.End != "2024-05" {
		t.Errorf("recentRange(12) = %+v, want 2023-06..2024-05", r)
	}
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
