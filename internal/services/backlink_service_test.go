package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
)

type fakeSource struct {
	name    string
	records []models.BacklinkRecord
	err     error
	domain  string
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Backlinks(ctx context.Context, domain string) ([]models.BacklinkRecord, error) {
	f.domain = domain
	return f.records, f.err
}

func rec(url, source string) models.BacklinkRecord {
	return models.BacklinkRecord{URL: url, Title: url, Source: source}
}

func TestAggregateDedupesWithGooglePrecedence(t *testing.T) {
	google := &fakeSource{name: models.BacklinkSourceGoogle, records: []models.BacklinkRecord{
		rec("https://a.com/post", models.BacklinkSourceGoogle),
		rec("https://b.com", models.BacklinkSourceGoogle),
	}}
	serp := &fakeSource{name: models.BacklinkSourceSerp, records: []models.BacklinkRecord{
		rec("https://B.com", models.BacklinkSourceSerp),
		rec("https://c.com", models.BacklinkSourceSerp),
		rec("https://d.com", models.BacklinkSourceSerp),
	}}

	report := NewBacklinkService(google, serp).Aggregate(context.Background(), "https://www.example.com/page")

	if google.domain != "example.com" || serp.domain != "example.com" {
		t.Errorf("providers received %q / %q, want example.com", google.domain, serp.domain)
	}
	if report.TotalBacklinks != 4 {
		t.Fatalf("TotalBacklinks = %d, want 4", report.TotalBacklinks)
	}
	if report.Backlinks[1].Source != models.BacklinkSourceGoogle {
		t.Errorf("duplicate should keep google record, got %+v", report.Backlinks[1])
	}
	if report.Sources.Google != 2 || report.Sources.Serp != 3 {
		t.Errorf("Sources = %+v, want google=2 serp=3", report.Sources)
	}
	if report.DAScore != DomainAuthority(4) {
		t.Errorf("DAScore = %d, want %d", report.DAScore, DomainAuthority(4))
	}
	if report.Degraded {
		t.Error("report with every source answering should not be degraded")
	}
}

func TestAggregateToleratesProviderFailure(t *testing.T) {
	google := &fakeSource{name: models.BacklinkSourceGoogle, err: errors.New("HTTP 500")}
	serp := &fakeSource{name: models.BacklinkSourceSerp, records: []models.BacklinkRecord{
		rec("https://x.com", models.BacklinkSourceSerp),
	}}

	report := NewBacklinkService(google, serp).Aggregate(context.Background(), "example.com")

	if report.TotalBacklinks != 1 || report.Backlinks[0].URL != "https://x.com" {
		t.Errorf("unexpected report: %+v", report)
	}
	if !report.Degraded {
		t.Error("report with a failed source should be degraded")
	}
}

func TestAggregateWithoutProviders(t *testing.T) {
	report := NewBacklinkService().Aggregate(context.Background(), "example.com")

	if report.TotalBacklinks != 0 || len(report.Backlinks) != 0 {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.Backlinks == nil {
		t.Error("Backlinks should be an empty list, not nil")
	}
	if report.DAScore != DomainAuthority(0) {
		t.Errorf("DAScore = %d", report.DAScore)
	}
	if !report.Degraded {
		t.Error("report without sources should be degraded")
	}
}

func TestDedupeBacklinks(t *testing.T) {
	got := DedupeBacklinks(
		[]models.BacklinkRecord{rec("https://A.com", "google"), rec("", "google")},
		[]models.BacklinkRecord{rec("https://a.com", "serp"), rec(" https://a.com ", "serp")},
	)
	if len(got) != 1 || got[0].Source != "google" {
		t.Errorf("DedupeBacklinks() = %+v", got)
	}
}

func TestDomainAuthority(t *testing.T) {
	tests := []struct {
		count    int
		expected int
	}{
		{0, 1},
		{1, 6},
		{4, 14},
		{9, 20},
		{99, 40},
		{99999, 100},
		{1 << 40, 100},
		{-3, 1},
	}

	for _, tt := range tests {
		if got := DomainAuthority(tt.count); got != tt.expected {
			t.Errorf("DomainAuthority(%d) = %d, want %d", tt.count, got, tt.expected)
		}
	}
}

func TestDomainAuthorityIsMonotonicAndBounded(t *testing.T) {
	prev := DomainAuthority(0)
	for n := 1; n <= 5000; n++ {
		score := DomainAuthority(n)
		if score < prev {
			t.Fatalf("DomainAuthority(%d) = %d < DomainAuthority(%d) = %d", n, score, n-1, prev)
		}
		if score < 0 || score > 100 {
			t.Fatalf("DomainAuthority(%d) = %d out of range", n, score)
		}
		prev = score
	}
}
