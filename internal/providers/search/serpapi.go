package search

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/httpclient"
)

const serpResultsPerQuery = 100

// SerpSource usa o SerpAPI com engine google
type SerpSource struct {
	client  *httpclient.Client
	apiKey  string
	baseURL string
}

func NewSerpSource(apiKey, baseURL string, timeout time.Duration) *SerpSource {
	return &SerpSource{
		client:  httpclient.New("serpapi", timeout),
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

func (s *SerpSource) Name() string { return models.BacklinkSourceSerp }

type serpResponse struct {
	OrganicResults []resultItem `json:"organic_results"`
}

func (s *SerpSource) Backlinks(ctx context.Context, domain string) ([]models.BacklinkRecord, error) {
	query := url.Values{}
	query.Set("engine", "google")
	query.Set("q", "link:"+domain)
	query.Set("api_key", s.apiKey)
	query.Set("num", fmt.Sprintf("%d", serpResultsPerQuery))

	var resp serpResponse
	if _, err := s.client.DoJSON(ctx, httpclient.Request{URL: s.baseURL, Query: query}, &resp); err != nil {
		return nil, err
	}

	return toRecords(resp.OrganicResults, models.BacklinkSourceSerp), nil
}
