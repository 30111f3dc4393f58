package search

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/httpclient"
)

const googleResultsPerQuery = 10

// GoogleSource usa a Custom Search JSON API
type GoogleSource struct {
	client  *httpclient.Client
	apiKey  string
	cx      string
	baseURL string
}

func NewGoogleSource(apiKey, cx, baseURL string, timeout time.Duration) *GoogleSource {
	return &GoogleSource{
		client:  httpclient.New("google-cse", timeout),
		apiKey:  apiKey,
		cx:      cx,
		baseURL: baseURL,
	}
}

func (g *GoogleSource) Name() string { return models.BacklinkSourceGoogle }

type googleResponse struct {
	Items []resultItem `json:"items"`
}

func (g *GoogleSource) Backlinks(ctx context.Context, domain string) ([]models.BacklinkRecord, error) {
	query := url.Values{}
	query.Set("key", g.apiKey)
	query.Set("cx", g.cx)
	query.Set("q", fmt.Sprintf("link:%s -site:%s", domain, domain))
	query.Set("num", fmt.Sprintf("%d", googleResultsPerQuery))

	var resp googleResponse
	if _, err := g.client.DoJSON(ctx, httpclient.Request{URL: g.baseURL, Query: query}, &resp); err != nil {
		return nil, err
	}

	return toRecords(resp.Items, models.BacklinkSourceGoogle), nil
}
