// Package similarweb consulta a API de tráfego da SimilarWeb.
package similarweb

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/httpclient"
)

const unknownCategory = "Unknown"

type Client struct {
	client  *httpclient.Client
	apiKey  string
	baseURL string
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		client:  httpclient.New("similarweb", timeout),
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type rankValue struct {
	Rank int `json:"Rank"`
}

// GeneralData é o resumo do site em general-data/all
type GeneralData struct {
	GlobalRank  rankValue `json:"GlobalRank"`
	CountryRank rankValue `json:"CountryRank"`
	Category    string    `json:"Category"`
}

// VisitPoint é uma amostra mensal de visitas
type VisitPoint struct {
	Date   string  `json:"date"`
	Visits float64 `json:"visits"`
}

// EngagementPoint é uma amostra mensal de engajamento
type EngagementPoint struct {
	Date                 string  `json:"date"`
	BounceRate           float64 `json:"bounce_rate"`
	PagesPerVisit        float64 `json:"pages_per_visit"`
	AverageVisitDuration float64 `json:"average_visit_duration"`
}

// Range delimita uma série mensal no formato YYYY-MM
type Range struct {
	Start string
	End   string
}

func (c *Client) endpoint(domain, path string) string {
	return c.baseURL + "/" + url.PathEscape(domain) + "/" + path
}

func (c *Client) query(r *Range) url.Values {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	if r != nil {
		q.Set("start_date", r.Start)
		q.Set("end_date", r.End)
		q.Set("granularity", "monthly")
	}
	return q
}

func (c *Client) GeneralData(ctx context.Context, domain string) (GeneralData, error) {
	var data GeneralData
	_, err := c.client.DoJSON(ctx, httpclient.Request{
		URL:   c.endpoint(domain, "general-data/all"),
		Query: c.query(nil),
	}, &data)
	if err != nil {
		return GeneralData{}, err
	}

	if data.Category == "" {
		data.Category = unknownCategory
	}
	return data, nil
}

func (c *Client) Visits(ctx context.Context, domain string, r Range) ([]VisitPoint, error) {
	var resp struct {
		Visits []VisitPoint `json:"visits"`
	}
	_, err := c.client.DoJSON(ctx, httpclient.Request{
		URL:   c.endpoint(domain, "total-traffic-and-engagement/visits"),
		Query: c.query(&r),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Visits, nil
}

// Engagement aceita tanto um array puro quanto o envelope {"engagement": [...]}
func (c *Client) Engagement(ctx context.Context, domain string, r Range) ([]EngagementPoint, error) {
	resp, err := c.client.Do(ctx, httpclient.Request{
		URL:   c.endpoint(domain, "traffic-and-engagement/engagement-metrics"),
		Query: c.query(&r),
	})
	if err != nil {
		return nil, err
	}

	var points []EngagementPoint
	if err := json.Unmarshal(resp.Body, &points); err == nil {
		return points, nil
	}

	var envelope struct {
		Engagement []EngagementPoint `json:"engagement"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, &httpclient.FormatError{Provider: "similarweb", Reason: "malformed engagement metrics", Err: err}
	}
	return envelope.Engagement, nil
}

func (c *Client) Competitors(ctx context.Context, domain string) ([]models.CompetitorRecord, error) {
	var resp struct {
		Domains []models.CompetitorRecord `json:"domains"`
	}
	_, err := c.client.DoJSON(ctx, httpclient.Request{
		URL:   c.endpoint(domain, "competitors/domains"),
		Query: c.query(nil),
	}, &resp)
	if err != nil {
		return nil, err
	}

	competitors := make([]models.CompetitorRecord, 0, len(resp.Domains))
	for _, d := range resp.Domains {
		if d.Domain == "" {
			continue
		}
		if d.Category == "" {
			d.Category = unknownCategory
		}
		competitors = append(competitors, d)
	}
	return competitors, nil
}
