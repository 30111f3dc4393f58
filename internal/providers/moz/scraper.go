// Package moz extrai a Domain Authority publicada na página de análise da Moz.
package moz

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/httpclient"
)

// seletores testados em ordem; o primeiro com um inteiro válido vence
var scoreSelectors = []string{
	".moz-metrics-column .score-value",
	`[data-metric="domain-authority"]`,
	".domain-authority .score",
}

var firstInteger = regexp.MustCompile(`\d+`)

type Scraper struct {
	client    *httpclient.Client
	lookupURL string
}

// NewScraper recebe o template da página de análise, com %s no lugar do domínio
func NewScraper(lookupURL string, timeout time.Duration) *Scraper {
	return &Scraper{
		client:    httpclient.New("moz", timeout),
		lookupURL: lookupURL,
	}
}

// DomainAuthority devolve a DA (0-100) do domínio
func (s *Scraper) DomainAuthority(ctx context.Context, domain string) (int, error) {
	target := s.lookupURL
	if strings.Contains(target, "%s") {
		target = fmt.Sprintf(target, url.QueryEscape(domain))
	}

	resp, err := s.client.Do(ctx, httpclient.Request{
		URL: target,
		Headers: map[string]string{
			"Accept":     "text/html,application/xhtml+xml",
			"User-Agent": "Mozilla/5.0 (compatible; seo-analyzer/1.0)",
		},
	})
	if err != nil {
		return 0, fmt.Errorf("erro ao acessar Moz: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return 0, fmt.Errorf("erro ao interpretar HTML da Moz: %w", err)
	}

	return extractScore(doc)
}

func extractScore(doc *goquery.Document) (int, error) {
	for _, selector := range scoreSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text == "" {
			continue
		}

		match := firstInteger.FindString(text)
		if match == "" {
			continue
		}

		score, err := strconv.Atoi(match)
		if err != nil || score < 0 || score > 100 {
			continue
		}
		return score, nil
	}

	return 0, models.ErrNoScore
}
