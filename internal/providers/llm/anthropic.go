package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/httpclient"
)

const anthropicVersion = "2023-06-01"

// AnthropicProvider usa a Messages API via HTTP
type AnthropicProvider struct {
	client  *httpclient.Client
	apiKey  string
	baseURL string
	models  []string
}

func NewAnthropicProvider(apiKey, baseURL string, models []string, timeout time.Duration) *AnthropicProvider {
	return &AnthropicProvider{
		client:  httpclient.New("anthropic", timeout),
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		models:  models,
	}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) PreferredModels() []string { return p.models }

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (r *anthropicResponse) Validate() error {
	if len(r.Content) == 0 || strings.TrimSpace(r.Content[0].Text) == "" {
		return errors.New("content[0].text ausente")
	}
	return nil
}

func (p *AnthropicProvider) headers() map[string]string {
	return map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": anthropicVersion,
	}
}

func (p *AnthropicProvider) Generate(ctx context.Context, model string, prompt Prompt) (Completion, error) {
	maxTokens := prompt.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	var resp anthropicResponse
	_, err := p.client.DoJSON(ctx, httpclient.Request{
		Method:  http.MethodPost,
		URL:     p.baseURL + "/v1/messages",
		Headers: p.headers(),
		Body: anthropicRequest{
			Model:       model,
			MaxTokens:   maxTokens,
			System:      prompt.System,
			Temperature: DefaultTemperature,
			Messages:    []anthropicMessage{{Role: "user", Content: prompt.User}},
		},
	}, &resp)
	if err != nil {
		return Completion{}, classifyQuota(p.Name(), err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "" || block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	if resp.Model != "" {
		model = resp.Model
	}

	return Completion{Text: strings.TrimSpace(sb.String()), Model: model, Provider: p.Name()}, nil
}

type anthropicModelList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (p *AnthropicProvider) ListModels(ctx context.Context) ([]string, error) {
	var list anthropicModelList
	if _, err := p.client.DoJSON(ctx, httpclient.Request{
		URL:     p.baseURL + "/v1/models",
		Headers: p.headers(),
	}, &list); err != nil {
		return nil, err
	}

	models := make([]string, 0, len(list.Data))
	for _, m := range list.Data {
		models = append(models, m.ID)
	}
	return models, nil
}
