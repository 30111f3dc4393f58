package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/httpclient"
)

// TogetherProvider usa a API de chat completions (formato OpenAI) da Together
type TogetherProvider struct {
	client  *httpclient.Client
	apiKey  string
	baseURL string
	models  []string
}

func NewTogetherProvider(apiKey, baseURL string, models []string, timeout time.Duration) *TogetherProvider {
	return &TogetherProvider{
		client:  httpclient.New("together", timeout),
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		models:  models,
	}
}

func (p *TogetherProvider) Name() string { return "together" }

func (p *TogetherProvider) PreferredModels() []string { return p.models }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (r *chatResponse) Validate() error {
	if len(r.Choices) == 0 || strings.TrimSpace(r.Choices[0].Message.Content) == "" {
		return errors.New("choices[0].message.content ausente")
	}
	return nil
}

func (p *TogetherProvider) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + p.apiKey}
}

func (p *TogetherProvider) Generate(ctx context.Context, model string, prompt Prompt) (Completion, error) {
	maxTokens := prompt.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	messages := make([]chatMessage, 0, 2)
	if prompt.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: prompt.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt.User})

	var resp chatResponse
	_, err := p.client.DoJSON(ctx, httpclient.Request{
		Method:  http.MethodPost,
		URL:     p.baseURL + "/v1/chat/completions",
		Headers: p.headers(),
		Body: chatRequest{
			Model:       model,
			Messages:    messages,
			MaxTokens:   maxTokens,
			Temperature: DefaultTemperature,
		},
	}, &resp)
	if err != nil {
		return Completion{}, classifyQuota(p.Name(), err)
	}

	if resp.Model != "" {
		model = resp.Model
	}

	return Completion{Text: strings.TrimSpace(resp.Choices[0].Message.Content), Model: model, Provider: p.Name()}, nil
}

type togetherModel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListModels aceita tanto um array puro quanto o envelope {"data": [...]}
func (p *TogetherProvider) ListModels(ctx context.Context) ([]string, error) {
	resp, err := p.client.Do(ctx, httpclient.Request{
		URL:     p.baseURL + "/v1/models",
		Headers: p.headers(),
	})
	if err != nil {
		return nil, err
	}

	var list []togetherModel
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		var envelope struct {
			Data []togetherModel `json:"data"`
		}
		if err2 := json.Unmarshal(resp.Body, &envelope); err2 != nil {
			return nil, &httpclient.FormatError{Provider: p.Name(), Reason: "malformed model list", Err: err}
		}
		list = envelope.Data
	}

	models := make([]string, 0, len(list))
	for _, m := range list {
		if m.ID != "" {
			models = append(models, m.ID)
		} else if m.Name != "" {
			models = append(models, m.Name)
		}
	}
	return models, nil
}
