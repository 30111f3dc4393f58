package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
)

// GeminiProvider usa o SDK google.golang.org/genai
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar cliente Gemini: %w", err)
	}

	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) PreferredModels() []string { return []string{p.model} }

func (p *GeminiProvider) Generate(ctx context.Context, model string, prompt Prompt) (Completion, error) {
	if p.client == nil {
		return Completion{}, fmt.Errorf("cliente Gemini não inicializado")
	}
	if model == "" {
		model = p.model
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](DefaultTemperature),
	}
	if prompt.System != "" {
		config.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}

	content := genai.NewContentFromText(prompt.User, genai.RoleUser)
	resp, err := p.client.Models.GenerateContent(ctx, model, []*genai.Content{content}, config)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Completion{}, fmt.Errorf("gemini: %w: %w", models.ErrTimeout, err)
		}
		return Completion{}, classifyQuota(p.Name(), fmt.Errorf("gemini: %w", err))
	}

	text := extractGeminiText(resp)
	if strings.TrimSpace(text) == "" {
		return Completion{}, fmt.Errorf("gemini: resposta sem conteúdo")
	}

	return Completion{Text: strings.TrimSpace(text), Model: model, Provider: p.Name()}, nil
}

func extractGeminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
