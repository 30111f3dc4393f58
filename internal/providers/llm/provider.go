// Package llm reúne os provedores de linguagem usados na análise de SEO.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/httpclient"
)

const (
	DefaultMaxTokens   = 4000
	DefaultTemperature = 0.7
)

// Prompt é a entrada de uma geração
type Prompt struct {
	System    string
	User      string
	MaxTokens int
}

type Completion struct {
	Text     string
	Model    string
	Provider string
}

type Provider interface {
	Name() string
	// PreferredModels lista os modelos em ordem de preferência
	PreferredModels() []string
	Generate(ctx context.Context, model string, prompt Prompt) (Completion, error)
}

// ModelLister é implementado por provedores que expõem a listagem de modelos
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// QuotaError indica créditos ou cota esgotados. Não adianta repetir a chamada.
type QuotaError struct {
	Provider string
	Err      error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s: cota esgotada: %v", e.Provider, e.Err)
}

func (e *QuotaError) Unwrap() error { return e.Err }

func IsQuotaError(err error) bool {
	var quotaErr *QuotaError
	return errors.As(err, &quotaErr)
}

// SelectModel devolve o primeiro modelo preferido disponível no provedor.
// Se a listagem falhar ou nenhum preferido existir, usa o primeiro da lista.
func SelectModel(ctx context.Context, p Provider) string {
	preferred := p.PreferredModels()
	if len(preferred) == 0 {
		return ""
	}

	lister, ok := p.(ModelLister)
	if !ok {
		return preferred[0]
	}

	available, err := lister.ListModels(ctx)
	if err != nil {
		log.Printf("[LLM] %s: erro ao listar modelos, usando %s: %v", p.Name(), preferred[0], err)
		return preferred[0]
	}

	set := make(map[string]struct{}, len(available))
	for _, m := range available {
		set[m] = struct{}{}
	}
	for _, m := range preferred {
		if _, ok := set[m]; ok {
			return m
		}
	}

	log.Printf("[LLM] %s: nenhum modelo preferido disponível, usando %s", p.Name(), preferred[0])
	return preferred[0]
}

// classifyQuota converte HTTP 402 ou mensagens sobre crédito/cota em *QuotaError
func classifyQuota(provider string, err error) error {
	if err == nil {
		return nil
	}

	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Status == http.StatusPaymentRequired || mentionsQuota(httpErr.Body) {
			return &QuotaError{Provider: provider, Err: err}
		}
		return err
	}

	if mentionsQuota(err.Error()) {
		return &QuotaError{Provider: provider, Err: err}
	}
	return err
}

func mentionsQuota(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "credit") || strings.Contains(lower, "quota")
}
