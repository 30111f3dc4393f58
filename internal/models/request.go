package models

import (
	"strings"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/utils"
)

// AnalysisRequest é o corpo aceito por todos os endpoints POST de análise.
// @Description URL do site a ser analisado e palavra-chave opcional.
type AnalysisRequest struct {
	// URL do site (obrigatório). O esquema é opcional.
	URL string `json:"url" validate:"required,max=2048" example:"https://example.com"`
	// Palavra-chave alvo (opcional)
	Keyword string `json:"keyword,omitempty" validate:"max=200" example:"consultoria seo"`

	normalizedURL string
}

// Normalize valida a sintaxe da URL e guarda a forma canônica.
// Deve ser chamado antes de Domain, NormalizedURL e CacheKeyPart.
func (r *AnalysisRequest) Normalize() error {
	r.URL = strings.TrimSpace(r.URL)
	r.Keyword = strings.TrimSpace(r.Keyword)

	if r.URL == "" {
		return ErrURLRequired
	}

	normalized, ok := utils.NormalizeURL(r.URL)
	if !ok {
		return ErrInvalidURL
	}
	r.normalizedURL = normalized

	return nil
}

// NormalizedURL retorna a URL canônica (com esquema)
func (r *AnalysisRequest) NormalizedURL() string {
	if r.normalizedURL == "" {
		return r.URL
	}
	return r.normalizedURL
}

// Domain retorna o host sem protocolo, "www." e caminho
func (r *AnalysisRequest) Domain() string {
	return utils.ExtractDomain(r.NormalizedURL())
}

// CacheKeyPart identifica a requisição para fins de cache.
// Endpoints por domínio (backlinks, tráfego) devem usar Domain.
func (r *AnalysisRequest) CacheKeyPart() string {
	return r.NormalizedURL() + "|" + utils.NormalizeKeyword(r.Keyword)
}
