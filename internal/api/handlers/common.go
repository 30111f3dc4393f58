package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/httpclient"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/services"
)

// RetryAfterSeconds é o valor do header Retry-After em falhas temporárias
const RetryAfterSeconds = 30

// Nomes usados como prefixo de cache e nas estatísticas
const (
	EndpointAnalyze         = "analyze"
	EndpointBacklinks       = "backlinks"
	EndpointTraffic         = "traffic"
	EndpointTrafficDetailed = "traffic-detailed"
	EndpointMozDA           = "moz-da"
)

// ErrorResponse é o corpo padrão de erro
type ErrorResponse struct {
	Error   string `json:"error" example:"API Error"`
	Details string `json:"details,omitempty" example:"tempo limite excedido"`
}

// cachedEndpoint concentra a leitura/escrita de cache e as estatísticas
// compartilhadas pelos handlers POST.
type cachedEndpoint struct {
	cache *services.CacheGateway
	stats *services.StatsService
}

// lookup procura a chave no cache e registra hit ou miss
func (e cachedEndpoint) lookup(ctx context.Context, endpoint, key string, out any) bool {
	if e.cache == nil {
		e.record(ctx, endpoint, services.OutcomeMiss)
		return false
	}

	if e.cache.Get(ctx, key, out) {
		e.record(ctx, endpoint, services.OutcomeHit)
		return true
	}

	e.record(ctx, endpoint, services.OutcomeMiss)
	return false
}

func (e cachedEndpoint) store(ctx context.Context, key string, value any) {
	if e.cache != nil {
		e.cache.Set(ctx, key, value)
	}
}

// storeComplete só grava resultados em que todos os provedores responderam,
// para que uma falha passageira não fique no cache até o TTL expirar
func (e cachedEndpoint) storeComplete(ctx context.Context, endpoint, key string, value any, degraded bool) {
	if degraded {
		log.Printf("[%s] resultado parcial para %s, não armazenado em cache", endpoint, key)
		return
	}
	e.store(ctx, key, value)
}

func (e cachedEndpoint) record(ctx context.Context, endpoint string, outcome services.Outcome) {
	if e.stats != nil {
		e.stats.Record(ctx, endpoint, outcome)
	}
}

// bindAnalysisRequest lê e valida o corpo {url, keyword?}.
// Em caso de erro a resposta 400 já foi escrita.
func bindAnalysisRequest(c *gin.Context, validate *validator.Validate) (*models.AnalysisRequest, bool) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return nil, false
	}

	if err := req.Normalize(); err != nil {
		switch {
		case errors.Is(err, models.ErrURLRequired):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "URL is required"})
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid URL", Details: err.Error()})
		}
		return nil, false
	}

	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: err.Error()})
		return nil, false
	}

	return &req, true
}

// respondError classifica a falha: temporária vira 503 com Retry-After,
// o resto vira 500.
func respondError(c *gin.Context, endpoint string, err error) {
	_ = c.Error(err)
	log.Printf("[%s] erro: %v", endpoint, err)

	if httpclient.IsRetryable(err) {
		c.Header("Retry-After", strconv.Itoa(RetryAfterSeconds))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "Service temporarily unavailable",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "API Error",
		Details: err.Error(),
	})
}
