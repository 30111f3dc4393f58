package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/services"
)

// Analyzer gera a análise de SEO de uma requisição normalizada
type Analyzer interface {
	Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResult, error)
}

type AnalyzeHandler struct {
	cachedEndpoint
	analyzer  Analyzer
	history   *services.HistoryService
	reports   *services.ReportService
	validator *validator.Validate
}

func NewAnalyzeHandler(analyzer Analyzer, cache *services.CacheGateway, stats *services.StatsService, history *services.HistoryService, reports *services.ReportService) *AnalyzeHandler {
	return &AnalyzeHandler{
		cachedEndpoint: cachedEndpoint{cache: cache, stats: stats},
		analyzer:       analyzer,
		history:        history,
		reports:        reports,
		validator:      validator.New(),
	}
}

// Analyze godoc
// @Summary Análise de SEO com IA
// @Description Gera um relatório de SEO em markdown para a URL, opcionalmente focado em uma palavra-chave. Resultados ficam em cache por 24h.
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.AnalysisRequest true "URL e palavra-chave"
// @Success 200 {object} models.AnalysisResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Falha temporária; ver header Retry-After"
// @Router /api/v1/analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	req, ok := bindAnalysisRequest(c, h.validator)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if h.history != nil {
		h.history.Record(ctx, req.NormalizedURL(), req.Keyword)
	}

	key := h.cache.Key(EndpointAnalyze, req.CacheKeyPart())

	var cached models.AnalysisResult
	if h.lookup(ctx, EndpointAnalyze, key, &cached) {
		cached.Cached = true
		c.JSON(http.StatusOK, cached)
		return
	}

	result, err := h.analyzer.Analyze(ctx, req)
	if err != nil {
		h.record(ctx, EndpointAnalyze, services.OutcomeError)
		respondError(c, EndpointAnalyze, err)
		return
	}

	result.Cached = false
	h.store(ctx, key, result)
	h.reports.ArchiveAsync(ctx, req, result)

	c.JSON(http.StatusOK, result)
}
