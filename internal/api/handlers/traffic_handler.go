package handlers

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/render"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/services"
)

type TrafficAggregator interface {
	Snapshot(ctx context.Context, domain string) models.TrafficSnapshot
	Detailed(ctx context.Context, domain string) models.DetailedTraffic
}

type TrafficHandler struct {
	cachedEndpoint
	aggregator TrafficAggregator
	validator  *validator.Validate
	now        func() time.Time
}

func NewTrafficHandler(aggregator TrafficAggregator, cache *services.CacheGateway, stats *services.StatsService) *TrafficHandler {
	return &TrafficHandler{
		cachedEndpoint: cachedEndpoint{cache: cache, stats: stats},
		aggregator:     aggregator,
		validator:      validator.New(),
		now:            time.Now,
	}
}

// Snapshot godoc
// @Summary Tráfego atual do domínio
// @Description Ranking, categoria, visitas e engajamento do último mês (SimilarWeb). Falhas do provedor retornam valores zerados.
// @Tags traffic
// @Accept json
// @Produce json
// @Param request body models.AnalysisRequest true "URL do site"
// @Success 200 {object} models.TrafficResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/traffic [post]
func (h *TrafficHandler) Snapshot(c *gin.Context) {
	req, ok := bindAnalysisRequest(c, h.validator)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	key := h.cache.Key(EndpointTraffic, req.Domain())

	var cached models.TrafficResponse
	if h.lookup(ctx, EndpointTraffic, key, &cached) {
		cached.Cached = true
		c.JSON(http.StatusOK, cached)
		return
	}

	response := models.TrafficResponse{
		TrafficSnapshot: h.aggregator.Snapshot(ctx, req.Domain()),
		Timestamp:       h.now().UTC().Format(time.RFC3339),
	}
	h.storeComplete(ctx, EndpointTraffic, key, response, response.Degraded)

	c.JSON(http.StatusOK, response)
}

// Detailed godoc
// @Summary Tráfego detalhado do domínio
// @Description Snapshot atual, histórico mensal, concorrentes (até 5) e tendências entre os dois últimos meses.
// @Tags traffic
// @Accept json
// @Produce json
// @Param request body models.AnalysisRequest true "URL do site"
// @Success 200 {object} models.DetailedTraffic
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/traffic/detailed [post]
func (h *TrafficHandler) Detailed(c *gin.Context) {
	req, ok := bindAnalysisRequest(c, h.validator)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	detailed, _ := h.detailed(ctx, req.Domain())
	c.JSON(http.StatusOK, detailed)
}

// Chart godoc
// @Summary Gráficos de tráfego
// @Description Página HTML com a evolução de visitas e o comparativo de concorrentes.
// @Tags traffic
// @Produce html
// @Param url query string true "URL do site"
// @Success 200 {string} string "HTML"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/traffic/chart [get]
func (h *TrafficHandler) Chart(c *gin.Context) {
	req := models.AnalysisRequest{URL: c.Query("url")}
	if err := req.Normalize(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid URL", Details: err.Error()})
		return
	}

	detailed, _ := h.detailed(c.Request.Context(), req.Domain())

	var buf bytes.Buffer
	if err := render.TrafficCharts(&buf, req.Domain(), &detailed); err != nil {
		respondError(c, "TrafficChart", err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// detailed consulta o cache do endpoint detalhado antes de chamar o agregador
func (h *TrafficHandler) detailed(ctx context.Context, domain string) (models.DetailedTraffic, bool) {
	key := h.cache.Key(EndpointTrafficDetailed, domain)

	var cached models.DetailedTraffic
	if h.lookup(ctx, EndpointTrafficDetailed, key, &cached) {
		cached.Cached = true
		return cached, true
	}

	detailed := h.aggregator.Detailed(ctx, domain)
	detailed.Cached = false
	h.storeComplete(ctx, EndpointTrafficDetailed, key, detailed, detailed.Degraded)
	return detailed, false
}
