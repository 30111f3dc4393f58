package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/services"
)

type BacklinkAggregator interface {
	Aggregate(ctx context.Context, domain string) *models.BacklinkReport
}

type BacklinkHandler struct {
	cachedEndpoint
	aggregator BacklinkAggregator
	validator  *validator.Validate
}

func NewBacklinkHandler(aggregator BacklinkAggregator, cache *services.CacheGateway, stats *services.StatsService) *BacklinkHandler {
	return &BacklinkHandler{
		cachedEndpoint: cachedEndpoint{cache: cache, stats: stats},
		aggregator:     aggregator,
		validator:      validator.New(),
	}
}

// Backlinks godoc
// @Summary Backlinks e autoridade de domínio
// @Description Agrega backlinks do Google CSE e da SerpAPI, remove duplicados e estima o DA (0-100).
// @Tags backlinks
// @Accept json
// @Produce json
// @Param request body models.AnalysisRequest true "URL do site"
// @Success 200 {object} models.BacklinkReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/backlinks [post]
func (h *BacklinkHandler) Backlinks(c *gin.Context) {
	req, ok := bindAnalysisRequest(c, h.validator)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	key := h.cache.Key(EndpointBacklinks, req.Domain())

	var cached models.BacklinkReport
	if h.lookup(ctx, EndpointBacklinks, key, &cached) {
		cached.Cached = true
		c.JSON(http.StatusOK, cached)
		return
	}

	report := h.aggregator.Aggregate(ctx, req.Domain())
	report.Cached = false
	h.storeComplete(ctx, EndpointBacklinks, key, report, report.Degraded)

	c.JSON(http.StatusOK, report)
}
