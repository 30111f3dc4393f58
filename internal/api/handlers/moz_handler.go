package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/services"
)

type DomainAuthorityScraper interface {
	DomainAuthority(ctx context.Context, domain string) (int, error)
}

// MozDAResponse traz a pontuação raspada; nulo quando a consulta está desabilitada
type MozDAResponse struct {
	DA *int `json:"da"`
}

type MozHandler struct {
	scraper   DomainAuthorityScraper
	stats     *services.StatsService
	validator *validator.Validate
}

// NewMozHandler cria o handler. scraper nil desabilita a consulta.
func NewMozHandler(scraper DomainAuthorityScraper, stats *services.StatsService) *MozHandler {
	return &MozHandler{
		scraper:   scraper,
		stats:     stats,
		validator: validator.New(),
	}
}

// MozDA godoc
// @Summary Domain Authority da Moz
// @Description Consulta a página pública da Moz e extrai o DA do domínio. Não usa cache.
// @Tags backlinks
// @Accept json
// @Produce json
// @Param request body models.AnalysisRequest true "URL do site"
// @Success 200 {object} MozDAResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/moz-da [post]
func (h *MozHandler) MozDA(c *gin.Context) {
	req, ok := bindAnalysisRequest(c, h.validator)
	if !ok {
		return
	}

	if h.scraper == nil {
		c.JSON(http.StatusOK, MozDAResponse{DA: nil})
		return
	}

	ctx := c.Request.Context()
	da, err := h.scraper.DomainAuthority(ctx, req.Domain())
	if err != nil {
		if h.stats != nil {
			h.stats.Record(ctx, EndpointMozDA, services.OutcomeError)
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to extract DA score from Moz",
			Details: err.Error(),
		})
		return
	}

	if h.stats != nil {
		h.stats.Record(ctx, EndpointMozDA, services.OutcomeMiss)
	}
	c.JSON(http.StatusOK, MozDAResponse{DA: &da})
}
