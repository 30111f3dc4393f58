package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/services"
)

type StatisticsHandler struct {
	stats *services.StatsService
}

func NewStatisticsHandler(stats *services.StatsService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats}
}

// Statistics godoc
// @Summary Estatísticas de uso
// @Description Hits e misses de cache e erros por endpoint no mês corrente.
// @Tags statistics
// @Produce json
// @Success 200 {object} models.UsageStats
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/statistics [get]
func (h *StatisticsHandler) Statistics(c *gin.Context) {
	stats, err := h.stats.Current(c.Request.Context())
	if err != nil {
		respondError(c, "Statistics", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
