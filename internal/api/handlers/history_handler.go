package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/services"
)

// HistoryResponse lista as análises mais recentes
type HistoryResponse struct {
	History []models.HistoryEntry `json:"history"`
}

type HistoryHandler struct {
	history *services.HistoryService
}

func NewHistoryHandler(history *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// History godoc
// @Summary Histórico de análises
// @Description Últimas 10 análises solicitadas, mais recente primeiro.
// @Tags analysis
// @Produce json
// @Success 200 {object} HistoryResponse
// @Router /api/v1/history [get]
func (h *HistoryHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, HistoryResponse{History: h.history.List(c.Request.Context())})
}
