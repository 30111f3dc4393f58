package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/services"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Search godoc
// @Summary Busca no arquivo de relatórios
// @Description Busca análises arquivadas por domínio, palavra-chave ou conteúdo, mais recentes primeiro. Retorna enabled=false quando o Typesense não está configurado.
// @Tags reports
// @Produce json
// @Param q query string false "Termo de busca" default(*)
// @Param page query int false "Página" default(1)
// @Param per_page query int false "Resultados por página (máx. 50)" default(10)
// @Success 200 {object} models.ReportSearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/reports [get]
func (h *ReportHandler) Search(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Parâmetro 'page' inválido", Details: err.Error()})
		return
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Parâmetro 'per_page' inválido", Details: err.Error()})
		return
	}

	response, err := h.reports.Search(c.Request.Context(), c.Query("q"), page, perPage)
	if err != nil {
		respondError(c, "Reports", err)
		return
	}

	c.JSON(http.StatusOK, response)
}
