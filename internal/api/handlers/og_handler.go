package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/render"
)

type OGHandler struct{}

func NewOGHandler() *OGHandler {
	return &OGHandler{}
}

// Image godoc
// @Summary Imagem Open Graph
// @Description Gera o card PNG 1200x630 usado no compartilhamento de links.
// @Tags og
// @Produce png
// @Param title query string false "Título do card" default(AI SEO Analyzer)
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Router /api/og [get]
func (h *OGHandler) Image(c *gin.Context) {
	var buf bytes.Buffer
	if err := render.OGImage(&buf, c.DefaultQuery("title", render.DefaultOGTitle)); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to generate image",
			Details: err.Error(),
		})
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
