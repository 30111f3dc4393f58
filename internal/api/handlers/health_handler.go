package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StorageChecker é um armazenamento verificado pelos health checks
type StorageChecker interface {
	Ping(ctx context.Context) error
	StoreName() string
}

// HealthHandler gerencia os endpoints de health check.
// O cache é obrigatório para servir tráfego; as estatísticas apenas degradam.
type HealthHandler struct {
	cache        StorageChecker
	stats        StorageChecker
	capabilities map[string]bool
}

func NewHealthHandler(cache, stats StorageChecker, capabilities map[string]bool) *HealthHandler {
	return &HealthHandler{cache: cache, stats: stats, capabilities: capabilities}
}

// HealthResponse representa a resposta do health check
type HealthResponse struct {
	Status    string            `json:"status" enums:"alive,ready,not_ready,healthy,degraded,unhealthy"`
	Checks    map[string]string `json:"checks,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Liveness godoc
// @Summary Liveness check endpoint
// @Description Confirma que o processo responde, sem consultar dependências
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().Unix(),
	})
}

// Readiness godoc
// @Summary Readiness check endpoint
// @Description Pronto quando o armazenamento de cache responde
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	if !checkStore(ctx, "cache", h.cache, checks) {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:    "not_ready",
			Checks:    checks,
			Error:     "cache " + h.cache.StoreName() + " indisponível",
			Timestamp: time.Now().Unix(),
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{Status: "ready", Checks: checks, Timestamp: time.Now().Unix()})
}

// Health godoc
// @Summary Comprehensive health check endpoint
// @Description Verifica cache e estatísticas e lista quais provedores externos estão configurados. Falha nas estatísticas resulta em "degraded" com 200.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Checks:    make(map[string]string, len(h.capabilities)+2),
		Timestamp: time.Now().Unix(),
	}

	for name, enabled := range h.capabilities {
		if enabled {
			response.Checks[name] = "configured"
		} else {
			response.Checks[name] = "disabled"
		}
	}

	if h.stats != nil && !checkStore(ctx, "stats", h.stats, response.Checks) {
		response.Status = "degraded"
		response.Error = "estatísticas " + h.stats.StoreName() + " indisponíveis"
	}

	statusCode := http.StatusOK
	if !checkStore(ctx, "cache", h.cache, response.Checks) {
		response.Status = "unhealthy"
		response.Error = "Cache connectivity check failed"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// checkStore registra "ok" ou "failed" em checks sob a chave name
func checkStore(ctx context.Context, name string, p StorageChecker, checks map[string]string) bool {
	if err := p.Ping(ctx); err != nil {
		log.Printf("[Health] %s (%s) falhou: %v", name, p.StoreName(), err)
		checks[name] = "failed"
		return false
	}
	checks[name] = "ok"
	return true
}
