package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/api/handlers"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/config"
	middlewares "github.com/prefeitura-rio/app-seo-analyzer/internal/middleware"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/services"
)

// Dependencies reúne os serviços já construídos em main
type Dependencies struct {
	Analyzer    handlers.Analyzer
	Backlinks   handlers.BacklinkAggregator
	Traffic     handlers.TrafficAggregator
	Moz         handlers.DomainAuthorityScraper
	Cache       *services.CacheGateway
	Stats       *services.StatsService
	History     *services.HistoryService
	Reports     *services.ReportService
	RateLimiter *middlewares.RateLimiter
}

func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middlewares.Recovery())
	r.Use(middlewares.CORS())
	r.Use(middlewares.RequestTiming())

	healthHandler := handlers.NewHealthHandler(deps.Cache, deps.Stats, capabilities(cfg))
	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)
	r.GET("/health", healthHandler.Health)

	analyzeHandler := handlers.NewAnalyzeHandler(deps.Analyzer, deps.Cache, deps.Stats, deps.History, deps.Reports)
	backlinkHandler := handlers.NewBacklinkHandler(deps.Backlinks, deps.Cache, deps.Stats)
	trafficHandler := handlers.NewTrafficHandler(deps.Traffic, deps.Cache, deps.Stats)
	mozHandler := handlers.NewMozHandler(deps.Moz, deps.Stats)
	ogHandler := handlers.NewOGHandler()
	historyHandler := handlers.NewHistoryHandler(deps.History)
	reportHandler := handlers.NewReportHandler(deps.Reports)
	statisticsHandler := handlers.NewStatisticsHandler(deps.Stats)

	api := r.Group("/api/v1")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware())
	}
	{
		api.POST("/analyze", analyzeHandler.Analyze)
		api.POST("/backlinks", backlinkHandler.Backlinks)
		api.POST("/traffic", trafficHandler.Snapshot)
		api.POST("/traffic/detailed", trafficHandler.Detailed)
		api.GET("/traffic/chart", trafficHandler.Chart)
		api.POST("/moz-da", mozHandler.MozDA)
		api.GET("/history", historyHandler.History)
		api.GET("/reports", reportHandler.Search)
		api.GET("/statistics", statisticsHandler.Statistics)
	}

	r.GET("/api/og", ogHandler.Image)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func capabilities(cfg *config.Config) map[string]bool {
	return map[string]bool{
		"llm_primary":  cfg.LLM.ProviderEnabled(cfg.LLM.Primary),
		"llm_fallback": cfg.LLM.FallbackEnabled(),
		"google_cse":   cfg.Search.GoogleEnabled(),
		"serpapi":      cfg.Search.SerpEnabled(),
		"similarweb":   cfg.Traffic.Enabled(),
		"moz":          cfg.Moz.Enabled,
		"redis":        cfg.Cache.RedisEnabled(),
		"postgres":     cfg.Stats.PostgresEnabled(),
		"typesense":    cfg.Reports.Enabled(),
	}
}
