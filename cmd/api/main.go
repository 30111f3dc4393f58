package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/prefeitura-rio/app-seo-analyzer/docs"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/api/routes"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/config"
	middlewares "github.com/prefeitura-rio/app-seo-analyzer/internal/middleware"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/observability"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/llm"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/moz"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/retry"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/search"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/similarweb"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/services"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/typesense"
)

// @title           SEO Analyzer API
// @version         1.0
// @description     API de análise de SEO com LLM, backlinks, autoridade de domínio e tráfego via SimilarWeb
// @termsOfService  http://swagger.io/terms/

// @contact.name   Prefeitura do Rio de Janeiro
// @contact.url    https://prefeitura.rio
// @contact.email  contato@prefeitura.rio

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      services.staging.app.dados.rio/app-seo-analyzer

func main() {
	cfg := config.LoadConfig()
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	observability.InitTracer(ctx, cfg.Tracing)

	var closers []func() error

	// Cache e histórico compartilham o mesmo cliente Redis quando disponível
	var (
		cacheStore   services.Store
		historyStore services.HistoryStore
	)
	if cfg.Cache.RedisEnabled() {
		client, err := services.NewRedisClient(cfg.Cache.RedisURL, cfg.Cache.RedisToken)
		if err != nil {
			log.Fatalf("Erro ao configurar Redis: %v", err)
		}
		closers = append(closers, client.Close)
		cacheStore = services.NewRedisStore(client)
		historyStore = services.NewRedisHistoryStore(client, services.HistoryLimit)
		log.Println("[Main] cache e histórico no Redis")
	} else {
		memory := services.NewMemoryStore(cfg.Cache.MaxEntries)
		memory.StartCleanupRoutine(ctx, 10*time.Minute)
		cacheStore = memory
		historyStore = services.NewMemoryHistoryStore(services.HistoryLimit)
	}
	cache := services.NewCacheGateway(cacheStore, cfg.Cache.TTL)
	history := services.NewHistoryService(historyStore)

	var statsStore services.StatsStore = services.NewMemoryStatsStore()
	if cfg.Stats.PostgresEnabled() {
		pg, err := services.NewPostgresStatsStore(ctx, cfg.Stats.DatabaseURL)
		if err != nil {
			log.Printf("[Main] AVISO: Postgres indisponível, estatísticas em memória: %v", err)
		} else {
			closers = append(closers, pg.Close)
			statsStore = pg
		}
	}
	stats := services.NewStatsService(statsStore)

	reports := services.NewReportService(typesense.NewClient(cfg.Reports), cfg.Reports.Collection)

	primary := newLLMProvider(ctx, cfg.LLM, cfg.LLM.Primary, cfg.LLM.AnalysisTimeout)
	var fallback llm.Provider
	if cfg.LLM.FallbackEnabled() {
		fallback = newLLMProvider(ctx, cfg.LLM, cfg.LLM.Fallback, cfg.LLM.AnalysisTimeout)
	}
	analyzer := services.NewAnalysisService(primary, fallback, services.AnalysisOptions{
		Policy: retry.Policy{
			MaxAttempts: cfg.LLM.MaxAttempts,
			BaseDelay:   cfg.LLM.BaseDelay,
			MaxDelay:    cfg.LLM.MaxDelay,
		},
		Timeout:       cfg.LLM.AnalysisTimeout,
		Supplementary: cfg.LLM.SupplementaryEnabled,
	})

	var sources []search.BacklinkSource
	if cfg.Search.GoogleEnabled() {
		sources = append(sources, search.NewGoogleSource(cfg.Search.GoogleAPIKey, cfg.Search.GoogleCX, cfg.Search.GoogleBaseURL, cfg.Provider.Timeout))
	}
	if cfg.Search.SerpEnabled() {
		sources = append(sources, search.NewSerpSource(cfg.Search.SerpAPIKey, cfg.Search.SerpBaseURL, cfg.Provider.Timeout))
	}
	backlinks := services.NewBacklinkService(sources...)

	var trafficSource services.TrafficSource
	if cfg.Traffic.Enabled() {
		trafficSource = similarweb.NewClient(cfg.Traffic.SimilarWebAPIKey, cfg.Traffic.BaseURL, cfg.Provider.Timeout)
	}
	traffic := services.NewTrafficService(trafficSource, cfg.Traffic.HistoryMonths)

	deps := routes.Dependencies{
		Analyzer:  analyzer,
		Backlinks: backlinks,
		Traffic:   traffic,
		Cache:     cache,
		Stats:     stats,
		History:   history,
		Reports:   reports,
	}
	if cfg.Moz.Enabled {
		deps.Moz = moz.NewScraper(cfg.Moz.LookupURL, cfg.Provider.Timeout)
	}
	if cfg.Server.RateLimitRPS > 0 {
		limiter := middlewares.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
		limiter.StartEviction(ctx, time.Minute)
		deps.RateLimiter = limiter
	}

	r := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
		// análises completas podem levar alguns minutos
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.LLM.AnalysisTimeout + 30*time.Second,
	}

	go func() {
		log.Printf("Servidor iniciado na porta %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Erro ao iniciar servidor: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[Main] encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Main] erro no shutdown do servidor: %v", err)
	}
	reports.Wait()
	observability.ShutdownTracer(shutdownCtx)

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("[Main] erro ao fechar conexão: %v", err)
		}
	}
	log.Println("[Main] servidor encerrado")
}

// newLLMProvider devolve nil quando o provedor não tem credencial
func newLLMProvider(ctx context.Context, cfg config.LLMConfig, name string, timeout time.Duration) llm.Provider {
	if !cfg.ProviderEnabled(name) {
		return nil
	}
	switch name {
	case config.ProviderAnthropic:
		return llm.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, cfg.AnthropicModels, timeout)
	case config.ProviderTogether:
		return llm.NewTogetherProvider(cfg.TogetherAPIKey, cfg.TogetherBaseURL, cfg.TogetherModels, timeout)
	case config.ProviderGemini:
		provider, err := llm.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiChatModel)
		if err != nil {
			log.Printf("[Main] AVISO: falha ao criar cliente Gemini: %v", err)
			return nil
		}
		return provider
	}
	return nil
}
