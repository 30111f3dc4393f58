// Package config gerencia configurações da aplicação via variáveis de ambiente.
//
// Nenhuma credencial é obrigatória: provedores sem chave são desabilitados
// na inicialização e os agregadores degradam para resultados vazios.
//
// # Variáveis de Ambiente
//
// ## Servidor
//   - SERVER_PORT: Porta HTTP (default: 8080)
//   - GIN_MODE: Modo do gin (debug, release, test)
//   - RATE_LIMIT_RPS: Requisições por segundo por cliente (default: 2)
//   - RATE_LIMIT_BURST: Rajada máxima por cliente (default: 5)
//
// ## LLM
//   - LLM_PRIMARY_PROVIDER: anthropic, gemini ou together (default: anthropic)
//   - LLM_FALLBACK_PROVIDER: provedor usado quando o primário esgota a cota (default: together, "none" desabilita)
//   - ANTHROPIC_API_KEY / ANTHROPIC_BASE_URL / ANTHROPIC_MODELS
//   - TOGETHER_API_KEY / TOGETHER_BASE_URL / TOGETHER_MODELS
//   - GEMINI_API_KEY / GEMINI_CHAT_MODEL
//   - LLM_MAX_ATTEMPTS: Tentativas por prompt (default: 5)
//   - LLM_BASE_DELAY_MS: Atraso base do backoff (default: 1000)
//   - LLM_MAX_DELAY_SECONDS: Teto do backoff (default: 30)
//   - ANALYSIS_TIMEOUT_SECONDS: Prazo total de uma análise (default: 180)
//   - ANALYSIS_SUPPLEMENTARY_ENABLED: Gera a seção de insights técnicos (default: true)
//   - PROVIDER_TIMEOUT_SECONDS: Timeout de cada chamada HTTP externa (default: 30)
//
// ## Backlinks
//   - GOOGLE_API_KEY / GOOGLE_CX / GOOGLE_CSE_BASE_URL
//   - SERP_API_KEY / SERPAPI_BASE_URL
//
// ## Tráfego
//   - SIMILARWEB_API_KEY / SIMILARWEB_BASE_URL
//   - TRAFFIC_HISTORY_MONTHS: Meses de histórico (default: 12)
//
// ## Moz
//   - MOZ_LOOKUP_URL: Template da página de análise, com %s para o domínio
//   - MOZ_ENABLED: Habilita o scraping (default: true)
//
// ## Cache
//   - REDIS_URL / REDIS_TOKEN: Cache durável; sem eles o cache é em memória
//   - CACHE_MAX_ENTRIES: Capacidade do cache em memória (default: 1000)
//
// ## Estatísticas
//   - DATABASE_URL: DSN Postgres; sem ele as estatísticas ficam em memória
//
// ## Arquivo de relatórios (Typesense)
//   - TYPESENSE_HOST / TYPESENSE_PORT / TYPESENSE_PROTOCOL / TYPESENSE_API_KEY
//   - REPORTS_COLLECTION: Collection dos relatórios (default: seo_reports)
//
// ## Tracing
//   - TRACING_ENABLED / TRACING_ENDPOINT
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// CacheTTL é fixo: resultados de análise valem por 24 horas.
const CacheTTL = 24 * time.Hour

const (
	ProviderAnthropic = "anthropic"
	ProviderTogether  = "together"
	ProviderGemini    = "gemini"
	ProviderNone      = "none"
)

type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Search   SearchConfig
	Traffic  TrafficConfig
	Moz      MozConfig
	Cache    CacheConfig
	Stats    StatsConfig
	Reports  ReportsConfig
	Tracing  TracingConfig
	Provider ProviderConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	RateLimitRPS   float64
	RateLimitBurst int
}

// LLMConfig contém credenciais e política de retry dos provedores de linguagem
type LLMConfig struct {
	Primary  string
	Fallback string

	AnthropicAPIKey  string
	AnthropicBaseURL string
	AnthropicModels  []string

	TogetherAPIKey  string
	TogetherBaseURL string
	TogetherModels  []string

	GeminiAPIKey    string
	GeminiChatModel string

	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	AnalysisTimeout      time.Duration
	SupplementaryEnabled bool
}

type SearchConfig struct {
	GoogleAPIKey  string
	GoogleCX      string
	GoogleBaseURL string
	SerpAPIKey    string
	SerpBaseURL   string
}

type TrafficConfig struct {
	SimilarWebAPIKey string
	BaseURL          string
	HistoryMonths    int
}

type MozConfig struct {
	LookupURL string
	Enabled   bool
}

type CacheConfig struct {
	RedisURL   string
	RedisToken string
	MaxEntries int
	TTL        time.Duration
}

type StatsConfig struct {
	DatabaseURL string
}

type ReportsConfig struct {
	Host       string
	Port       string
	Protocol   string
	APIKey     string
	Collection string
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

// ProviderConfig contém parâmetros comuns às chamadas HTTP externas
type ProviderConfig struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			GinMode:        getEnv("GIN_MODE", ""),
			RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 2),
			RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 5),
		},
		LLM: LLMConfig{
			Primary:  strings.ToLower(getEnv("LLM_PRIMARY_PROVIDER", ProviderAnthropic)),
			Fallback: strings.ToLower(getEnv("LLM_FALLBACK_PROVIDER", ProviderTogether)),

			AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
			AnthropicModels: getEnvList("ANTHROPIC_MODELS", []string{
				"claude-3-opus-20240229",
				"claude-3-5-sonnet-latest",
				"claude-3-haiku-20240307",
			}),

			TogetherAPIKey:  getEnv("TOGETHER_API_KEY", ""),
			TogetherBaseURL: getEnv("TOGETHER_BASE_URL", "https://api.together.xyz"),
			TogetherModels: getEnvList("TOGETHER_MODELS", []string{
				"mistralai/Mixtral-8x7B-Instruct-v0.1",
				"meta-llama/Llama-2-70b-chat-hf",
				"mistralai/Mistral-7B-Instruct-v0.2",
			}),

			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			GeminiChatModel: getEnv("GEMINI_CHAT_MODEL", "gemini-2.0-flash"),

			MaxAttempts: getEnvInt("LLM_MAX_ATTEMPTS", 5),
			BaseDelay:   time.Duration(getEnvInt("LLM_BASE_DELAY_MS", 1000)) * time.Millisecond,
			MaxDelay:    time.Duration(getEnvInt("LLM_MAX_DELAY_SECONDS", 30)) * time.Second,

			AnalysisTimeout:      time.Duration(getEnvInt("ANALYSIS_TIMEOUT_SECONDS", 180)) * time.Second,
			SupplementaryEnabled: getEnvBool("ANALYSIS_SUPPLEMENTARY_ENABLED", true),
		},
		Search: SearchConfig{
			GoogleAPIKey:  getEnv("GOOGLE_API_KEY", ""),
			GoogleCX:      getEnv("GOOGLE_CX", ""),
			GoogleBaseURL: getEnv("GOOGLE_CSE_BASE_URL", "https://www.googleapis.com/customsearch/v1"),
			SerpAPIKey:    getEnv("SERP_API_KEY", ""),
			SerpBaseURL:   getEnv("SERPAPI_BASE_URL", "https://serpapi.com/search"),
		},
		Traffic: TrafficConfig{
			SimilarWebAPIKey: getEnv("SIMILARWEB_API_KEY", ""),
			BaseURL:          getEnv("SIMILARWEB_BASE_URL", "https://api.similarweb.com/v1/website"),
			HistoryMonths:    getEnvInt("TRAFFIC_HISTORY_MONTHS", 12),
		},
		Moz: MozConfig{
			LookupURL: getEnv("MOZ_LOOKUP_URL", "https://moz.com/domain-analysis?site=%s"),
			Enabled:   getEnvBool("MOZ_ENABLED", true),
		},
		Cache: CacheConfig{
			RedisURL:   getEnv("REDIS_URL", ""),
			RedisToken: getEnv("REDIS_TOKEN", ""),
			MaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 1000),
			TTL:        CacheTTL,
		},
		Stats: StatsConfig{
			DatabaseURL: getEnv("DATABASE_URL", ""),
		},
		Reports: ReportsConfig{
			Host:       getEnv("TYPESENSE_HOST", ""),
			Port:       getEnv("TYPESENSE_PORT", "8108"),
			Protocol:   getEnv("TYPESENSE_PROTOCOL", "http"),
			APIKey:     getEnv("TYPESENSE_API_KEY", ""),
			Collection: getEnv("REPORTS_COLLECTION", "seo_reports"),
		},
		Tracing: TracingConfig{
			Enabled:  getEnv("TRACING_ENABLED", "false") == "true",
			Endpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),
		},
		Provider: ProviderConfig{
			Timeout: time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 30)) * time.Second,
		},
	}

	cfg.normalize()
	cfg.logCapabilities()

	return cfg
}

// normalize corrige valores fora de faixa para os defaults
func (c *Config) normalize() {
	if c.LLM.MaxAttempts < 1 {
		c.LLM.MaxAttempts = 5
	}
	if c.LLM.BaseDelay <= 0 {
		c.LLM.BaseDelay = time.Second
	}
	if c.LLM.MaxDelay < c.LLM.BaseDelay {
		c.LLM.MaxDelay = 30 * time.Second
	}
	if c.Cache.MaxEntries < 1 {
		c.Cache.MaxEntries = 1000
	}
	if c.Traffic.HistoryMonths < 2 {
		c.Traffic.HistoryMonths = 12
	}
	if c.LLM.Fallback == c.LLM.Primary {
		c.LLM.Fallback = ProviderNone
	}
}

// logCapabilities registra quais integrações ficam ativas
func (c *Config) logCapabilities() {
	if !c.LLM.ProviderEnabled(c.LLM.Primary) {
		log.Printf("[Config] AVISO: provedor LLM primário %q sem credencial, /analyze vai falhar até que seja configurado", c.LLM.Primary)
	}
	if c.LLM.Fallback != ProviderNone && !c.LLM.ProviderEnabled(c.LLM.Fallback) {
		log.Printf("[Config] AVISO: provedor LLM de fallback %q sem credencial, fallback desabilitado", c.LLM.Fallback)
	}
	if !c.Search.GoogleEnabled() {
		log.Printf("[Config] AVISO: GOOGLE_API_KEY/GOOGLE_CX ausentes, backlinks do Google desabilitados")
	}
	if !c.Search.SerpEnabled() {
		log.Printf("[Config] AVISO: SERP_API_KEY ausente, backlinks do SerpAPI desabilitados")
	}
	if !c.Traffic.Enabled() {
		log.Printf("[Config] AVISO: SIMILARWEB_API_KEY ausente, dados de tráfego serão zerados")
	}
	if !c.Cache.RedisEnabled() {
		log.Printf("[Config] REDIS_URL ausente, usando cache em memória")
	}
	if !c.Stats.PostgresEnabled() {
		log.Printf("[Config] DATABASE_URL ausente, estatísticas em memória")
	}
	if !c.Reports.Enabled() {
		log.Printf("[Config] TYPESENSE_HOST ausente, arquivo de relatórios desabilitado")
	}
}

// ProviderEnabled indica se o provedor LLM informado possui credencial
func (l LLMConfig) ProviderEnabled(name string) bool {
	switch name {
	case ProviderAnthropic:
		return l.AnthropicAPIKey != ""
	case ProviderTogether:
		return l.TogetherAPIKey != ""
	case ProviderGemini:
		return l.GeminiAPIKey != ""
	}
	return false
}

// FallbackEnabled indica se existe um provedor secundário utilizável
func (l LLMConfig) FallbackEnabled() bool {
	return l.Fallback != ProviderNone && l.ProviderEnabled(l.Fallback)
}

func (s SearchConfig) GoogleEnabled() bool {
	return s.GoogleAPIKey != "" && s.GoogleCX != ""
}

func (s SearchConfig) SerpEnabled() bool {
	return s.SerpAPIKey != ""
}

func (t TrafficConfig) Enabled() bool {
	return t.SimilarWebAPIKey != ""
}

func (c CacheConfig) RedisEnabled() bool {
	return c.RedisURL != ""
}

func (s StatsConfig) PostgresEnabled() bool {
	return s.DatabaseURL != ""
}

func (r ReportsConfig) Enabled() bool {
	return r.Host != ""
}

// ServerURL monta a URL do Typesense
func (r ReportsConfig) ServerURL() string {
	return r.Protocol + "://" + r.Host + ":" + r.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvList lê uma lista separada por vírgulas, ignorando itens vazios
func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
