package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
)

// Outcome é o resultado de uma requisição do ponto de vista do cache
type Outcome int

const (
	OutcomeHit Outcome = iota
	OutcomeMiss
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	default:
		return "error"
	}
}

// StatsStore persiste contadores mensais por endpoint
type StatsStore interface {
	Increment(ctx context.Context, month, endpoint string, outcome Outcome) error
	Month(ctx context.Context, month string) ([]models.EndpointStats, error)
	Name() string
}

// StatsService contabiliza o uso dos endpoints. Falhas do armazenamento
// nunca afetam a requisição.
type StatsService struct {
	store StatsStore
	now   func() time.Time
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store, now: time.Now}
}

func (s *StatsService) currentMonth() string {
	return s.now().UTC().Format("2006-01")
}

// Record incrementa o contador do endpoint no mês corrente
func (s *StatsService) Record(ctx context.Context, endpoint string, outcome Outcome) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheOpTimeout)
	defer cancel()

	if err := s.store.Increment(ctx, s.currentMonth(), endpoint, outcome); err != nil {
		log.Printf("[Stats] erro ao registrar %s/%s: %v", endpoint, outcome, err)
	}
}

// Current devolve as estatísticas do mês corrente, ordenadas por endpoint
func (s *StatsService) Current(ctx context.Context) (*models.UsageStats, error) {
	month := s.currentMonth()

	endpoints, err := s.store.Month(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler estatísticas de %s: %w", month, err)
	}
	if endpoints == nil {
		endpoints = []models.EndpointStats{}
	}
	sort.Slice(endpoints, func(i, j int) bool {
		return endpoints[i].Endpoint < endpoints[j].Endpoint
	})

	return &models.UsageStats{
		Month:     month,
		Endpoints: endpoints,
		Storage:   s.store.Name(),
	}, nil
}

// Ping verifica o armazenamento quando ele depende de um serviço externo
func (s *StatsService) Ping(ctx context.Context) error {
	if pinger, ok := s.store.(interface{ Ping(context.Context) error }); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

// StoreName identifica o armazenamento em uso
func (s *StatsService) StoreName() string { return s.store.Name() }

func deltas(outcome Outcome) (hits, misses, errs int64) {
	switch outcome {
	case OutcomeHit:
		return 1, 0, 0
	case OutcomeMiss:
		return 0, 1, 0
	default:
		return 0, 0, 1
	}
}

// MemoryStatsStore é usado quando DATABASE_URL não está configurada
type MemoryStatsStore struct {
	mu       sync.Mutex
	counters map[string]map[string]*models.EndpointStats
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{counters: make(map[string]map[string]*models.EndpointStats)}
}

func (m *MemoryStatsStore) Name() string { return "memory" }

func (m *MemoryStatsStore) Increment(_ context.Context, month, endpoint string, outcome Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byEndpoint, ok := m.counters[month]
	if !ok {
		byEndpoint = make(map[string]*models.EndpointStats)
		m.counters[month] = byEndpoint
	}
	stats, ok := byEndpoint[endpoint]
	if !ok {
		stats = &models.EndpointStats{Endpoint: endpoint}
		byEndpoint[endpoint] = stats
	}

	hits, misses, errs := deltas(outcome)
	stats.CacheHits += hits
	stats.CacheMisses += misses
	stats.Errors += errs
	return nil
}

func (m *MemoryStatsStore) Month(_ context.Context, month string) ([]models.EndpointStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.EndpointStats, 0, len(m.counters[month]))
	for _, stats := range m.counters[month] {
		out = append(out, *stats)
	}
	return out, nil
}

// PostgresStatsStore grava os contadores na tabela seo_usage_stats
type PostgresStatsStore struct {
	db *sql.DB
}

// NewPostgresStatsStore conecta ao banco e cria a tabela se necessário
func NewPostgresStatsStore(ctx context.Context, databaseURL string) (*PostgresStatsStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir banco: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao conectar ao banco: %w", err)
	}

	store := &PostgresStatsStore{db: db}
	if err := store.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (p *PostgresStatsStore) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS seo_usage_stats (
			month TEXT NOT NULL,
			endpoint TEXT NOT NULL,
			cache_hits BIGINT NOT NULL DEFAULT 0,
			cache_misses BIGINT NOT NULL DEFAULT 0,
			errors BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (month, endpoint)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_seo_usage_stats_month ON seo_usage_stats(month)`,
	}

	for _, query := range queries {
		if _, err := p.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("erro ao criar tabela de estatísticas: %w", err)
		}
	}
	return nil
}

func (p *PostgresStatsStore) Name() string { return "postgres" }

func (p *PostgresStatsStore) Increment(ctx context.Context, month, endpoint string, outcome Outcome) error {
	hits, misses, errs := deltas(outcome)

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO seo_usage_stats (month, endpoint, cache_hits, cache_misses, errors)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (month, endpoint) DO UPDATE SET
			cache_hits = seo_usage_stats.cache_hits + EXCLUDED.cache_hits,
			cache_misses = seo_usage_stats.cache_misses + EXCLUDED.cache_misses,
			errors = seo_usage_stats.errors + EXCLUDED.errors,
			updated_at = CURRENT_TIMESTAMP`,
		month, endpoint, hits, misses, errs,
	)
	return err
}

func (p *PostgresStatsStore) Month(ctx context.Context, month string) ([]models.EndpointStats, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT endpoint, cache_hits, cache_misses, errors
		FROM seo_usage_stats
		WHERE month = $1
		ORDER BY endpoint`, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EndpointStats
	for rows.Next() {
		var stats models.EndpointStats
		if err := rows.Scan(&stats.Endpoint, &stats.CacheHits, &stats.CacheMisses, &stats.Errors); err != nil {
			return nil, err
		}
		out = append(out, stats)
	}
	return out, rows.Err()
}

func (p *PostgresStatsStore) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *PostgresStatsStore) Close() error {
	return p.db.Close()
}
