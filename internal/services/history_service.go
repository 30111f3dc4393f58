package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
)

const (
	historyKey   = "seo_history"
	HistoryLimit = 10
)

// HistoryStore guarda as últimas análises, mais recente primeiro
type HistoryStore interface {
	Push(ctx context.Context, entry models.HistoryEntry) error
	List(ctx context.Context) ([]models.HistoryEntry, error)
}

// HistoryService registra as análises solicitadas. Falhas são apenas logadas.
type HistoryService struct {
	store HistoryStore
	now   func() time.Time
}

func NewHistoryService(store HistoryStore) *HistoryService {
	return &HistoryService{store: store, now: time.Now}
}

// Record salva a requisição no histórico
func (s *HistoryService) Record(ctx context.Context, rawURL, keyword string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheOpTimeout)
	defer cancel()

	entry := models.HistoryEntry{URL: rawURL, Keyword: keyword, Timestamp: s.now().UTC()}
	if err := s.store.Push(ctx, entry); err != nil {
		log.Printf("[History] erro ao salvar %s: %v", rawURL, err)
	}
}

// List devolve o histórico; erro de armazenamento resulta em lista vazia
func (s *HistoryService) List(ctx context.Context) []models.HistoryEntry {
	entries, err := s.store.List(ctx)
	if err != nil {
		log.Printf("[History] erro ao ler histórico: %v", err)
		return []models.HistoryEntry{}
	}
	if entries == nil {
		return []models.HistoryEntry{}
	}
	return entries
}

// MemoryHistoryStore é usado quando não há Redis
type MemoryHistoryStore struct {
	mu      sync.Mutex
	entries []models.HistoryEntry
	limit   int
}

func NewMemoryHistoryStore(limit int) *MemoryHistoryStore {
	if limit <= 0 {
		limit = HistoryLimit
	}
	return &MemoryHistoryStore{limit: limit}
}

func (m *MemoryHistoryStore) Push(_ context.Context, entry models.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append([]models.HistoryEntry{entry}, m.entries...)
	if len(m.entries) > m.limit {
		m.entries = m.entries[:m.limit]
	}
	return nil
}

func (m *MemoryHistoryStore) List(_ context.Context) ([]models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.HistoryEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// RedisHistoryStore mantém o histórico em uma lista Redis (LPUSH + LTRIM)
type RedisHistoryStore struct {
	client *redis.Client
	limit  int
}

func NewRedisHistoryStore(client *redis.Client, limit int) *RedisHistoryStore {
	if limit <= 0 {
		limit = HistoryLimit
	}
	return &RedisHistoryStore{client: client, limit: limit}
}

func (r *RedisHistoryStore) Push(ctx context.Context, entry models.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("erro ao serializar entrada: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, historyKey, data)
	pipe.LTrim(ctx, historyKey, 0, int64(r.limit-1))
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisHistoryStore) List(ctx context.Context) ([]models.HistoryEntry, error) {
	items, err := r.client.LRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]models.HistoryEntry, 0, len(items))
	for _, item := range items {
		var entry models.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			log.Printf("[History] entrada inválida ignorada: %v", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
