package services

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Store é o armazenamento por trás do CacheGateway
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Name() string
}

// CacheGateway é o cache de resultados compartilhado pelos handlers.
// Falhas do armazenamento nunca chegam ao chamador: leitura vira ausência
// e escrita é descartada com log.
type CacheGateway struct {
	store Store
	ttl   time.Duration
}

const cacheOpTimeout = 2 * time.Second

func NewCacheGateway(store Store, ttl time.Duration) *CacheGateway {
	return &CacheGateway{store: store, ttl: ttl}
}

// Key monta a chave de cache de um endpoint.
// Formato: seo:{endpoint}:{sha256(parte)[:32]}
func (g *CacheGateway) Key(endpoint, part string) string {
	hash := sha256.Sum256([]byte(part))
	return "seo:" + endpoint + ":" + hex.EncodeToString(hash[:16])
}

// Get decodifica o valor em out e indica se havia um valor válido
func (g *CacheGateway) Get(ctx context.Context, key string, out any) bool {
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	data, found, err := g.store.Get(ctx, key)
	if err != nil {
		log.Printf("[CacheGateway] erro ao ler %s (%s): %v", key, g.store.Name(), err)
		return false
	}
	if !found {
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("[CacheGateway] valor inválido em %s, ignorando: %v", key, err)
		return false
	}
	return true
}

// Set grava o valor com o TTL fixo do gateway
func (g *CacheGateway) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("[CacheGateway] erro ao serializar %s: %v", key, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheOpTimeout)
	defer cancel()

	if err := g.store.Set(ctx, key, data, g.ttl); err != nil {
		log.Printf("[CacheGateway] erro ao gravar %s (%s): %v", key, g.store.Name(), err)
	}
}

func (g *CacheGateway) Ping(ctx context.Context) error {
	return g.store.Ping(ctx)
}

func (g *CacheGateway) StoreName() string {
	return g.store.Name()
}

type cacheEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// MemoryStore é um cache LRU thread-safe com expiração por entrada
type MemoryStore struct {
	capacity int
	mu       sync.Mutex
	cache    map[string]*list.Element
	lruList  *list.List
	now      func() time.Time
}

// NewMemoryStore cria um cache LRU com a capacidade especificada
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity < 1 {
		capacity = 1000
	}
	return &MemoryStore{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lruList:  list.New(),
		now:      time.Now,
	}
}

func (c *MemoryStore) Name() string { return "memory" }

func (c *MemoryStore) Ping(ctx context.Context) error { return nil }

func (c *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, found := c.cache[key]
	if !found {
		return nil, false, nil
	}

	entry := element.Value.(*cacheEntry)
	if !c.now().Before(entry.expiresAt) {
		c.removeElement(element)
		return nil, false, nil
	}

	c.lruList.MoveToBack(element)
	return entry.value, true, nil
}

func (c *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)

	if element, found := c.cache[key]; found {
		c.lruList.MoveToBack(element)
		entry := element.Value.(*cacheEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		return nil
	}

	if c.lruList.Len() >= c.capacity {
		if oldest := c.lruList.Front(); oldest != nil {
			c.removeElement(oldest)
		}
	}

	element := c.lruList.PushBack(&cacheEntry{key: key, value: value, expiresAt: expiresAt})
	c.cache[key] = element
	return nil
}

func (c *MemoryStore) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lruList.Len()
}

// removeElement deve ser chamado com lock
func (c *MemoryStore) removeElement(element *list.Element) {
	c.lruList.Remove(element)
	delete(c.cache, element.Value.(*cacheEntry).key)
}

// CleanupExpired remove todas as entradas expiradas
func (c *MemoryStore) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0

	var next *list.Element
	for element := c.lruList.Front(); element != nil; element = next {
		next = element.Next()
		if !now.Before(element.Value.(*cacheEntry).expiresAt) {
			c.removeElement(element)
			removed++
		}
	}

	return removed
}

// StartCleanupRoutine limpa entradas expiradas periodicamente até ctx ser cancelado
func (c *MemoryStore) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := c.CleanupExpired(); removed > 0 {
					log.Printf("[CacheGateway] limpeza removeu %d entradas expiradas", removed)
				}
			}
		}
	}()
}
