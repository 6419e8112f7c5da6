package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	appcustomfield "github.com/mssp/backend/internal/application/customfield"
	"github.com/mssp/backend/internal/domain/customfield"
)

// Constants for in-memory cache configuration
const (
	defaultCleanupInterval = 30 * time.Second
	defaultDefinitionTTL   = 5 * time.Minute
)

// InMemoryDefinitionCache caches the active field definitions per entity
// type with a TTL. Definition writes invalidate the affected entity type,
// so the TTL only bounds staleness across multiple processes.
type InMemoryDefinitionCache struct {
	entries sync.Map // map[customfield.EntityType]*definitionEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// definitionEntry wraps a cached definition list with expiration time
type definitionEntry struct {
	defs      []*customfield.FieldDefinition
	expiresAt time.Time
}

// isExpired checks if the cache entry has expired
func (e *definitionEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryDefinitionCacheOption is a functional option for configuring the cache
type InMemoryDefinitionCacheOption func(*InMemoryDefinitionCache)

// WithDefinitionTTL sets the entry TTL
func WithDefinitionTTL(ttl time.Duration) InMemoryDefinitionCacheOption {
	return func(c *InMemoryDefinitionCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithDefinitionCacheLogger sets the logger for the cache
func WithDefinitionCacheLogger(logger *zap.Logger) InMemoryDefinitionCacheOption {
	return func(c *InMemoryDefinitionCache) {
		c.logger = logger
	}
}

// NewInMemoryDefinitionCache creates a new in-memory definition cache
func NewInMemoryDefinitionCache(opts ...InMemoryDefinitionCacheOption) *InMemoryDefinitionCache {
	cache := &InMemoryDefinitionCache{
		ttl:    defaultDefinitionTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	// Start background cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// Get retrieves the cached definition list for an entity type
func (c *InMemoryDefinitionCache) Get(entityType customfield.EntityType) ([]*customfield.FieldDefinition, bool) {
	if value, ok := c.entries.Load(entityType); ok {
		entry := value.(*definitionEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			return entry.defs, true
		}
		c.entries.Delete(entityType)
	}

	atomic.AddInt64(&c.misses, 1)
	return nil, false
}

// Set stores the definition list for an entity type
func (c *InMemoryDefinitionCache) Set(entityType customfield.EntityType, defs []*customfield.FieldDefinition) {
	c.entries.Store(entityType, &definitionEntry{
		defs:      defs,
		expiresAt: time.Now().Add(c.ttl),
	})
	c.logger.Debug("Cached field definitions",
		zap.String("entity_type", string(entityType)),
		zap.Int("count", len(defs)))
}

// Invalidate drops the cached list for an entity type
func (c *InMemoryDefinitionCache) Invalidate(entityType customfield.EntityType) {
	c.entries.Delete(entityType)
	c.logger.Debug("Invalidated field definition cache",
		zap.String("entity_type", string(entityType)))
}

// GetStats returns cache statistics
func (c *InMemoryDefinitionCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Close stops the background cleanup goroutine
func (c *InMemoryDefinitionCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// cleanupExpired periodically removes expired entries from the cache
func (c *InMemoryDefinitionCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.doCleanup()
		}
	}
}

// doCleanup removes expired entries
func (c *InMemoryDefinitionCache) doCleanup() {
	var removed int
	c.entries.Range(func(key, value any) bool {
		entry := value.(*definitionEntry)
		if entry.isExpired() {
			c.entries.Delete(key)
			removed++
		}
		return true
	})

	if removed > 0 {
		c.logger.Debug("Cleaned up expired definition cache entries",
			zap.Int("removed", removed))
	}
}

// Ensure InMemoryDefinitionCache implements DefinitionCache
var _ appcustomfield.DefinitionCache = (*InMemoryDefinitionCache)(nil)
