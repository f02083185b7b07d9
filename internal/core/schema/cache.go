package schema

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

// Fingerprint identifies a (connection, table) pair.
func Fingerprint(connection, table string) string {
	h := xxhash.New()
	_, _ = h.WriteString(connection)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(table)
	return strconv.FormatUint(h.Sum64(), 16)
}

// Cache holds normalized table schemas for the life of the process. Entries are
// never invalidated; a schema change requires a restart. A Cache is safe for
// concurrent use and is meant to be shared by every builder on a connection.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*domain.TableSchema
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*domain.TableSchema)}
}

// Get returns the cached schema for fingerprint.
func (c *Cache) Get(fingerprint string) (*domain.TableSchema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[fingerprint]
	return s, ok
}

// Put stores schema under fingerprint unless an entry already exists, and returns
// the entry that ends up cached.
func (c *Cache) Put(fingerprint string, schema *domain.TableSchema) *domain.TableSchema {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[fingerprint]; ok {
		return existing
	}
	c.entries[fingerprint] = schema
	return schema
}

// Len returns the number of cached schemas.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var (
	defaultCache     *Cache
	defaultCacheOnce sync.Once
)

// DefaultCache returns the process-wide cache used when none is injected.
func DefaultCache() *Cache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewCache()
	})
	return defaultCache
}
