package history

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/verilens/verilens/internal/model"
)

// ResultCache memoizes analysis results by image content. Results are fully
// determined by the provider responses, so identical bytes within the TTL
// can safely reuse the previous verdict without new provider calls.
type ResultCache struct {
	cache *gocache.Cache
}

// NewResultCache creates a cache with the given TTL
func NewResultCache(ttl, cleanupInterval time.Duration) *ResultCache {
	return &ResultCache{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Key derives the cache key from the image bytes
func Key(image []byte) string {
	sum := sha256.Sum256(image)
	return "verilens:v1:" + hex.EncodeToString(sum[:])
}

// Get returns the cached result for the key, if present
func (c *ResultCache) Get(key string) (*model.AnalysisResult, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(*model.AnalysisResult), true
	}
	return nil, false
}

// Set stores a result under the key for the default TTL
func (c *ResultCache) Set(key string, result *model.AnalysisResult) {
	c.cache.Set(key, result, gocache.DefaultExpiration)
}
