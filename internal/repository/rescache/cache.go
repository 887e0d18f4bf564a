// Package rescache memoizes complete search response pages in a key-value
// store with a short TTL. It is a pure read-through layer: every failure
// degrades to a recompute, never to a request error.
package rescache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/meshly/contactrank/internal/db"
	"github.com/meshly/contactrank/internal/domain"
	"github.com/meshly/contactrank/internal/domain/goal"
	"github.com/meshly/contactrank/internal/domain/search/result"
)

var cacheKeyPrefix = domain.KeyPrefix + "res_cache:"

const defaultTTL = 5 * time.Minute

// store is the consumer interface for the response cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache implements usecase/rank.Cache over a key-value store.
type Cache struct {
	store  store
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a response cache with the default five-minute TTL.
func New(s store, logger *zap.Logger) *Cache {
	return &Cache{store: s, ttl: defaultTTL, logger: logger}
}

// WithTTL overrides the entry TTL.
func (c *Cache) WithTTL(d time.Duration) *Cache {
	if d > 0 {
		c.ttl = d
	}
	return c
}

// Key derives the cache key from the owning user, the normalized query, and
// the goal fingerprint.
func (c *Cache) Key(userID, normalizedQuery string, g *goal.Goal) string {
	h := sha256.Sum256([]byte(userID + "|" + normalizedQuery + "|" + g.Fingerprint()))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

// Get returns a cached page. Any read or decode failure reads as a miss.
func (c *Cache) Get(ctx context.Context, key string) (*result.Page, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to read cached response", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var doc pageDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		c.logger.Warn("Failed to parse cached response", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return doc.toPage(), true
}

// Set stores a page with the configured TTL. Write failures are logged only.
func (c *Cache) Set(ctx context.Context, key string, page *result.Page) {
	data, err := json.Marshal(newPageDoc(page))
	if err != nil {
		c.logger.Warn("Failed to encode response for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
	}
}
