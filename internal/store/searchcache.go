package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/buchshelf/buchshelf-server/internal/metadata/googlebooks"
)

// Search responses are cached with an absolute expiry stored next to the
// value, so entries survive restarts and age out regardless of process
// lifetime.
type cachedSearch struct {
	Value  []googlebooks.Volume `json:"value"`
	Expiry int64                `json:"expiry"` // epoch milliseconds
}

func searchCacheKey(query string, maxResults int) []byte {
	return []byte(fmt.Sprintf("cache:search_%s_%d", query, maxResults))
}

// CachedSearch returns the cached raw records for a query, if present and
// not expired. Expired entries are treated as absent and evicted.
func (s *Store) CachedSearch(query string, maxResults int) ([]googlebooks.Volume, bool) {
	key := searchCacheKey(query, maxResults)

	var entry cachedSearch
	if err := s.get(key, &entry); err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("discarding unreadable cache entry", "error", err)
			_ = s.delete(key)
		}
		return nil, false
	}

	// Reads at the expiry instant count as expired.
	if s.now().UnixMilli() >= entry.Expiry {
		if err := s.delete(key); err != nil {
			s.logger.Warn("failed to evict expired cache entry", "error", err)
		}
		return nil, false
	}

	return entry.Value, true
}

// CacheSearch stores raw records for a query with the given time to live.
func (s *Store) CacheSearch(query string, maxResults int, vols []googlebooks.Volume, ttl time.Duration) error {
	entry := cachedSearch{
		Value:  vols,
		Expiry: s.now().Add(ttl).UnixMilli(),
	}
	return s.set(searchCacheKey(query, maxResults), entry)
}
