package releasefeed

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of responses kept by the default MemoryCache
const DefaultCacheSize = 256

// CachedResponse is an upstream answer kept in a CacheStore.
type CachedResponse struct {
	Body   []byte
	Header http.Header
}

// CacheStore keeps upstream responses between requests.
// It decides on its own how long an entry stays fresh, from the entry "Cache-Control" header.
type CacheStore interface {
	// Get returns a fresh entry, or false if there's none
	Get(ctx context.Context, key string) (*CachedResponse, bool, error)
	Put(ctx context.Context, key string, value *CachedResponse) error
}

type cacheEntry struct {
	value     *CachedResponse
	expiresAt time.Time
}

// MemoryCache is a CacheStore in process memory, bounded in number of entries.
// Entries are fresh for the duration of their "s-maxage" (or "max-age") directive.
// Entries without one of these directives are not stored.
type MemoryCache struct {
	entries *lru.Cache[string, cacheEntry]
	now     func() time.Time
}

// NewMemoryCache creates a MemoryCache holding up to size entries.
// A size of zero or less means DefaultCacheSize.
func NewMemoryCache(size int) *MemoryCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// New only fails on a size <= 0
	entries, _ := lru.New[string, cacheEntry](size)
	return &MemoryCache{
		entries: entries,
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*CachedResponse, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		c.entries.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (c *MemoryCache) Put(ctx context.Context, key string, value *CachedResponse) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if value == nil {
		return nil
	}
	maxAge, ok := freshness(value.Header)
	if !ok || maxAge <= 0 {
		log.Printf("Not caching %s: no freshness directive", key)
		return nil
	}
	c.entries.Add(key, cacheEntry{
		value:     value,
		expiresAt: c.now().Add(maxAge),
	})
	return nil
}

// Len returns the number of entries, fresh or not
func (c *MemoryCache) Len() int {
	return c.entries.Len()
}

// freshness reads the lifetime of a shared cache entry from the "Cache-Control" header.
// "s-maxage" wins over "max-age"; the last occurrence of a directive wins.
func freshness(header http.Header) (time.Duration, bool) {
	var sMaxAge, maxAge time.Duration
	var hasSMaxAge, hasMaxAge bool
	for _, value := range header.Values("Cache-Control") {
		for _, directive := range strings.Split(value, ",") {
			name, arg, _ := strings.Cut(strings.TrimSpace(directive), "=")
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "no-store" {
				return 0, false
			}
			seconds, err := strconv.Atoi(strings.Trim(strings.TrimSpace(arg), `"`))
			if err != nil {
				continue
			}
			switch name {
			case "s-maxage":
				sMaxAge, hasSMaxAge = time.Duration(seconds)*time.Second, true
			case "max-age":
				maxAge, hasMaxAge = time.Duration(seconds)*time.Second, true
			}
		}
	}
	if hasSMaxAge {
		return sMaxAge, true
	}
	return maxAge, hasMaxAge
}

// Verify interface
var _ CacheStore = &MemoryCache{}
