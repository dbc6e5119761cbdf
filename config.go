package releasefeed

import "time"

const (
	// DefaultMaxAge is how long an upstream releases list is served from the cache
	DefaultMaxAge = 120 * time.Second
	// DefaultAssetSubstring selects the asset put in the feed enclosure
	DefaultAssetSubstring = ".dmg"
)

// Config represents the configuration of the release feed handler.
// Every field is optional.
type Config struct {
	// Source where to load the releases from (default: GitHubSource on api.github.com)
	Source Source
	// Cache keeps the upstream responses between requests (default: a MemoryCache of DefaultCacheSize entries)
	Cache CacheStore
	// Runner stores the upstream responses in the cache after the response is sent (default: a Background runner)
	Runner BackgroundRunner
	// Repository to read the releases from (default: DefaultRepository)
	Repository Repository
	// MaxAge is the freshness of the cached upstream responses (default: DefaultMaxAge)
	MaxAge time.Duration
	// AssetSubstring is searched in the assets download URL to find the file to put in the feed (default: DefaultAssetSubstring)
	AssetSubstring string
}
