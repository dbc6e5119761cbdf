package releasefeed

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Fetcher returns the releases list of a repository, going through a CacheStore first.
type Fetcher struct {
	source     Source
	cache      CacheStore
	runner     BackgroundRunner
	repository Repository
	maxAge     time.Duration
}

// NewFetcher creates a Fetcher; maxAge is the freshness given to the cached upstream responses.
func NewFetcher(source Source, cache CacheStore, runner BackgroundRunner, repository Repository, maxAge time.Duration) *Fetcher {
	return &Fetcher{
		source:     source,
		cache:      cache,
		runner:     runner,
		repository: repository,
		maxAge:     maxAge,
	}
}

// CacheKey is the key of the upstream response cached for an incoming request:
// the method and the full URL of the request, query string included.
func CacheKey(r *http.Request) string {
	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
	}
	u.Fragment = ""
	return r.Method + " " + u.String()
}

// Releases returns the releases list for the incoming request r.
// On a cache miss, the list is loaded from the source with the User-Agent of r,
// and stored in the cache in the background.
func (f *Fetcher) Releases(ctx context.Context, r *http.Request) ([]*Release, error) {
	key := CacheKey(r)

	cached, found, err := f.cache.Get(ctx, key)
	if err != nil {
		log.Printf("cache lookup of %s failed, fetching from upstream: %s", key, err)
		found = false
	}
	if found && cached != nil {
		log.Printf("cache hit: %s", key)
		return ParseReleases(cached.Body)
	}

	header := http.Header{}
	if userAgent := r.Header.Get("User-Agent"); userAgent != "" {
		header.Set("User-Agent", userAgent)
	}

	log.Printf("start fetch of %s releases", f.repository)
	res, err := f.source.ListReleases(ctx, f.repository, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}
	log.Printf("end fetch of %s releases: %s", f.repository, res.Status)
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamFetch, statusText(res))
	}

	releases, err := ParseReleases(res.Body)
	if err != nil {
		// a broken body must not stay in the cache
		return nil, err
	}

	entry := &CachedResponse{
		Body:   res.Body,
		Header: res.Header.Clone(),
	}
	if entry.Header == nil {
		entry.Header = http.Header{}
	}
	entry.Header.Set("Cache-Control", "s-maxage="+strconv.Itoa(int(f.maxAge/time.Second)))
	f.runner.Go("cache "+key, func(ctx context.Context) error {
		return f.cache.Put(ctx, key, entry)
	})

	return releases, nil
}

// statusText returns the status line of res, as "403 Forbidden".
// Responses built by the GitHub client itself (when rate limited) carry the reason phrase only.
func statusText(res *UpstreamResponse) string {
	code := strconv.Itoa(res.StatusCode)
	if strings.HasPrefix(res.Status, code+" ") {
		return res.Status
	}
	reason := strings.TrimSpace(res.Status)
	if reason == "" {
		reason = http.StatusText(res.StatusCode)
	}
	if res.StatusCode == 0 {
		return reason
	}
	return code + " " + reason
}
