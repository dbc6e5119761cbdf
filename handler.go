package releasefeed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

// Handler answers the version check and the update feed requests:
//
//   - "?version=1.2.3" answers 200 when a newer release exists, 404 otherwise;
//   - without "version" the Sparkle feed of the latest release is returned.
//
// The presence of "develop" in the query switches from stable releases to pre-releases.
type Handler struct {
	fetcher        *Fetcher
	assetSubstring string
}

// NewHandler creates a new handler instance.
// If you don't specify a source in the config object, GitHub will be used
func NewHandler(config Config) (*Handler, error) {
	source := config.Source
	if source == nil {
		// default source is GitHub
		source, _ = NewGitHubSource(GitHubConfig{})
	}
	cache := config.Cache
	if cache == nil {
		cache = NewMemoryCache(DefaultCacheSize)
	}
	runner := config.Runner
	if runner == nil {
		runner = NewBackground(context.Background())
	}
	repository := config.Repository
	if repository == nil {
		repository = ParseSlug(DefaultRepository)
	}
	if _, _, err := repository.GetSlug(); err != nil {
		return nil, fmt.Errorf("invalid repository: %w", err)
	}
	maxAge := config.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	assetSubstring := config.AssetSubstring
	if assetSubstring == "" {
		assetSubstring = DefaultAssetSubstring
	}

	return &Handler{
		fetcher:        NewFetcher(source, cache, runner, repository, maxAge),
		assetSubstring: assetSubstring,
	}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.fail(w, fmt.Errorf("panic: %v\n%s", rec, debug.Stack()))
		}
	}()

	status, header, body, err := h.respond(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	for key, values := range header {
		w.Header()[key] = values
	}
	w.WriteHeader(status)
	if len(body) > 0 {
		_, _ = w.Write(body)
	}
}

func (h *Handler) respond(r *http.Request) (int, http.Header, []byte, error) {
	releases, err := h.fetcher.Releases(r.Context(), r)
	if err != nil {
		return 0, nil, nil, err
	}

	query := r.URL.Query()
	prerelease := query.Has("develop")
	release, found := SelectRelease(releases, prerelease)
	if !found {
		return 0, nil, nil, fmt.Errorf("%w for %s channel", ErrNoMatchingRelease, channelName(prerelease))
	}
	log.Printf("selected release %s (%s)", release.TagName, release.Name)

	if query.Has("version") {
		version := query.Get("version")
		cmp, err := CompareVersions(version, release.TagName, CompareOptions{})
		if err != nil {
			log.Print(err)
		}
		if err == nil && cmp < 0 {
			// there is a newer version
			return http.StatusOK, nil, nil, nil
		}
		return http.StatusNotFound, nil, nil, nil
	}

	feed, err := RenderFeed(release, FindDownloadURL(release, h.assetSubstring))
	if err != nil {
		return 0, nil, nil, err
	}
	header := http.Header{}
	header.Set("Content-Type", "application/xml")
	return http.StatusOK, header, feed, nil
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrNoMatchingRelease) {
		status = http.StatusNotFound
	} else {
		log.Printf("request failed: %s", err)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprint(w, err.Error())
}

// Verify interface
var _ http.Handler = &Handler{}
