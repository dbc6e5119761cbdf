package releasefeed

import (
	"context"
	"net/http"
)

// UpstreamResponse is the raw answer of the releases endpoint.
// Non-200 answers are returned as well: it's up to the caller to decide what to do with them.
type UpstreamResponse struct {
	StatusCode int
	// Status is the status line, e.g. "503 Service Unavailable"
	Status string
	Header http.Header
	Body   []byte
}

// Source interface to load the releases list from (GitHubSource for example)
type Source interface {
	// ListReleases fetches the releases list of the repository.
	// header is added to the upstream request (the caller's User-Agent).
	// An error is only returned when no HTTP response could be obtained.
	ListReleases(ctx context.Context, repository Repository, header http.Header) (*UpstreamResponse, error)
}
