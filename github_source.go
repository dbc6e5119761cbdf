package releasefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v30/github"
)

// GitHubConfig is an object to pass to NewGitHubSource
type GitHubConfig struct {
	// BaseURL is the base URL of the GitHub API. Leave empty for https://api.github.com/
	BaseURL string
	// HTTPClient used to reach the API (default to a new http.Client)
	HTTPClient *http.Client
}

// GitHubSource is used to load the releases list from GitHub
type GitHubSource struct {
	api *github.Client
}

// NewGitHubSource creates a new GitHubSource from a config object.
// You can pass an empty GitHubConfig{} to use the default configuration.
// The function will return an error if the base URL cannot be parsed
func NewGitHubSource(config GitHubConfig) (*GitHubSource, error) {
	hc := config.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	client := github.NewClient(hc)

	if config.BaseURL != "" {
		baseURL := config.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("cannot parse GitHub API URL: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("cannot parse GitHub API URL: %q is not an absolute URL", config.BaseURL)
		}
		client.BaseURL = u
	}
	return &GitHubSource{
		api: client,
	}, nil
}

// ListReleases returns the raw releases list of the repository.
// The body is not decoded here, so it can be cached as sent by GitHub.
func (s *GitHubSource) ListReleases(ctx context.Context, repository Repository, header http.Header) (*UpstreamResponse, error) {
	owner, repo, err := repository.GetSlug()
	if err != nil {
		return nil, err
	}
	req, err := s.api.NewRequest(http.MethodGet, fmt.Sprintf("repos/%s/%s/releases", owner, repo), nil)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		req.Header.Del(key)
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	// decoding into a RawMessage keeps the body as sent, and fails on a truncated one
	var body json.RawMessage
	res, err := s.api.Do(ctx, req, &body)
	if res == nil || res.Response == nil {
		// no response at all (connection refused, context cancelled, etc.)
		if err == nil {
			err = fmt.Errorf("no response from %s", req.URL)
		}
		return nil, err
	}
	if err != nil {
		if res.StatusCode >= 200 && res.StatusCode < 300 {
			return nil, fmt.Errorf("cannot read releases of %s/%s: %w", owner, repo, err)
		}
		// the status line is all we need from an error response
		log.Printf("API returned an error response: %s", err)
		body = nil
	}
	return &UpstreamResponse{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Header:     res.Header.Clone(),
		Body:       body,
	}, nil
}

// Verify interface
var _ Source = &GitHubSource{}
