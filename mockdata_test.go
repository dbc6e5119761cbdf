package releasefeed

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var testRepository = NewRepositorySlug("maxisme", "notifi")

// releasesJSON is a releases list as sent by GitHub, newest first:
// a draft pre-release, a pre-release, then two stable releases.
const releasesJSON = `[
  {
    "tag_name": "2.1.0",
    "name": "draft of 2.1.0",
    "body": "not ready",
    "published_at": null,
    "draft": true,
    "prerelease": true,
    "assets": []
  },
  {
    "tag_name": "2.0.1",
    "name": "2.0.1 beta",
    "body": "<b>beta</b> & friends",
    "published_at": "2021-03-02T10:00:00Z",
    "draft": false,
    "prerelease": true,
    "assets": [
      {"browser_download_url": "https://github.com/maxisme/notifi/releases/download/2.0.1/notifi.zip"},
      {"browser_download_url": "https://github.com/maxisme/notifi/releases/download/2.0.1/notifi.dmg"}
    ]
  },
  {
    "tag_name": "2.0.0",
    "name": "notifi 2.0.0",
    "body": "## What's new\n- everything",
    "published_at": "2021-03-01T10:00:00Z",
    "draft": false,
    "prerelease": false,
    "assets": [
      {"browser_download_url": "https://github.com/maxisme/notifi/releases/download/2.0.0/notifi.dmg"},
      {"browser_download_url": "https://github.com/maxisme/notifi/releases/download/2.0.0/notifi-old.dmg"}
    ]
  },
  {
    "tag_name": "1.9.0",
    "name": "notifi 1.9.0",
    "body": "older",
    "published_at": "2020-12-01T10:00:00Z",
    "draft": false,
    "prerelease": false,
    "assets": []
  }
]`

func mockReleases(t *testing.T) []*Release {
	t.Helper()
	releases, err := ParseReleases([]byte(releasesJSON))
	require.NoError(t, err)
	return releases
}

func releasesBody(t *testing.T, releases ...map[string]interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(releases)
	require.NoError(t, err)
	return data
}

// MockSource is a Source in memory used for unit tests
type MockSource struct {
	mu       sync.Mutex
	response UpstreamResponse
	err      error
	calls    int
	headers  []http.Header
}

// NewMockSource instantiates a new MockSource answering 200 with body
func NewMockSource(body []byte) *MockSource {
	return &MockSource{
		response: UpstreamResponse{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Header:     http.Header{"Content-Type": []string{"application/json; charset=utf-8"}},
			Body:       body,
		},
	}
}

// NewFailingMockSource instantiates a new MockSource answering with the status code only
func NewFailingMockSource(statusCode int, status string) *MockSource {
	return &MockSource{
		response: UpstreamResponse{
			StatusCode: statusCode,
			Status:     status,
			Header:     http.Header{},
		},
	}
}

func (s *MockSource) ListReleases(ctx context.Context, repository Repository, header http.Header) (*UpstreamResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.headers = append(s.headers, header.Clone())
	if _, _, err := repository.GetSlug(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	res := s.response
	res.Header = res.Header.Clone()
	return &res, nil
}

// Calls returns the number of upstream requests made so far
func (s *MockSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// LastHeader returns the header sent with the last upstream request
func (s *MockSource) LastHeader() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.headers) == 0 {
		return nil
	}
	return s.headers[len(s.headers)-1]
}

// Verify interface
var _ Source = &MockSource{}
