// Copyright (c) 2024 Mr. Gecko's Media (James Coleman). http://mrgeckosmedia.com/
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package releasefeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// HttpConfig is an object to pass to NewHttpSource
type HttpConfig struct {
	// BaseURL is a base URL of your mirror. This parameter has NO default value.
	BaseURL string
	// HTTP Transport Config
	Transport http.RoundTripper
	// Additional headers
	Headers http.Header
}

// HttpSource is used to load the releases list from a static mirror of the GitHub API:
// the list of "owner/repo" is read from {BaseURL}/owner/repo/releases.json
type HttpSource struct {
	baseURL   string
	transport http.RoundTripper
	headers   http.Header
}

// NewHttpSource creates a new HttpSource from a config object.
func NewHttpSource(config HttpConfig) (*HttpSource, error) {
	// Validate Base URL.
	if config.BaseURL == "" {
		return nil, fmt.Errorf("http base url must be set")
	}
	_, perr := url.ParseRequestURI(config.BaseURL)
	if perr != nil {
		return nil, perr
	}

	// Setup standard transport if not set.
	if config.Transport == nil {
		config.Transport = http.DefaultTransport
	}

	return &HttpSource{
		baseURL:   config.BaseURL,
		transport: config.Transport,
		headers:   config.Headers,
	}, nil
}

// ListReleases returns the raw releases list of the repository.
// header is added on top of the headers of the configuration.
func (s *HttpSource) ListReleases(ctx context.Context, repository Repository, header http.Header) (*UpstreamResponse, error) {
	owner, repo, err := repository.GetSlug()
	if err != nil {
		return nil, err
	}

	uri, err := url.JoinPath(s.baseURL, owner, repo, "releases.json")
	if err != nil {
		return nil, err
	}

	client := &http.Client{Transport: s.transport}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, http.NoBody)
	if err != nil {
		return nil, err
	}
	for key, values := range s.headers {
		req.Header[key] = append([]string(nil), values...)
	}
	for key, values := range header {
		req.Header[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", uri, err)
	}
	return &UpstreamResponse{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Header:     res.Header,
		Body:       body,
	}, nil
}

// Verify interface
var _ Source = &HttpSource{}
