package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/maxisme/releasefeed"
)

// SplitDomainSlug tries to make sense of the repository string
// and returns a domain name (if present) and a slug.
//
// Example of valid entries:
//
//   - "owner/name"
//   - "github.com/owner/name"
//   - "http://github.com/owner/name"
func SplitDomainSlug(repo string) (domain, slug string, err error) {
	// simple case first => only a slug
	parts := strings.Split(repo, "/")
	if len(parts) == 2 {
		if parts[0] == "" || parts[1] == "" {
			return "", "", fmt.Errorf("invalid slug or URL %q", repo)
		}
		return "", repo, nil
	}
	// trim trailing /
	repo = strings.TrimSuffix(repo, "/")

	if !strings.HasPrefix(repo, "http") && !strings.Contains(repo, "://") && !strings.HasPrefix(repo, "/") {
		// add missing scheme
		repo = "https://" + repo
	}

	repoURL, err := url.Parse(repo)
	if err != nil {
		return "", "", err
	}

	// make sure hostname looks like a real domain name
	if !strings.Contains(repoURL.Hostname(), ".") {
		return "", "", fmt.Errorf("invalid domain name %q", repoURL.Hostname())
	}
	domain = repoURL.Scheme + "://" + repoURL.Host
	slug = strings.TrimPrefix(repoURL.Path, "/")

	if slug == "" {
		return "", "", fmt.Errorf("invalid URL %q", repo)
	}
	return domain, slug, nil
}

// GetSource returns the source and the repository to read the releases from.
// repository is a slug or a repository URL: a URL on a GitHub Enterprise domain
// makes the source talk to the API of that domain.
// A non empty apiURL always wins over the domain of the repository,
// and a non empty mirrorURL replaces the GitHub API by a static mirror.
func GetSource(repository, apiURL, mirrorURL string) (releasefeed.Source, releasefeed.Repository, error) {
	domain, slug, err := SplitDomainSlug(repository)
	if err != nil {
		return nil, nil, err
	}
	repo := releasefeed.ParseSlug(slug)
	if _, _, err := repo.GetSlug(); err != nil {
		return nil, nil, fmt.Errorf("repository %q: %w", repository, err)
	}

	if mirrorURL != "" {
		source, err := releasefeed.NewHttpSource(releasefeed.HttpConfig{BaseURL: mirrorURL})
		if err != nil {
			return nil, nil, err
		}
		return source, repo, nil
	}

	if apiURL == "" && domain != "" && !strings.HasSuffix(domain, "://github.com") {
		apiURL = domain + "/api/v3/"
	}
	source, err := releasefeed.NewGitHubSource(releasefeed.GitHubConfig{BaseURL: apiURL})
	if err != nil {
		return nil, nil, err
	}
	return source, repo, nil
}
