package releasefeed

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Release is one entry of the GitHub releases list.
type Release struct {
	// TagName is the version of the release, e.g. "1.4.2"
	TagName string
	// Name represents a name of the release
	Name string
	// Body contains the release notes, as written on GitHub (markdown or HTML)
	Body string
	// PublishedAt is kept as sent by GitHub (ISO-8601), it goes into the feed untouched
	PublishedAt string
	// Draft releases are never offered
	Draft bool
	// Prerelease releases are only offered on the develop channel
	Prerelease bool
	Assets     []*Asset
}

// Asset is a file uploaded to a release.
type Asset struct {
	BrowserDownloadURL string
}

// the shape of the GitHub JSON: pointers tell a missing field from a zero value
type jsonRelease struct {
	TagName     *string      `json:"tag_name"`
	Name        *string      `json:"name"`
	Body        *string      `json:"body"`
	PublishedAt *string      `json:"published_at"`
	Draft       *bool        `json:"draft"`
	Prerelease  *bool        `json:"prerelease"`
	Assets      *[]jsonAsset `json:"assets"`
}

type jsonAsset struct {
	BrowserDownloadURL *string `json:"browser_download_url"`
}

// ParseReleases decodes the body of the GitHub releases endpoint.
// "tag_name", "draft", "prerelease", "assets" and the assets "browser_download_url" are required;
// "name", "body" and "published_at" can be null (drafts have no publication date).
// The order of the list is kept.
func ParseReleases(data []byte) ([]*Release, error) {
	var rels []*jsonRelease
	if err := json.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	releases := make([]*Release, len(rels))
	for i, rel := range rels {
		if rel == nil {
			return nil, fmt.Errorf("%w: release #%d is null", ErrParse, i)
		}
		missing := make([]string, 0, 4)
		if rel.TagName == nil {
			missing = append(missing, "tag_name")
		}
		if rel.Draft == nil {
			missing = append(missing, "draft")
		}
		if rel.Prerelease == nil {
			missing = append(missing, "prerelease")
		}
		if rel.Assets == nil {
			missing = append(missing, "assets")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: release #%d is missing %s", ErrParse, i, strings.Join(missing, ", "))
		}

		assets := make([]*Asset, len(*rel.Assets))
		for j, asset := range *rel.Assets {
			if asset.BrowserDownloadURL == nil {
				return nil, fmt.Errorf("%w: asset #%d of release %q is missing browser_download_url", ErrParse, j, *rel.TagName)
			}
			assets[j] = &Asset{BrowserDownloadURL: *asset.BrowserDownloadURL}
		}

		releases[i] = &Release{
			TagName:     *rel.TagName,
			Name:        stringValue(rel.Name),
			Body:        stringValue(rel.Body),
			PublishedAt: stringValue(rel.PublishedAt),
			Draft:       *rel.Draft,
			Prerelease:  *rel.Prerelease,
			Assets:      assets,
		}
	}
	return releases, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
