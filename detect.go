package releasefeed

import "strings"

// SelectRelease returns the release offered on a channel: the first release of the list
// that is not a draft and whose prerelease flag equals prerelease.
// GitHub returns the releases newest first, so this is the latest one of the channel.
func SelectRelease(releases []*Release, prerelease bool) (*Release, bool) {
	for _, rel := range releases {
		if rel == nil {
			continue
		}
		if rel.Draft {
			log.Printf("Skip draft version %s", rel.TagName)
			continue
		}
		if rel.Prerelease != prerelease {
			continue
		}
		return rel, true
	}
	log.Printf("Could not find any %s release", channelName(prerelease))
	return nil, false
}

// FindDownloadURL returns the download URL of the first asset containing substr,
// or an empty string when the release has no such asset.
func FindDownloadURL(rel *Release, substr string) string {
	if rel == nil {
		return ""
	}
	for _, asset := range rel.Assets {
		if asset != nil && strings.Contains(asset.BrowserDownloadURL, substr) {
			return asset.BrowserDownloadURL
		}
	}
	log.Printf("No asset matching %q was found in release %s", substr, rel.TagName)
	return ""
}

func channelName(prerelease bool) string {
	if prerelease {
		return "develop"
	}
	return "stable"
}
