package releasefeed

import (
	"bytes"
	"strings"
	"text/template"
)

const (
	sparkleNamespace = "https://notifi.it/xml-namespaces/sparkle"
	dcNamespace      = "https://notifi.it/dc/elements/1.1/"
)

var feedTemplate = template.Must(template.New("feed").Funcs(template.FuncMap{
	"cdata": cdata,
}).Parse(`<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0" xmlns:sparkle="{{ .Sparkle | html }}" xmlns:dc="{{ .DC | html }}">
  <channel>
    <item>
        <title>{{ .Release.Name | html }}</title>
        <description>{{ cdata .Release.Body }}</description>
        <pubDate>{{ .Release.PublishedAt | html }}</pubDate>
        <enclosure url="{{ .DownloadURL | html }}" sparkle:version="{{ .Release.TagName | html }}"/>
    </item>
  </channel>
</rss>`))

type feedData struct {
	Sparkle     string
	DC          string
	Release     *Release
	DownloadURL string
}

// RenderFeed writes the Sparkle appcast of a single release.
// The release notes go unescaped into a CDATA section.
func RenderFeed(rel *Release, downloadURL string) ([]byte, error) {
	if rel == nil {
		return nil, ErrNoMatchingRelease
	}
	buffer := &bytes.Buffer{}
	err := feedTemplate.Execute(buffer, feedData{
		Sparkle:     sparkleNamespace,
		DC:          dcNamespace,
		Release:     rel,
		DownloadURL: downloadURL,
	})
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// cdata wraps text in a CDATA section. A "]]>" inside text would close the section early,
// so it is split over two sections.
func cdata(text string) string {
	return "<![CDATA[" + strings.ReplaceAll(text, "]]>", "]]]]><![CDATA[>") + "]]>"
}
