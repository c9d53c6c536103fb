package domain

import (
	"net/url"
	"strings"
)

const (
	shortLinkHost = "youtu.be"
	shortsPrefix  = "/shorts/"
	embedBase     = "https://www.youtube.com/embed/"
	embedParams   = "?autoplay=1&mute=0&rel=0&modestbranding=1"
)

// ExtractID parses a YouTube locator into its video id. It never panics;
// anything it cannot read yields ok == false.
//
// Accepted shapes, first match wins:
//
//	https://youtu.be/<id>
//	https://www.youtube.com/shorts/<id>
//	https://www.youtube.com/watch?v=<id>
//	https://www.youtube.com/embed/<id>
func ExtractID(locator string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(locator))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	path := u.EscapedPath()

	if strings.Contains(strings.ToLower(u.Hostname()), shortLinkHost) {
		id := strings.TrimPrefix(path, "/")
		return id, id != ""
	}
	if strings.HasPrefix(path, shortsPrefix) {
		parts := strings.Split(path, "/")
		if len(parts) > 2 && parts[2] != "" {
			return parts[2], true
		}
		return "", false
	}
	if v := u.Query().Get("v"); v != "" {
		return v, true
	}

	var segments []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			segments = append(segments, p)
		}
	}
	for i, p := range segments {
		if p == "embed" {
			if i+1 < len(segments) {
				return segments[i+1], true
			}
			break
		}
	}
	return "", false
}

// EmbedURL builds the autoplaying embed locator for id. An empty id gives an
// empty locator and callers skip playback.
func EmbedURL(id string) string {
	if id == "" {
		return ""
	}
	return embedBase + id + embedParams
}
