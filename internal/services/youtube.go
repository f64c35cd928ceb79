package services

import (
	"net/url"
	"strings"
)

const embedBaseURL = "https://www.youtube.com/embed/"

// ParseYouTubeID extracts the video id from a YouTube link.
//
// Recognised shapes:
//   - https://www.youtube.com/watch?v=ID
//   - https://youtube.com/shorts/ID
//   - https://www.youtube.com/embed/ID
//   - https://youtu.be/ID
func ParseYouTubeID(link string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	parts := pathSegments(u.Path)

	switch {
	case host == "youtu.be":
		if len(parts) >= 1 {
			return validID(parts[0])
		}
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if strings.HasPrefix(u.Path, "/watch") {
			return validID(u.Query().Get("v"))
		}
		if len(parts) >= 2 && (parts[0] == "shorts" || parts[0] == "embed") {
			return validID(parts[1])
		}
	}

	return "", false
}

// ToEmbedURL returns an autoplaying embed URL for a YouTube link, or link unchanged when no id can be found.
func ToEmbedURL(link string) string {
	id, ok := ParseYouTubeID(link)
	if !ok {
		return link
	}
	return embedBaseURL + url.PathEscape(id) + "?autoplay=1"
}

func pathSegments(p string) []string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

func validID(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	return id, true
}
