package media

import (
	"net/url"
	"strings"
)

// TrailerID extracts the YouTube video id from a trailer link. It accepts
// youtu.be short links, watch URLs with a "v" parameter and /embed/ URLs.
// Anything else yields "".
func TrailerID(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	if strings.Contains(u.Hostname(), "youtu.be") {
		return strings.TrimPrefix(u.Path, "/")
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	if strings.HasPrefix(u.Path, "/embed/") {
		return strings.TrimPrefix(u.Path, "/embed/")
	}
	return ""
}

// EmbedURL returns the embeddable player URL for a trailer link, or "".
func EmbedURL(link string) string {
	id := TrailerID(link)
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}

// SpaceLabel formats the storage a unit needs. Values that already carry a
// unit ("6.5gb") are upper-cased; bare numbers get " GB" appended.
func SpaceLabel(space string) string {
	space = strings.TrimSpace(space)
	if space == "" {
		return ""
	}
	if upper := strings.ToUpper(space); strings.Contains(upper, "GB") {
		return upper
	}
	return space + " GB"
}
