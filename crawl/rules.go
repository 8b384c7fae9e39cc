// Link filtering rules used while collecting index pages.

package crawl

import (
	"net/url"
	"strings"
)

// editSuffixes mark links to a site's submission forms, not to content.
var editSuffixes = []string{"/edit", "/add"}

// IsSameDomain checks if the given URL belongs to the specified domain.
// Relative links always do.
func IsSameDomain(rawURL string, domain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == "" || parsed.Host == domain
}

// IsEditLink reports whether the link points at an edit or add form.
func IsEditLink(rawURL string) bool {
	for _, suffix := range editSuffixes {
		if strings.HasSuffix(rawURL, suffix) {
			return true
		}
	}
	return false
}

// NormalizeURL strips fragments and trailing slashes for deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Fragment = ""
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}
	return parsed.String()
}
