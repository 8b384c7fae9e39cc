// Package crawl discovers song and album links on index and search pages,
// keeping link handling separate from lyric extraction.
package crawl

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Link is an anchor found on a page.
type Link struct {
	Href   string // as written in the page
	Abs    string // resolved against the page URL
	Text   string
	Anchor *goquery.Selection
}

// Links returns the anchors of doc whose href matches pattern, in document
// order. Off-site links, edit forms and pseudo links are skipped, and a link
// repeated on the page is listed once.
func Links(doc *goquery.Document, pageURL string, pattern *regexp.Regexp) []Link {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = &url.URL{}
	}

	seen := NewQueue()
	var links []Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" || !pattern.MatchString(href) || IsEditLink(href) {
			return
		}

		abs := resolveURL(href, base)
		if abs == "" || !IsSameDomain(abs, base.Host) {
			return
		}
		if !seen.Add(abs) {
			return
		}
		links = append(links, Link{
			Href:   href,
			Abs:    abs,
			Text:   strings.TrimSpace(s.Text()),
			Anchor: s,
		})
	})
	return links
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
