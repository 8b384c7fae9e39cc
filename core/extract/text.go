// Package extract recovers lyric lines from scraped HTML.
// It parses pages with goquery, strips noise elements, and flattens
// element trees into text that keeps the line structure a browser shows.
package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

// noiseSelectors contribute no lyric text.
var noiseSelectors = []string{"script", "style", "noscript", "iframe", "svg"}

// inlineElements do not start a new line.
var inlineElements = map[string]bool{
	"span": true, "em": true, "strong": true, "font": true, "mark": true,
	"label": true, "sub": true, "sup": true, "tt": true, "bdo": true,
	"button": true, "cite": true, "del": true,
	"a": true, "b": true, "u": true, "i": true, "s": true,
}

// Parse reads a page and removes noise elements.
func Parse(page string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	return doc, nil
}

// TagText flattens the selection into text. Block elements are surrounded
// by newlines, <br> becomes a newline unless ignoreBR is set, and an element
// with no children yields a single newline.
func TagText(sel *goquery.Selection, ignoreBR bool) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n, ignoreBR)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node, ignoreBR bool) {
	if n.FirstChild == nil {
		b.WriteByte('\n')
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			if c.Data == "br" {
				if !ignoreBR {
					b.WriteByte('\n')
				}
				continue
			}
			block := !inlineElements[c.Data]
			if block {
				b.WriteByte('\n')
			}
			writeText(b, c, ignoreBR)
			if block {
				b.WriteByte('\n')
			}
		}
	}
}

// SplitLines splits text on line endings, keeping empty lines.
func SplitLines(text string) core.Lines {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// NonEmpty returns the lines of text that are not empty.
func NonEmpty(text string) core.Lines {
	var out core.Lines
	for _, line := range SplitLines(text) {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// SitePath returns the path of link without its leading slash, the form
// adapters accept as an endpoint.
func SitePath(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return strings.TrimPrefix(link, "/")
	}
	return strings.TrimPrefix(parsed.Path, "/")
}
