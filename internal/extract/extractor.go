// Package extract converts raw fetched markup into normalized plain
// text, preferring a source-specific strategy and falling back to
// generic readability extraction.
package extract

import (
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/opportunities-radar/radar/internal/extract/strategies"
)

// Extractor is a pure transform over fetched documents.
type Extractor struct {
	registry *strategies.Registry
}

// NewExtractor creates an extractor with the built-in strategy registry.
func NewExtractor() *Extractor {
	return &Extractor{registry: strategies.NewRegistry()}
}

// Extract converts markup to normalized text. strategyID may be empty;
// unknown or not-applicable strategies fall through to readability, and
// readability falls through to stripping non-content elements from the
// whole document. An empty result is valid content.
func (e *Extractor) Extract(rawHTML, strategyID string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	if strategyID != "" {
		if text, ok := e.registry.Apply(strategyID, doc); ok {
			return normalizeWhitespace(text)
		}
	}

	if text := readabilityText(rawHTML); text != "" {
		return text
	}

	return normalizeWhitespace(strippedText(doc))
}

func readabilityText(rawHTML string) string {
	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return ""
	}
	return normalizeWhitespace(article.TextContent)
}

// Non-content elements dropped by the last-resort extraction.
var skipElements = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"footer": true,
	"header": true,
}

func strippedText(doc *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return b.String()
}

// Readability output tends to carry long runs of blank lines.
var blankRunRe = regexp.MustCompile(`\n{3,}`)

func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	text = strings.Join(lines, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
