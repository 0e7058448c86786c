// ABOUTME: HTML utilities for stripping tags and normalizing text
// ABOUTME: Uses goquery so entities and nested markup are handled by a real HTML parser

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes HTML tags, script and style content, and collapses whitespace
func StripHTML(html string) string {
	if !strings.ContainsAny(html, "<&") {
		return collapseSpaces(html)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapseSpaces(html)
	}

	doc.Find("script, style, noscript").Remove()
	// keep words from adjacent blocks apart
	doc.Find("br").ReplaceWithHtml(" ")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6").AfterHtml(" ")

	return collapseSpaces(doc.Text())
}

// Truncate shortens text to at most limit runes, appending "..." when cut
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}

func collapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
