// ABOUTME: Catalog parser turns OPDS/Atom documents into normalized items
// ABOUTME: Tolerates alternate acquisition relations, relative links and several date encodings

package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rssgen-api/core/domain"
	coreerrors "rssgen-api/core/errors"
	timeutil "rssgen-api/pkg/utils/time"

	"github.com/antchfx/xmlquery"
)

const (
	// AcquisitionRel marks links that download the publication
	AcquisitionRel = "http://opds-spec.org/acquisition"

	// UnknownTitle is used for entries without a title
	UnknownTitle = "Unknown Title"

	epubMarker = "/epub/"
)

// Labels are the prefixes and fallback used to assemble item descriptions
type Labels struct {
	Author    string
	Publisher string
	Summary   string
	Separator string

	// Fallback is the whole description when no part is present
	Fallback string
}

// DefaultLabels returns the localized labels used by the emagazine catalog
func DefaultLabels() Labels {
	return Labels{
		Author:    "作者: ",
		Publisher: "出版社: ",
		Summary:   "内容: ",
		Separator: "<br>",
		Fallback:  "电子杂志",
	}
}

// Parser converts catalog documents into items
type Parser struct {
	// BaseHost resolves relative links as https://<BaseHost>/...
	BaseHost string

	// Now supplies the publication date of entries without a usable one
	Now func() time.Time

	Labels Labels
}

// NewParser creates a parser with default labels and the system clock
func NewParser(baseHost string) *Parser {
	return &Parser{
		BaseHost: baseHost,
		Now:      time.Now,
		Labels:   DefaultLabels(),
	}
}

// Parse is a convenience wrapper around NewParser(baseHost).Parse
func Parse(document, baseHost string) ([]domain.Item, error) {
	return NewParser(baseHost).Parse(document)
}

// Parse extracts every entry of the document, in document order.
// A document that is not XML or has no root element yields a
// *errors.ParseError and no items. Entries are collected under any root, so a
// well-formed document without entries yields an empty slice.
func (p *Parser) Parse(document string) ([]domain.Item, error) {
	doc, err := xmlquery.Parse(strings.NewReader(document))
	if err != nil {
		return []domain.Item{}, &coreerrors.ParseError{Source: p.BaseHost, Err: err}
	}

	root := rootElement(doc)
	if root == nil {
		return []domain.Item{}, &coreerrors.ParseError{
			Source: p.BaseHost,
			Err:    errors.New("document has no root element"),
		}
	}

	entries, err := xmlquery.QueryAll(root, ".//*[local-name()='entry']")
	if err != nil {
		return []domain.Item{}, &coreerrors.ParseError{Source: p.BaseHost, Err: fmt.Errorf("select entries: %w", err)}
	}

	items := make([]domain.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, p.parseEntry(entry))
	}

	return items, nil
}

func (p *Parser) parseEntry(entry *xmlquery.Node) domain.Item {
	title := childText(entry, "title")
	if title == "" {
		title = UnknownTitle
	}

	link := p.resolve(acquisitionHref(entry))
	if link == "" {
		link = childText(entry, "id")
	}

	return domain.NewItem(title, link, p.description(entry), p.pubDate(childText(entry, "updated")))
}

// acquisitionHref picks the first /epub/ acquisition link, else the first
// acquisition link with an href
func acquisitionHref(entry *xmlquery.Node) string {
	var first string
	for _, link := range children(entry, "link") {
		if !isAcquisition(link.SelectAttr("rel")) {
			continue
		}
		href := strings.TrimSpace(link.SelectAttr("href"))
		if href == "" {
			continue
		}
		if strings.Contains(href, epubMarker) {
			return href
		}
		if first == "" {
			first = href
		}
	}
	return first
}

func isAcquisition(rel string) bool {
	return rel == AcquisitionRel || strings.HasPrefix(rel, AcquisitionRel+"/")
}

// resolve makes href absolute against the base host
func (p *Parser) resolve(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if p.BaseHost == "" {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return "https://" + p.BaseHost + href
	}
	return "https://" + p.BaseHost + "/" + href
}

func (p *Parser) pubDate(updated string) string {
	if t, ok := timeutil.ParseISO(updated); ok {
		return timeutil.FormatRSS(t)
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return timeutil.FormatRSS(now())
}

func (p *Parser) description(entry *xmlquery.Node) string {
	labels := p.Labels
	var parts []string

	if author := nestedText(entry, "author", "name"); author != "" {
		parts = append(parts, labels.Author+author)
	}
	if publisher := nestedText(entry, "publisher", "name"); publisher != "" {
		parts = append(parts, labels.Publisher+publisher)
	}
	if summary := childText(entry, "summary"); summary != "" {
		parts = append(parts, labels.Summary+summary)
	}

	if len(parts) == 0 {
		return labels.Fallback
	}
	return strings.Join(parts, labels.Separator)
}

// rootElement returns the document element, skipping declarations and comments
func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

// children returns the direct element children with the given local name,
// whatever their namespace prefix
func children(n *xmlquery.Node, name string) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == name {
			out = append(out, c)
		}
	}
	return out
}

func child(n *xmlquery.Node, name string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == name {
			return c
		}
	}
	return nil
}

func childText(n *xmlquery.Node, name string) string {
	if c := child(n, name); c != nil {
		return strings.TrimSpace(c.InnerText())
	}
	return ""
}

func nestedText(n *xmlquery.Node, outer, inner string) string {
	if c := child(n, outer); c != nil {
		return childText(c, inner)
	}
	return ""
}
