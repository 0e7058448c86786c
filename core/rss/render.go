// ABOUTME: RSS 2.0 renderer turns normalized items into an XML document
// ABOUTME: Channel metadata is derived from the source title and the public feed link

package rss

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"rssgen-api/core/domain"
	timeutil "rssgen-api/pkg/utils/time"
)

// ContentType is the media type of rendered documents
const ContentType = "application/rss+xml; charset=utf-8"

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8" ?>` + "\n"

// ChannelInfo describes the channel wrapping the items
type ChannelInfo struct {
	// ID is the feed identifier appended to FeedLink
	ID string

	// Title is the human readable source title
	Title string

	// FeedLink is the public base URL of this service
	FeedLink string

	// Now stamps pubDate and lastBuildDate; nil uses time.Now
	Now func() time.Time
}

type document struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	PubDate       string `xml:"pubDate"`
	LastBuildDate string `xml:"lastBuildDate"`
	Items         []item `xml:"item"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        guid   `xml:"guid"`
}

type guid struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Render builds an RSS 2.0 document. An empty item list still yields a
// valid document with channel metadata.
func Render(items []domain.Item, info ChannelInfo) ([]byte, error) {
	now := time.Now
	if info.Now != nil {
		now = info.Now
	}
	stamp := timeutil.FormatRSS(now().UTC())

	title := info.Title
	if title == "" {
		title = info.ID
	}

	doc := document{
		Version: "2.0",
		Channel: channel{
			Title:         title + " RSS Feed",
			Link:          strings.TrimRight(info.FeedLink, "/") + "/" + info.ID,
			Description:   fmt.Sprintf("Latest updates from %s source", title),
			PubDate:       stamp,
			LastBuildDate: stamp,
			Items:         make([]item, 0, len(items)),
		},
	}

	for _, it := range items {
		doc.Channel.Items = append(doc.Channel.Items, item{
			Title:       it.Title,
			Link:        it.Link,
			Description: it.Description,
			PubDate:     it.PubDate,
			GUID:        guid{IsPermaLink: true, Value: it.ID()},
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode rss: %w", err)
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}
