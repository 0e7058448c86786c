// ABOUTME: Item domain model is the source-agnostic entry produced by every source adapter
// ABOUTME: Items are built fresh per request and consumed directly by the RSS renderer

package domain

// Item represents a normalized catalog entry ready for RSS rendering.
// Title and Link are always set, possibly to the empty string.
type Item struct {
	// Title is the entry headline
	Title string

	// Link is the absolute URL of the entry (download link or entry id)
	Link string

	// Description may contain simple inline markup such as <br>
	Description string

	// PubDate is already formatted as "Mon, 02 Jan 2006 15:04:05 -0700"
	PubDate string

	// GUID identifies the item; empty means "same as Link"
	GUID string
}

// NewItem creates an item whose GUID defaults to its link
func NewItem(title, link, description, pubDate string) Item {
	return Item{
		Title:       title,
		Link:        link,
		Description: description,
		PubDate:     pubDate,
		GUID:        link,
	}
}

// ID returns the GUID, falling back to the link
func (i Item) ID() string {
	if i.GUID != "" {
		return i.GUID
	}
	return i.Link
}

// ItemsResult is the outcome of asking a source for its items.
// Items is never nil. Err explains an empty result and is informational only:
// sources report failures here instead of returning them.
type ItemsResult struct {
	Items []Item
	Err   error
}

// OK reports whether the items were produced without a recovered failure
func (r ItemsResult) OK() bool {
	return r.Err == nil
}

// ItemsOK builds a successful result
func ItemsOK(items []Item) ItemsResult {
	if items == nil {
		items = []Item{}
	}
	return ItemsResult{Items: items}
}

// ItemsFailed builds an empty result carrying the recovered error
func ItemsFailed(err error) ItemsResult {
	return ItemsResult{Items: []Item{}, Err: err}
}
