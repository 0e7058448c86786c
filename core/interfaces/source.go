// ABOUTME: Source interface is the uniform contract between the router and upstream adapters
// ABOUTME: Every configured feed is served by exactly one Source

package interfaces

import (
	"context"

	"rssgen-api/core/domain"
)

// Source produces normalized items for one upstream.
// FetchItems never returns an error: failures are reported through
// ItemsResult.Err alongside an empty item list.
type Source interface {
	// ID is the identifier the feed is served under
	ID() string

	// Title is the human readable channel title
	Title() string

	// FetchItems fetches and parses the upstream document
	FetchItems(ctx context.Context) domain.ItemsResult
}
