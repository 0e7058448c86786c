// ABOUTME: Feed handlers for the Huma API
// ABOUTME: Serves rendered RSS documents and the list of available feeds

package handlers

import (
	"context"
	"net/http"

	"rssgen-api/core/domain"

	"github.com/danielgtaylor/huma/v2"
)

// FeedService interface defines the methods needed from the feed service
type FeedService interface {
	GetFeed(ctx context.Context, id string) (*domain.RenderedFeed, error)
	Sources() []string
}

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService FeedService
	feedLink    string
}

// NewFeedHandler creates a new feed handler.
// feedLink is the public base URL advertised in the index.
func NewFeedHandler(feedService FeedService, feedLink string) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		feedLink:    feedLink,
	}
}

// RegisterRoutes registers all feed-related routes
func (h *FeedHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "index",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Service index",
		Description: "Lists the available feeds together with their subscription URLs",
		Tags:        []string{"Feeds"},
	}, h.Index)

	huma.Register(api, huma.Operation{
		OperationID: "listFeeds",
		Method:      http.MethodGet,
		Path:        "/api/feeds",
		Summary:     "List available feeds",
		Description: "Returns the ids of every registered source",
		Tags:        []string{"Feeds"},
	}, h.ListFeeds)

	huma.Register(api, huma.Operation{
		OperationID: "getFeed",
		Method:      http.MethodGet,
		Path:        "/{feed}",
		Summary:     "Get an RSS feed",
		Description: "Fetches the source's catalog (through the cache) and renders it as RSS 2.0. " +
			"A source that fails upstream yields a valid feed with no items.",
		Tags: []string{"Feeds"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "RSS 2.0 document",
				Content: map[string]*huma.MediaType{
					"application/rss+xml": {},
				},
			},
		},
	}, h.GetFeed)
}

// GetFeedInput defines the input for the GetFeed operation
type GetFeedInput struct {
	Feed string `path:"feed" minLength:"1" doc:"Feed (source) id, e.g. emagazine"`
}

// GetFeedOutput carries the raw RSS document
type GetFeedOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// GetFeed handles the GET /{feed} endpoint
func (h *FeedHandler) GetFeed(ctx context.Context, input *GetFeedInput) (*GetFeedOutput, error) {
	feed, err := h.feedService.GetFeed(ctx, input.Feed)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &GetFeedOutput{
		ContentType: feed.ContentType,
		Body:        feed.Body,
	}, nil
}

// ListFeedsOutput defines the output for the ListFeeds operation
type ListFeedsOutput struct {
	Body struct {
		Feeds []string `json:"feeds" doc:"Registered feed ids"`
		Count int      `json:"count" doc:"Number of registered feeds"`
	}
}

// ListFeeds handles the GET /api/feeds endpoint
func (h *FeedHandler) ListFeeds(ctx context.Context, input *struct{}) (*ListFeedsOutput, error) {
	ids := h.feedService.Sources()
	if ids == nil {
		ids = []string{}
	}

	out := &ListFeedsOutput{}
	out.Body.Feeds = ids
	out.Body.Count = len(ids)
	return out, nil
}

// FeedLink is one entry of the service index
type FeedLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// IndexOutput defines the output for the Index operation
type IndexOutput struct {
	Body struct {
		Name  string     `json:"name"`
		Feeds []FeedLink `json:"feeds"`
	}
}

// Index handles the GET / endpoint
func (h *FeedHandler) Index(ctx context.Context, input *struct{}) (*IndexOutput, error) {
	out := &IndexOutput{}
	out.Body.Name = "RSSGen"
	out.Body.Feeds = make([]FeedLink, 0)
	for _, id := range h.feedService.Sources() {
		out.Body.Feeds = append(out.Body.Feeds, FeedLink{ID: id, URL: h.feedLink + "/" + id})
	}
	return out, nil
}
