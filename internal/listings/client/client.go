// Package client provides the HTTP client for listing search and detail calls.
package client

import (
	"context"
	"net/url"

	"homegate_search/internal/listings/transport"
	"homegate_search/platform/apiclient"
	"homegate_search/platform/apperr"
)

const (
	searchPath  = "/search/listings"
	listingPath = "/listings/listing/"
)

// Client sends listing requests to the listing API.
type Client struct {
	api *apiclient.Client
}

// New creates a new listings client.
func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// Search posts an encoded search body and returns the decoded response verbatim.
func (c *Client) Search(ctx context.Context, body map[string]any) (transport.Result, error) {
	var result transport.Result
	if err := c.api.PostJSON(ctx, "listings_search", searchPath, body, &result); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errEmptyResponse("listings_search")
	}
	return result, nil
}

// GetListing fetches a single listing by ID.
func (c *Client) GetListing(ctx context.Context, id string) (transport.Result, error) {
	query := url.Values{}
	query.Set("sanitize", "true")

	var result transport.Result
	if err := c.api.GetJSON(ctx, "listings_get", listingPath+url.PathEscape(id), query, &result); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errEmptyResponse("listings_get")
	}
	return result, nil
}

// errEmptyResponse reports a 2xx answer whose body decoded to JSON null.
func errEmptyResponse(operation string) error {
	return apperr.Transport("empty response body", nil).WithOp(operation)
}
