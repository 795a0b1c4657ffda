// Package client provides the HTTP client for the listing API geo lookup.
package client

import (
	"context"
	"net/url"
	"strconv"

	"homegate_search/internal/geo/transport"
	"homegate_search/platform/apiclient"
)

const lookupPath = "/geo/locations"

// Client performs geo lookups against the listing API.
type Client struct {
	api *apiclient.Client
}

// New creates a new geo lookup client.
func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// Lookup searches locations by name in the given language.
func (c *Client) Lookup(ctx context.Context, lang, name string, size int) (*transport.LookupResponse, error) {
	query := url.Values{}
	query.Set("lang", lang)
	query.Set("name", name)
	query.Set("size", strconv.Itoa(size))

	var resp transport.LookupResponse
	if err := c.api.GetJSON(ctx, "geo_lookup", lookupPath, query, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
