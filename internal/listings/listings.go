// Package listings provides the listing search bounded context.
// This file defines the public interfaces exposed to other domains.
package listings

import (
	"context"

	"homegate_search/internal/listings/transport"
)

// ListingService defines the public interface for listing searches.
type ListingService interface {
	SearchBuy(ctx context.Context, params transport.SearchParams) (transport.Result, error)
	SearchRent(ctx context.Context, params transport.SearchParams) (transport.Result, error)
	Search(ctx context.Context, offerType transport.OfferType, params transport.SearchParams) (transport.Result, error)
	GetListing(ctx context.Context, id string) (transport.Result, error)
}
