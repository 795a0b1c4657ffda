// Package homegate is a client for the homegate.ch listing search API.
//
// It resolves free-text locations into geo tags, builds BUY and RENT search
// requests with sensible defaults and fetches single listings. Responses are
// returned as decoded JSON without further modelling.
//
//	client, err := homegate.New(homegate.Options{Language: "de", MaxSearchGeo: 2})
//	if err != nil {
//		return err
//	}
//	result, err := client.SearchRentListings(ctx, homegate.SearchParams{
//		Location: homegate.ParseLocation("8800"),
//		Filters:  homegate.Filters{"monthly_rent": homegate.AtMost(3000)},
//	})
//
// Errors carry an apperr.Kind: KindNotFound for unknown locations,
// KindAmbiguous when a location matches more places than MaxSearchGeo,
// KindTransport for network and upstream failures and KindConfiguration
// for invalid Options.
package homegate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	geoclient "homegate_search/internal/geo/client"
	geoservice "homegate_search/internal/geo/service"
	geotransport "homegate_search/internal/geo/transport"
	listingsclient "homegate_search/internal/listings/client"
	listingsservice "homegate_search/internal/listings/service"
	"homegate_search/platform/apiclient"
	"homegate_search/platform/apperr"
	"homegate_search/platform/logger"
	"homegate_search/platform/metrics"
	"homegate_search/platform/validator"
)

// Options configures a Client. Zero values select the defaults.
type Options struct {
	// Language of location lookups: en, de, fr or it. Default en.
	Language string
	// MaxSearchGeo is the most geo tags a single location may resolve to
	// before a search is rejected as ambiguous. Default 1.
	MaxSearchGeo int
	// BaseURL overrides https://api.homegate.ch.
	BaseURL string
	// Timeout bounds every request. Default 10s; ignored when HTTPClient is set.
	Timeout time.Duration
	// GeoResultsCount is the lookup size used by searches. Default 100.
	GeoResultsCount int
	HTTPClient      *http.Client
	Logger          *logger.Logger
	// RateLimit caps outgoing requests per second; zero disables it.
	RateLimit float64
	// Cache keeps geo lookups between calls; nil disables caching.
	Cache   GeoCache
	Metrics *metrics.Metrics
}

// Client is safe for concurrent use.
type Client struct {
	geo          *geoservice.Service
	listings     *listingsservice.Service
	api          *apiclient.Client
	language     string
	maxSearchGeo int
}

// New validates opts and builds a Client.
func New(opts Options) (*Client, error) {
	lang, err := geoservice.NormalizeLanguage(opts.Language)
	if err != nil {
		return nil, err
	}

	maxSearchGeo := opts.MaxSearchGeo
	switch {
	case maxSearchGeo == 0:
		maxSearchGeo = 1
	case maxSearchGeo < 0:
		return nil, apperr.Configuration(fmt.Sprintf("max search geo must be at least 1, got %d", maxSearchGeo))
	}
	if opts.GeoResultsCount < 0 {
		return nil, apperr.Configuration(fmt.Sprintf("geo results count must not be negative, got %d", opts.GeoResultsCount))
	}
	if opts.Timeout < 0 {
		return nil, apperr.Configuration("timeout must not be negative")
	}
	if opts.RateLimit < 0 {
		return nil, apperr.Configuration("rate limit must not be negative")
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	api := apiclient.New(apiclient.Options{
		BaseURL:    opts.BaseURL,
		Timeout:    opts.Timeout,
		HTTPClient: opts.HTTPClient,
		RateLimit:  opts.RateLimit,
		Burst:      1,
		Metrics:    opts.Metrics,
	}, log)

	geo := geoservice.New(geoclient.New(api), geoservice.Options{
		Language:     lang,
		ResultsCount: opts.GeoResultsCount,
		Cache:        opts.Cache,
		Metrics:      opts.Metrics,
	}, log)

	listings := listingsservice.New(listingsclient.New(api), geo, maxSearchGeo, validator.New(), log)

	return &Client{
		geo:          geo,
		listings:     listings,
		api:          api,
		language:     lang,
		maxSearchGeo: maxSearchGeo,
	}, nil
}

// Language returns the lookup language.
func (c *Client) Language() string { return c.language }

// MaxSearchGeo returns the per-location geo tag ceiling.
func (c *Client) MaxSearchGeo() int { return c.maxSearchGeo }

// BaseURL returns the API endpoint.
func (c *Client) BaseURL() string { return c.api.BaseURL() }

// GetGeoTags resolves a location name. resultsCount <= 0 uses the default of 100.
// An empty name yields CountryTag; a literal geo tag yields itself.
func (c *Client) GetGeoTags(ctx context.Context, name string, resultsCount int, unique bool) ([]GeoTag, error) {
	return c.geo.Resolve(ctx, geotransport.ResolveRequest{
		Name:         name,
		ResultsCount: resultsCount,
		Unique:       unique,
	})
}

// SearchListings runs a search for the given offer type.
func (c *Client) SearchListings(ctx context.Context, offerType OfferType, params SearchParams) (Result, error) {
	return c.listings.Search(ctx, offerType, params)
}

// SearchBuyListings searches listings for sale.
func (c *Client) SearchBuyListings(ctx context.Context, params SearchParams) (Result, error) {
	return c.listings.SearchBuy(ctx, params)
}

// SearchRentListings searches listings for rent.
func (c *Client) SearchRentListings(ctx context.Context, params SearchParams) (Result, error) {
	return c.listings.SearchRent(ctx, params)
}

// GetListing fetches a listing by ID.
func (c *Client) GetListing(ctx context.Context, id string) (Result, error) {
	return c.listings.GetListing(ctx, id)
}
