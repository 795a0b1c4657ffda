package homegate

import (
	"time"

	"homegate_search/internal/geo/repository"
	geotransport "homegate_search/internal/geo/transport"
	"homegate_search/internal/listings/transport"

	"github.com/redis/go-redis/v9"
)

type (
	// GeoTag identifies a location, e.g. geo-zipcode-8800.
	GeoTag = geotransport.GeoTag
	// Location is where to search; build one with Anywhere, Tag, Name, List or ParseLocation.
	Location = geotransport.Location
	// OfferType selects BUY or RENT listings.
	OfferType = transport.OfferType
	// SearchParams are the options of a listing search.
	SearchParams = transport.SearchParams
	// Filters are extra query fields keyed in underscore form.
	Filters = transport.Filters
	// Range is a numeric filter bound.
	Range = transport.Range
	// Result is the raw JSON returned by the listing API.
	Result = transport.Result
	// GeoCache stores geo lookup hits between calls.
	GeoCache = repository.Cache
	// GeoLookupResult is one cached geo lookup hit.
	GeoLookupResult = geotransport.LookupResult
)

const (
	Buy  = transport.OfferBuy
	Rent = transport.OfferRent

	// CountryTag is what an empty location resolves to.
	CountryTag = geotransport.CountryTag
)

var (
	// HouseCategories are the house-like listing categories.
	HouseCategories = transport.HouseCategories
	// FlatCategories are the flat-like listing categories.
	FlatCategories = transport.FlatCategories
)

// DefaultCategories returns a fresh copy of HouseCategories followed by FlatCategories.
func DefaultCategories() []string { return transport.DefaultCategories() }

func Anywhere() Location                    { return geotransport.Anywhere() }
func Tag(tag string) Location               { return geotransport.Tag(tag) }
func Name(name string) Location             { return geotransport.Name(name) }
func List(items ...Location) Location       { return geotransport.List(items...) }
func ParseLocation(raw string) Location     { return geotransport.ParseLocation(raw) }
func ParseLocations(raw ...string) Location { return geotransport.ParseLocations(raw...) }

func Between(from, to float64) Range { return transport.Between(from, to) }
func AtLeast(from float64) Range     { return transport.AtLeast(from) }
func AtMost(to float64) Range        { return transport.AtMost(to) }

// NewMemoryCache returns an in-process geo cache.
func NewMemoryCache(ttl time.Duration) GeoCache {
	return repository.NewMemoryCache(ttl)
}

// NewRedisCache returns a geo cache backed by an existing Redis client.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) GeoCache {
	return repository.NewRedisCache(client, ttl)
}
