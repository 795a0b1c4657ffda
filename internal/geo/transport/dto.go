// Package transport provides DTOs for the geo domain.
package transport

// GeoTag is the opaque location identifier the listing API filters on,
// e.g. geo-canton-zurich or geo-zipcode-8800.
type GeoTag = string

// CountryTag is used when no location is given.
const CountryTag GeoTag = "geo-country-switzerland"

// Center is the reference point of a geo location.
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GeoLocation is the part of a lookup hit that identifies the place.
type GeoLocation struct {
	ID     GeoTag  `json:"id"`
	Center *Center `json:"center,omitempty"`
}

// LookupResult is a single hit of a geo lookup.
type LookupResult struct {
	GeoLocation GeoLocation `json:"geoLocation"`
}

// LookupResponse mirrors GET /geo/locations.
type LookupResponse struct {
	Total   int            `json:"total"`
	Results []LookupResult `json:"results"`
}

// ResolveRequest contains parameters for resolving a location name.
type ResolveRequest struct {
	Name string
	// Language overrides the resolver default when set.
	Language string
	// ResultsCount caps the lookup; zero uses the resolver default.
	ResultsCount int
	// Unique collapses hits that share a center.
	Unique bool
}

// TagsRequest represents the query parameters of the geo tags endpoint.
type TagsRequest struct {
	Name   string `form:"name"`
	Size   int    `form:"size" validate:"omitempty,gte=1,lte=500"`
	Unique *bool  `form:"unique"`
	Lang   string `form:"lang" validate:"omitempty,oneof=en de fr it"`
}

// TagsResponse is returned by the geo tags endpoint.
type TagsResponse struct {
	GeoTags []GeoTag `json:"geoTags"`
}
