// Package transport provides DTOs for the listings domain.
package transport

import (
	geotransport "homegate_search/internal/geo/transport"
)

// OfferType selects buy or rent listings.
type OfferType string

const (
	OfferBuy  OfferType = "BUY"
	OfferRent OfferType = "RENT"
)

// Valid reports whether t is a known offer type.
func (t OfferType) Valid() bool {
	return t == OfferBuy || t == OfferRent
}

// Search defaults.
const (
	DefaultSortBy        = "dateCreated"
	DefaultSortDirection = "desc"
	DefaultSize          = 20
	// Fieldset is the listing projection used for result pages.
	Fieldset = "srp-list"
)

// Filters are additional query fields keyed in underscore form, e.g.
// "monthly_rent" or "number_of_rooms". Values are sent unchanged.
type Filters map[string]any

// Range is an inclusive numeric bound; absent bounds are omitted.
type Range struct {
	From *float64 `json:"from,omitempty"`
	To   *float64 `json:"to,omitempty"`
}

// Between returns a range with both bounds.
func Between(from, to float64) Range { return Range{From: &from, To: &to} }

// AtLeast returns a range with only a lower bound.
func AtLeast(from float64) Range { return Range{From: &from} }

// AtMost returns a range with only an upper bound.
func AtMost(to float64) Range { return Range{To: &to} }

// SearchParams are the caller-facing search options.
// Zero values select the defaults: House and Flat categories, newest first,
// first page of 20.
type SearchParams struct {
	Location          geotransport.Location `json:"location"`
	Categories        []string              `json:"categories,omitempty" validate:"omitempty,dive,required"`
	ExcludeCategories []string              `json:"excludeCategories,omitempty" validate:"omitempty,dive,required"`
	SortBy            string                `json:"sortBy,omitempty"`
	SortDirection     string                `json:"sortDirection,omitempty" validate:"omitempty,oneof=asc desc"`
	From              int                   `json:"from,omitempty" validate:"gte=0"`
	Size              int                   `json:"size,omitempty" validate:"gte=0"`
	Filters           Filters               `json:"filters,omitempty"`
}

// SearchRequest is a fully resolved search, ready to be encoded.
type SearchRequest struct {
	OfferType         OfferType
	Categories        []string
	GeoTags           []geotransport.GeoTag
	ExcludeCategories []string
	SortBy            string
	SortDirection     string
	From              int
	Size              int
	Filters           Filters
}

// Result is the raw JSON returned by the listing API.
type Result = map[string]any
