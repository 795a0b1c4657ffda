package service

import (
	"homegate_search/internal/listings/transport"
	"homegate_search/platform/casing"
)

// BuildSearchRequest encodes a resolved search into the listing API body.
//
// Filters are camel-cased and merged into "query" after the fixed fields,
// so a filter with the same name replaces the fixed value. RENT bodies always
// carry excludeCategories; BUY bodies never do.
func BuildSearchRequest(req transport.SearchRequest) map[string]any {
	query := map[string]any{
		"offerType":  string(req.OfferType),
		"categories": nonNil(req.Categories),
		"location": map[string]any{
			"geoTags": nonNil(req.GeoTags),
		},
	}

	if req.OfferType == transport.OfferRent {
		query["excludeCategories"] = nonNil(req.ExcludeCategories)
	}

	for key, value := range casing.CamelKeys(req.Filters) {
		query[key] = value
	}

	return map[string]any{
		"query":          query,
		"sortBy":         req.SortBy,
		"sortDirection":  req.SortDirection,
		"from":           req.From,
		"size":           req.Size,
		"trackTotalHits": true,
		"fieldset":       transport.Fieldset,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
