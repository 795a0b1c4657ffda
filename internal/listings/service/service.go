// Package service provides business logic for listing searches.
package service

import (
	"context"
	"fmt"
	"strings"

	geotransport "homegate_search/internal/geo/transport"
	"homegate_search/internal/listings/transport"
	"homegate_search/platform/apperr"
	"homegate_search/platform/logger"
	"homegate_search/platform/validator"
)

// GeoResolver turns a location into geo tags.
type GeoResolver interface {
	ResolveLocation(ctx context.Context, loc geotransport.Location, maxPerLeaf int) ([]geotransport.GeoTag, error)
}

// Searcher talks to the listing API.
type Searcher interface {
	Search(ctx context.Context, body map[string]any) (transport.Result, error)
	GetListing(ctx context.Context, id string) (transport.Result, error)
}

// Service handles listing searches and detail lookups.
type Service struct {
	client       Searcher
	geo          GeoResolver
	maxSearchGeo int
	val          *validator.Validator
	log          *logger.Logger
}

// New creates a new listings service. maxSearchGeo is the per-location tag ceiling.
func New(client Searcher, geo GeoResolver, maxSearchGeo int, val *validator.Validator, log *logger.Logger) *Service {
	if maxSearchGeo < 1 {
		maxSearchGeo = 1
	}
	if val == nil {
		val = validator.New()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		client:       client,
		geo:          geo,
		maxSearchGeo: maxSearchGeo,
		val:          val,
		log:          log,
	}
}

// SearchBuy searches listings for sale.
func (s *Service) SearchBuy(ctx context.Context, params transport.SearchParams) (transport.Result, error) {
	return s.Search(ctx, transport.OfferBuy, params)
}

// SearchRent searches listings for rent.
func (s *Service) SearchRent(ctx context.Context, params transport.SearchParams) (transport.Result, error) {
	return s.Search(ctx, transport.OfferRent, params)
}

// Search resolves the location, builds the request body and posts it.
func (s *Service) Search(ctx context.Context, offerType transport.OfferType, params transport.SearchParams) (transport.Result, error) {
	if !offerType.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("unknown offer type %q: expected BUY or RENT", offerType))
	}
	if err := s.val.Struct(params); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid search parameters", err)
	}

	geoTags, err := s.geo.ResolveLocation(ctx, params.Location, s.maxSearchGeo)
	if err != nil {
		return nil, err
	}

	req := applyDefaults(offerType, params)
	req.GeoTags = geoTags

	s.log.WithContext(ctx).Debug("searching listings",
		"offerType", offerType,
		"location", params.Location.String(),
		"geoTags", len(geoTags),
	)

	return s.client.Search(ctx, BuildSearchRequest(req))
}

// GetListing fetches a single listing.
func (s *Service) GetListing(ctx context.Context, id string) (transport.Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.Validation("listing id is required")
	}
	return s.client.GetListing(ctx, id)
}

func applyDefaults(offerType transport.OfferType, params transport.SearchParams) transport.SearchRequest {
	req := transport.SearchRequest{
		OfferType:         offerType,
		Categories:        params.Categories,
		ExcludeCategories: params.ExcludeCategories,
		SortBy:            params.SortBy,
		SortDirection:     params.SortDirection,
		From:              params.From,
		Size:              params.Size,
		Filters:           params.Filters,
	}

	if req.Categories == nil {
		req.Categories = transport.DefaultCategories()
	}
	if req.SortBy == "" {
		req.SortBy = transport.DefaultSortBy
	}
	if req.SortDirection == "" {
		req.SortDirection = transport.DefaultSortDirection
	}
	if req.Size == 0 {
		req.Size = transport.DefaultSize
	}

	return req
}
