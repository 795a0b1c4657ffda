// Package service provides business logic for resolving locations into geo tags.
package service

import (
	"context"
	"fmt"
	"strings"

	"homegate_search/internal/geo/repository"
	"homegate_search/internal/geo/transport"
	"homegate_search/platform/apperr"
	"homegate_search/platform/logger"
	"homegate_search/platform/metrics"
	"homegate_search/platform/validator"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultLanguage is used when neither the request nor the resolver sets one.
	DefaultLanguage = "en"
	// DefaultResultsCount caps a lookup when the caller does not.
	DefaultResultsCount = 100
)

// Lookuper fetches raw geo hits from the listing API.
type Lookuper interface {
	Lookup(ctx context.Context, lang, name string, size int) (*transport.LookupResponse, error)
}

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	Language     string
	ResultsCount int
	// Cache is optional; nil disables caching.
	Cache   repository.Cache
	Metrics *metrics.Metrics
}

// Service resolves location names into geo tags.
type Service struct {
	client       Lookuper
	cache        repository.Cache
	group        singleflight.Group
	language     string
	resultsCount int
	metrics      *metrics.Metrics
	log          *logger.Logger
}

// New creates a new geo service. The language must already be valid, see NormalizeLanguage.
func New(client Lookuper, opts Options, log *logger.Logger) *Service {
	language := opts.Language
	if language == "" {
		language = DefaultLanguage
	}
	resultsCount := opts.ResultsCount
	if resultsCount <= 0 {
		resultsCount = DefaultResultsCount
	}
	if log == nil {
		log = logger.Discard()
	}

	return &Service{
		client:       client,
		cache:        opts.Cache,
		language:     language,
		resultsCount: resultsCount,
		metrics:      opts.Metrics,
		log:          log,
	}
}

// Language returns the default lookup language.
func (s *Service) Language() string {
	return s.language
}

// Resolve turns a single location name into geo tags.
//
// An empty name resolves to the country tag and a literal geo tag resolves
// to itself; neither touches the network. A name made only of whitespace is
// a validation error. A lookup without hits is a not-found error, never an
// empty slice.
func (s *Service) Resolve(ctx context.Context, req transport.ResolveRequest) ([]transport.GeoTag, error) {
	if req.Name == "" {
		return []transport.GeoTag{transport.CountryTag}, nil
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("location name must not be blank").
			WithDetails(map[string]string{"location": req.Name})
	}
	if validator.IsGeoTag(name) {
		return []transport.GeoTag{name}, nil
	}

	lang := s.language
	if req.Language != "" {
		normalized, err := NormalizeLanguage(req.Language)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindValidation, "unsupported lookup language", err)
		}
		lang = normalized
	}

	size := req.ResultsCount
	if size <= 0 {
		size = s.resultsCount
	}

	results, err := s.lookup(ctx, lang, name, size)
	if err != nil {
		return nil, err
	}

	if req.Unique {
		results = uniqueByCenter(results)
	}
	if len(results) > size {
		results = results[:size]
	}

	tags := make([]transport.GeoTag, 0, len(results))
	for _, r := range results {
		tags = append(tags, r.GeoLocation.ID)
	}
	return tags, nil
}

// ResolveLocation resolves every leaf of loc in order and concatenates the tags.
// A leaf that yields more than maxPerLeaf tags is rejected as ambiguous.
func (s *Service) ResolveLocation(ctx context.Context, loc transport.Location, maxPerLeaf int) ([]transport.GeoTag, error) {
	if maxPerLeaf < 1 {
		maxPerLeaf = 1
	}

	var tags []transport.GeoTag
	for _, leaf := range loc.Leaves() {
		var (
			resolved []transport.GeoTag
			err      error
		)

		switch leaf.Kind() {
		case transport.LocationAnywhere:
			resolved = []transport.GeoTag{transport.CountryTag}
		case transport.LocationTag:
			if !validator.IsGeoTag(leaf.Value()) {
				return nil, apperr.Validation(fmt.Sprintf("invalid geo tag: %q", leaf.Value())).
					WithDetails(map[string]string{"location": leaf.Value()})
			}
			resolved = []transport.GeoTag{leaf.Value()}
		default:
			resolved, err = s.Resolve(ctx, transport.ResolveRequest{Name: leaf.Value(), Unique: true})
			if err != nil {
				return nil, err
			}
		}

		if len(resolved) > maxPerLeaf {
			return nil, apperr.Ambiguous(fmt.Sprintf(
				"%d geo tags found with limit %d for the requested location: %s. "+
					"Refine the search or increase the limit; a postal code is the most precise location",
				len(resolved), maxPerLeaf, leaf.Value(),
			)).WithDetails(map[string]any{
				"location": leaf.Value(),
				"found":    len(resolved),
				"limit":    maxPerLeaf,
			})
		}

		tags = append(tags, resolved...)
	}

	if tags == nil {
		tags = []transport.GeoTag{}
	}
	return tags, nil
}

func (s *Service) lookup(ctx context.Context, lang, name string, size int) ([]transport.LookupResult, error) {
	key := repository.CacheKey(lang, name, size)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.WithContext(ctx).Warn("geo cache read failed", "error", err)
		} else if ok {
			s.metrics.IncCacheHit()
			return cached, nil
		}
		s.metrics.IncCacheMiss()
	}

	value, err, _ := s.group.Do(key, func() (any, error) {
		resp, err := s.client.Lookup(ctx, lang, name, size)
		if err != nil {
			return nil, err
		}
		if resp.Total == 0 || len(resp.Results) == 0 {
			return nil, apperr.NotFound(fmt.Sprintf(
				"location not found: %s. Only valid homegate locations are accepted", name,
			)).WithDetails(map[string]string{"location": name})
		}

		if s.cache != nil {
			if err := s.cache.Set(ctx, key, resp.Results); err != nil {
				s.log.WithContext(ctx).Warn("geo cache write failed", "error", err)
			}
		}
		return resp.Results, nil
	})
	if err != nil {
		return nil, err
	}

	return value.([]transport.LookupResult), nil
}

type centerKey struct {
	lat, lon float64
}

// uniqueByCenter keeps the first hit for every center. Hits without a center
// cannot be compared and are always kept.
func uniqueByCenter(results []transport.LookupResult) []transport.LookupResult {
	seen := make(map[centerKey]struct{}, len(results))
	unique := make([]transport.LookupResult, 0, len(results))

	for _, r := range results {
		center := r.GeoLocation.Center
		if center == nil {
			unique = append(unique, r)
			continue
		}
		key := centerKey{lat: center.Lat, lon: center.Lon}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}

	return unique
}
