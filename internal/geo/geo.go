// Package geo provides the geo resolution bounded context.
// This file defines the public interfaces exposed to other domains.
package geo

import (
	"context"

	"homegate_search/internal/geo/transport"
)

// Resolver defines the public interface for turning locations into geo tags.
// Other domains should depend on this interface, not the concrete implementation.
type Resolver interface {
	// Resolve looks up a single name. Empty names and literal tags never hit the network.
	Resolve(ctx context.Context, req transport.ResolveRequest) ([]transport.GeoTag, error)

	// ResolveLocation resolves every leaf of loc and rejects leaves with more than maxPerLeaf tags.
	ResolveLocation(ctx context.Context, loc transport.Location, maxPerLeaf int) ([]transport.GeoTag, error)
}
