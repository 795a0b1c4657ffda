// Package listings provides the listing search bounded context module.
package listings

import (
	apphttp "homegate_search/internal/http"
	"homegate_search/internal/listings/client"
	"homegate_search/internal/listings/handler"
	"homegate_search/internal/listings/service"
	"homegate_search/platform/apiclient"
	"homegate_search/platform/logger"
	"homegate_search/platform/validator"
)

// Module is the listings bounded context module implementing http.Module.
type Module struct {
	service *service.Service
	handler *handler.Handler
}

// NewModule creates and initializes the listings module.
// geo is usually the geo module's service.
func NewModule(
	api *apiclient.Client,
	geo service.GeoResolver,
	maxSearchGeo int,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	svc := service.New(client.New(api), geo, maxSearchGeo, val, log)

	return &Module{
		service: svc,
		handler: handler.New(svc),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "listings"
}

// Service returns the listings service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts listing routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/listings"))
}

// Compile-time checks
var (
	_ apphttp.Module = (*Module)(nil)
	_ ListingService = (*service.Service)(nil)
)
