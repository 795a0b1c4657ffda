// Package geo provides the geo resolution bounded context module.
// This file defines the module that encapsulates all geo setup.
package geo

import (
	"homegate_search/internal/geo/client"
	"homegate_search/internal/geo/handler"
	"homegate_search/internal/geo/repository"
	"homegate_search/internal/geo/service"
	apphttp "homegate_search/internal/http"
	"homegate_search/platform/apiclient"
	"homegate_search/platform/logger"
	"homegate_search/platform/metrics"
	"homegate_search/platform/validator"
)

// Module is the geo bounded context module implementing http.Module.
type Module struct {
	service *service.Service
	handler *handler.Handler
}

// Deps groups what the module needs from the composition root.
type Deps struct {
	API      *apiclient.Client
	Language string
	// ResultsCount is the default lookup size.
	ResultsCount int
	// Cache is optional; nil disables lookup caching.
	Cache     repository.Cache
	Metrics   *metrics.Metrics
	Validator *validator.Validator
	Logger    *logger.Logger
}

// NewModule creates and initializes the geo module.
func NewModule(deps Deps) *Module {
	svc := service.New(client.New(deps.API), service.Options{
		Language:     deps.Language,
		ResultsCount: deps.ResultsCount,
		Cache:        deps.Cache,
		Metrics:      deps.Metrics,
	}, deps.Logger)

	if deps.Logger != nil {
		deps.Logger.Info("geo module initialized", "lang", svc.Language(), "cache", deps.Cache != nil)
	}

	return &Module{
		service: svc,
		handler: handler.New(svc, deps.Validator),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "geo"
}

// Service returns the geo service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts geo routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/geo"))
}

// Compile-time checks
var (
	_ apphttp.Module = (*Module)(nil)
	_ Resolver       = (*service.Service)(nil)
)
