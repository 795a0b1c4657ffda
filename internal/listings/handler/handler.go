package handler

import (
	"context"
	"fmt"
	"net/http"

	"homegate_search/internal/listings/transport"
	"homegate_search/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest = "invalid request"

	// MaxPageSize caps the page size accepted over HTTP.
	MaxPageSize = 100
)

type searcher interface {
	Search(ctx context.Context, offerType transport.OfferType, params transport.SearchParams) (transport.Result, error)
	GetListing(ctx context.Context, id string) (transport.Result, error)
}

// Handler handles HTTP requests for listings.
type Handler struct {
	svc searcher
}

// New creates a new listings handler.
func New(svc searcher) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers listing routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search/buy", h.search(transport.OfferBuy))
	rg.POST("/search/rent", h.search(transport.OfferRent))
	rg.GET("/:id", h.GetByID)
}

func (h *Handler) search(offerType transport.OfferType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params transport.SearchParams
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&params); err != nil {
				httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
				return
			}
		}
		if params.Size > MaxPageSize {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest,
				fmt.Sprintf("size must not exceed %d", MaxPageSize))
			return
		}

		result, err := h.svc.Search(c.Request.Context(), offerType, params)
		if httpkit.HandleError(c, err) {
			return
		}

		httpkit.OK(c, result)
	}
}

// GetByID handles GET /api/v1/listings/:id
func (h *Handler) GetByID(c *gin.Context) {
	result, err := h.svc.GetListing(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
