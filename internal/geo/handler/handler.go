package handler

import (
	"context"
	"net/http"

	"homegate_search/internal/geo/transport"
	"homegate_search/platform/httpkit"
	"homegate_search/platform/validator"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

type resolver interface {
	Resolve(ctx context.Context, req transport.ResolveRequest) ([]transport.GeoTag, error)
}

// Handler handles HTTP requests for geo tags.
type Handler struct {
	svc resolver
	val *validator.Validator
}

// New creates a new geo handler.
func New(svc resolver, val *validator.Validator) *Handler {
	if val == nil {
		val = validator.New()
	}
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers geo routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.Tags)
}

// Tags handles GET /api/v1/geo/tags?name=...&size=...&unique=...
func (h *Handler) Tags(c *gin.Context) {
	var req transport.TagsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	unique := true
	if req.Unique != nil {
		unique = *req.Unique
	}

	tags, err := h.svc.Resolve(c.Request.Context(), transport.ResolveRequest{
		Name:         req.Name,
		Language:     req.Lang,
		ResultsCount: req.Size,
		Unique:       unique,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.TagsResponse{GeoTags: tags})
}
