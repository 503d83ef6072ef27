package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sriaruvi/storefront/internal/domain"
	"github.com/sriaruvi/storefront/internal/service"
	apperrors "github.com/sriaruvi/storefront/pkg/errors"
	"github.com/sriaruvi/storefront/pkg/httputil"
)

// CatalogHandler handles the public storefront endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// filterStateFromQuery builds the filter selections from query parameters.
// Facet parameters repeat (?category=Laptops&category=Televisions); price
// bounds default to the full range when absent.
func filterStateFromQuery(r *http.Request) (domain.FilterState, error) {
	filters := domain.NewFilterState()
	q := r.URL.Query()

	filters.Search = q.Get("search")
	filters.Categories = q["category"]
	filters.Brands = q["brand"]
	filters.Materials = q["material"]
	filters.Colors = q["color"]

	if v := q.Get("min_price"); v != "" {
		min, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filters, apperrors.InvalidInput("min_price must be a valid number")
		}
		filters.PriceRange.Min = min
	}
	if v := q.Get("max_price"); v != "" {
		max, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filters, apperrors.InvalidInput("max_price must be a valid number")
		}
		filters.PriceRange.Max = max
	}
	if filters.PriceRange.Min > filters.PriceRange.Max {
		return filters, apperrors.InvalidInput("min_price must not exceed max_price")
	}

	return filters, nil
}

// GetCatalog handles GET /api/v1/catalog/{section}.
// Returns the filtered product grid plus the facet sets for the section.
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")

	filters, err := filterStateFromQuery(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := h.service.GetCatalog(r.Context(), section, filters)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// GetProduct handles GET /api/v1/catalog/{section}/{idOrSlug}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	idOrSlug := chi.URLParam(r, "idOrSlug")

	product, err := h.service.GetProduct(r.Context(), idOrSlug)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// Detail routes are section-scoped; a product reached through the wrong
	// section or an unavailable product is a 404, not a leak.
	if product.Section != section || !product.Available {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"},
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}
