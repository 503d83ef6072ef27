package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sriaruvi/storefront/internal/service"
	"github.com/sriaruvi/storefront/pkg/httputil"
	"github.com/sriaruvi/storefront/pkg/validator"
)

// AdminProductHandler handles the admin product CRUD endpoints.
type AdminProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewAdminProductHandler creates a new admin product HTTP handler.
func NewAdminProductHandler(svc *service.CatalogService, logger *slog.Logger) *AdminProductHandler {
	return &AdminProductHandler{
		service: svc,
		logger:  logger,
	}
}

// ProductRequest is the JSON request body for creating or replacing a product.
// Images may mix embedded previews with already-uploaded remote URLs.
type ProductRequest struct {
	Section     string   `json:"section" validate:"required,oneof=electronics furniture kitchen"`
	Title       string   `json:"title" validate:"required,min=1,max=500"`
	Description *string  `json:"description"`
	Category    string   `json:"category" validate:"required,min=1,max=200"`
	SubType     *string  `json:"sub_type"`
	Brand       *string  `json:"brand"`
	ModelNo     *string  `json:"model_no"`
	Material    *string  `json:"material"`
	Dimensions  *string  `json:"dimensions"`
	Color       *string  `json:"color"`
	Price       int64    `json:"price" validate:"gte=0"`
	Images      []string `json:"images" validate:"required,min=1"`
	SpecValue   *float64 `json:"spec_value"`
	SpecUnit    *string  `json:"spec_unit"`
	Available   bool     `json:"availability"`
}

func (req *ProductRequest) toInput() *service.ProductInput {
	return &service.ProductInput{
		Section:     req.Section,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		SubType:     req.SubType,
		Brand:       req.Brand,
		ModelNo:     req.ModelNo,
		Material:    req.Material,
		Dimensions:  req.Dimensions,
		Color:       req.Color,
		Price:       req.Price,
		Images:      req.Images,
		SpecValue:   req.SpecValue,
		SpecUnit:    req.SpecUnit,
		Available:   req.Available,
	}
}

func decodeProductRequest(w http.ResponseWriter, r *http.Request) (*ProductRequest, bool) {
	// Embedded previews make these bodies large; cap at 32MB.
	r.Body = http.MaxBytesReader(w, r.Body, 32<<20)

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return nil, false
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return nil, false
	}

	return &req, true
}

// ListProducts handles GET /api/v1/admin/products?section=electronics.
// Includes unavailable products, unlike the storefront listing.
func (h *AdminProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")

	products, err := h.service.ListSection(r.Context(), section)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// CreateProduct handles POST /api/v1/admin/products.
func (h *AdminProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeProductRequest(w, r)
	if !ok {
		return
	}

	product, err := h.service.CreateProduct(r.Context(), req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct handles PUT /api/v1/admin/products/{id}.
func (h *AdminProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, ok := decodeProductRequest(w, r)
	if !ok {
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// DeleteProduct handles DELETE /api/v1/admin/products/{id}.
func (h *AdminProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
