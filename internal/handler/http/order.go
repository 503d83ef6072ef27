package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sriaruvi/storefront/internal/domain"
	"github.com/sriaruvi/storefront/internal/service"
	"github.com/sriaruvi/storefront/pkg/httputil"
	"github.com/sriaruvi/storefront/pkg/validator"
)

// OrderHandler handles the WhatsApp order hand-off endpoint.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		logger:  logger,
	}
}

// OrderRequest is the JSON body for building a WhatsApp order link.
type OrderRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Mobile    string `json:"mobile" validate:"required,min=7,max=20"`
	Address   string `json:"address" validate:"required,min=1,max=1000"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// OrderLinkResponse carries the prefilled wa.me deep link.
type OrderLinkResponse struct {
	URL string `json:"url"`
}

// BuildWhatsAppLink handles POST /api/v1/orders/whatsapp.
func (h *OrderHandler) BuildWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	// An omitted quantity orders a single unit.
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	form := domain.OrderForm{
		Name:     req.Name,
		Mobile:   req.Mobile,
		Address:  req.Address,
		Quantity: req.Quantity,
	}

	link, err := h.service.BuildWhatsAppLink(r.Context(), req.ProductID, form)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: OrderLinkResponse{URL: link}})
}
