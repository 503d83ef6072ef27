package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sriaruvi/storefront/internal/domain"
	"github.com/sriaruvi/storefront/internal/repository"
	"github.com/sriaruvi/storefront/pkg/validator"
)

// OrderService builds WhatsApp order hand-offs. No order record is persisted;
// the order exists only as the prefilled message in the returned deep link.
type OrderService struct {
	repo           repository.ProductRepository
	whatsAppNumber string
	logger         *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.ProductRepository, whatsAppNumber string, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:           repo,
		whatsAppNumber: whatsAppNumber,
		logger:         logger,
	}
}

// BuildWhatsAppLink validates the order form, loads the product, and returns
// the wa.me deep link with the order message prefilled.
func (s *OrderService) BuildWhatsAppLink(ctx context.Context, productID string, form domain.OrderForm) (string, error) {
	if err := validator.Validate(form); err != nil {
		return "", err
	}

	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return "", fmt.Errorf("get product for order: %w", err)
	}

	message := domain.BuildOrderMessage(*product, form)
	link := domain.WhatsAppLink(s.whatsAppNumber, message)

	s.logger.InfoContext(ctx, "whatsapp order link built",
		slog.String("product_id", product.ID),
		slog.Int("quantity", form.Quantity),
	)

	return link, nil
}
