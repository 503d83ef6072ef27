package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sriaruvi/storefront/internal/domain"
	"github.com/sriaruvi/storefront/internal/event"
	"github.com/sriaruvi/storefront/internal/repository"
	apperrors "github.com/sriaruvi/storefront/pkg/errors"
)

// slugRegexp matches characters not allowed in a slug.
var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// CatalogService implements the business logic for catalog and product
// administration.
type CatalogService struct {
	repo     repository.ProductRepository
	media    *MediaService
	producer *event.Producer
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	repo repository.ProductRepository,
	media *MediaService,
	producer *event.Producer,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		repo:     repo,
		media:    media,
		producer: producer,
		logger:   logger,
	}
}

// ProductInput holds the parameters for creating or replacing a product.
// Images may mix embedded previews with already-uploaded remote URLs.
type ProductInput struct {
	Section     string
	Title       string
	Description *string
	Category    string
	SubType     *string
	Brand       *string
	ModelNo     *string
	Material    *string
	Dimensions  *string
	Color       *string
	Price       int64
	Images      []string
	SpecValue   *float64
	SpecUnit    *string
	Available   bool
}

func (s *CatalogService) validateInput(input *ProductInput) error {
	if !domain.IsValidSection(input.Section) {
		return apperrors.InvalidInput(fmt.Sprintf("unknown section %q", input.Section))
	}
	if input.Title == "" {
		return apperrors.InvalidInput("product title is required")
	}
	if input.Category == "" {
		return apperrors.InvalidInput("product category is required")
	}
	if input.Price < 0 {
		return apperrors.InvalidInput("price must not be negative")
	}
	// At least one image is required before any upload attempt is made.
	if len(input.Images) == 0 {
		return apperrors.InvalidInput("at least one product image is required")
	}
	return nil
}

// CreateProduct validates the input, materializes its images, and persists
// the new product. Event publish failures are logged, never surfaced.
func (s *CatalogService) CreateProduct(ctx context.Context, input *ProductInput) (*domain.Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	urls, err := s.media.Materialize(ctx, input.Images)
	if err != nil {
		return nil, fmt.Errorf("materialize product images: %w", err)
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New().String(),
		Section:     input.Section,
		Title:       input.Title,
		Slug:        generateSlug(input.Title),
		Description: input.Description,
		Category:    input.Category,
		SubType:     input.SubType,
		Brand:       input.Brand,
		ModelNo:     input.ModelNo,
		Material:    input.Material,
		Dimensions:  input.Dimensions,
		Color:       input.Color,
		Price:       input.Price,
		Images:      urls,
		SpecValue:   input.SpecValue,
		SpecUnit:    input.SpecUnit,
		Available:   input.Available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("section", product.Section),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// UpdateProduct replaces an existing product with the given input. Edits are
// full-record replaces; concurrent edits are last-write-wins.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input *ProductInput) (*domain.Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}

	urls, err := s.media.Materialize(ctx, input.Images)
	if err != nil {
		return nil, fmt.Errorf("materialize product images: %w", err)
	}

	product := &domain.Product{
		ID:          existing.ID,
		Section:     input.Section,
		Title:       input.Title,
		Slug:        generateSlug(input.Title),
		Description: input.Description,
		Category:    input.Category,
		SubType:     input.SubType,
		Brand:       input.Brand,
		ModelNo:     input.ModelNo,
		Material:    input.Material,
		Dimensions:  input.Dimensions,
		Color:       input.Color,
		Price:       input.Price,
		Images:      urls,
		SpecValue:   input.SpecValue,
		SpecUnit:    input.SpecUnit,
		Available:   input.Available,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// DeleteProduct removes a product and best-effort deletes its stored images.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product for delete: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.media.Cleanup(ctx, product.Images)

	if err := s.producer.PublishProductDeleted(ctx, id, product.Section); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
		slog.String("section", product.Section),
	)

	return nil
}

// GetProduct retrieves a product by id, falling back to slug lookup so both
// identifier styles work on detail routes.
func (s *CatalogService) GetProduct(ctx context.Context, idOrSlug string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, idOrSlug)
	if err == nil {
		return product, nil
	}

	product, err = s.repo.GetBySlug(ctx, idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// CatalogView is the storefront response for a section: the filtered grid
// plus the facet sets projected from the unfiltered list.
type CatalogView struct {
	Products []domain.Product `json:"products"`
	Facets   domain.Facets    `json:"facets"`
	Total    int              `json:"total"`
}

// GetCatalog loads a storefront section and applies the filter state in
// memory. Only available products participate; facets always reflect the
// full unfiltered list. A failed or empty read yields an empty grid, never
// an error state.
func (s *CatalogService) GetCatalog(ctx context.Context, section string, filters domain.FilterState) (*CatalogView, error) {
	if !domain.IsStorefrontSection(section) {
		return nil, apperrors.NotFound("section", section)
	}

	all, err := s.repo.ListBySection(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("list section products: %w", err)
	}

	listed := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.Available {
			listed = append(listed, p)
		}
	}

	return &CatalogView{
		Products: domain.ApplyFilters(listed, filters),
		Facets:   domain.CollectFacets(listed),
		Total:    len(listed),
	}, nil
}

// ListSection returns every product in a section, including unavailable
// ones. Used by the admin manage views.
func (s *CatalogService) ListSection(ctx context.Context, section string) ([]domain.Product, error) {
	if !domain.IsValidSection(section) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown section %q", section))
	}
	products, err := s.repo.ListBySection(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("list section products: %w", err)
	}
	return products, nil
}

func generateSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugRegexp.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return slug
}
