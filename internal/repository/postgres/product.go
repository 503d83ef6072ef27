package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sriaruvi/storefront/internal/domain"
	"github.com/sriaruvi/storefront/pkg/database"
	apperrors "github.com/sriaruvi/storefront/pkg/errors"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, section, title, slug, description, category, sub_type, brand, model_no,
	material, dimensions, color, price, images, spec_value, spec_unit, availability, created_at, updated_at`

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	imagesJSON, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.Section,
		p.Title,
		p.Slug,
		p.Description,
		p.Category,
		p.SubType,
		p.Brand,
		p.ModelNo,
		p.Material,
		p.Dimensions,
		p.Color,
		p.Price,
		imagesJSON,
		p.SpecValue,
		p.SpecUnit,
		p.Available,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanProduct(ctx, query, id)
}

// GetBySlug retrieves a product by its slug.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	return r.scanProduct(ctx, query, slug)
}

// ListBySection returns every product in a section ordered by creation time,
// oldest first, so the storefront grid keeps a stable insertion order.
// All filtering happens in memory after this call.
func (r *ProductRepository) ListBySection(ctx context.Context, section string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE section = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, section)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var (
			p          domain.Product
			imagesJSON []byte
		)

		if err := rows.Scan(
			&p.ID,
			&p.Section,
			&p.Title,
			&p.Slug,
			&p.Description,
			&p.Category,
			&p.SubType,
			&p.Brand,
			&p.ModelNo,
			&p.Material,
			&p.Dimensions,
			&p.Color,
			&p.Price,
			&imagesJSON,
			&p.SpecValue,
			&p.SpecUnit,
			&p.Available,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}

		if imagesJSON != nil {
			if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
				return nil, fmt.Errorf("unmarshal images: %w", err)
			}
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// Update replaces an existing product in the database.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	imagesJSON, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}

	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET section = $1, title = $2, slug = $3, description = $4, category = $5,
		    sub_type = $6, brand = $7, model_no = $8, material = $9, dimensions = $10,
		    color = $11, price = $12, images = $13, spec_value = $14, spec_unit = $15,
		    availability = $16, updated_at = $17
		WHERE id = $18`

	ct, err := r.pool.Exec(ctx, query,
		p.Section,
		p.Title,
		p.Slug,
		p.Description,
		p.Category,
		p.SubType,
		p.Brand,
		p.ModelNo,
		p.Material,
		p.Dimensions,
		p.Color,
		p.Price,
		imagesJSON,
		p.SpecValue,
		p.SpecUnit,
		p.Available,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// Delete removes a product from the database by its ID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

func (r *ProductRepository) scanProduct(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	var (
		p          domain.Product
		imagesJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.Section,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.Category,
		&p.SubType,
		&p.Brand,
		&p.ModelNo,
		&p.Material,
		&p.Dimensions,
		&p.Color,
		&p.Price,
		&imagesJSON,
		&p.SpecValue,
		&p.SpecUnit,
		&p.Available,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", fmt.Sprintf("%v", args[0]))
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	if imagesJSON != nil {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, fmt.Errorf("unmarshal images: %w", err)
		}
	}

	return &p, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
