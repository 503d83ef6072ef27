package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sriaruvi/storefront/internal/domain"
	apperrors "github.com/sriaruvi/storefront/pkg/errors"
)

func newProductTestFixture(t *testing.T) (*ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewProductRepository(mock)
	return repo, mock
}

func strPtr(s string) *string { return &s }

func sampleProduct() *domain.Product {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Product{
		ID:        "p-1234",
		Section:   domain.SectionElectronics,
		Title:     "Samsung Galaxy S24",
		Slug:      "samsung-galaxy-s24",
		Category:  "Mobiles",
		Brand:     strPtr("Samsung"),
		ModelNo:   strPtr("SM-S921B"),
		Price:     75000,
		Images:    []string{"https://cdn.sriaruvi.in/media/1.jpg"},
		Available: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// productColumnNames returns the 19 column names scanned by scanProduct.
func productColumnNames() []string {
	return []string{
		"id", "section", "title", "slug", "description", "category", "sub_type",
		"brand", "model_no", "material", "dimensions", "color", "price", "images",
		"spec_value", "spec_unit", "availability", "created_at", "updated_at",
	}
}

func productRow(t *testing.T, p *domain.Product) *pgxmock.Rows {
	t.Helper()
	imagesJSON, err := json.Marshal(p.Images)
	require.NoError(t, err)
	return pgxmock.NewRows(productColumnNames()).AddRow(
		p.ID, p.Section, p.Title, p.Slug, p.Description, p.Category, p.SubType,
		p.Brand, p.ModelNo, p.Material, p.Dimensions, p.Color, p.Price, imagesJSON,
		p.SpecValue, p.SpecUnit, p.Available, p.CreatedAt, p.UpdatedAt,
	)
}

func TestProductRepository_Create_Success(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleProduct()
	imagesJSON, err := json.Marshal(p.Images)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO products").
		WithArgs(
			p.ID, p.Section, p.Title, p.Slug, p.Description, p.Category, p.SubType,
			p.Brand, p.ModelNo, p.Material, p.Dimensions, p.Color, p.Price, imagesJSON,
			p.SpecValue, p.SpecUnit, p.Available, p.CreatedAt, p.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create_DuplicateSlug(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(
			p.ID, p.Section, p.Title, p.Slug, p.Description, p.Category, p.SubType,
			p.Brand, p.ModelNo, p.Material, p.Dimensions, p.Color, p.Price, pgxmock.AnyArg(),
			p.SpecValue, p.SpecUnit, p.Available, p.CreatedAt, p.UpdatedAt,
		).
		WillReturnError(fmt.Errorf("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"))

	err := repo.Create(context.Background(), p)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_Success(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectQuery("SELECT (.+) FROM products WHERE id =").
		WithArgs(p.ID).
		WillReturnRows(productRow(t, p))

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id =").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetBySlug_Success(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectQuery("SELECT (.+) FROM products WHERE slug =").
		WithArgs(p.Slug).
		WillReturnRows(productRow(t, p))

	got, err := repo.GetBySlug(context.Background(), p.Slug)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListBySection_Success(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p1 := sampleProduct()
	p2 := sampleProduct()
	p2.ID = "p-5678"
	p2.Title = "LG OLED TV"
	p2.Slug = "lg-oled-tv"

	rows := productRow(t, p1)
	imagesJSON, err := json.Marshal(p2.Images)
	require.NoError(t, err)
	rows.AddRow(
		p2.ID, p2.Section, p2.Title, p2.Slug, p2.Description, p2.Category, p2.SubType,
		p2.Brand, p2.ModelNo, p2.Material, p2.Dimensions, p2.Color, p2.Price, imagesJSON,
		p2.SpecValue, p2.SpecUnit, p2.Available, p2.CreatedAt, p2.UpdatedAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE section =").
		WithArgs(domain.SectionElectronics).
		WillReturnRows(rows)

	products, err := repo.ListBySection(context.Background(), domain.SectionElectronics)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p-1234", products[0].ID)
	assert.Equal(t, "p-5678", products[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListBySection_Empty(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM products WHERE section =").
		WithArgs(domain.SectionFurniture).
		WillReturnRows(pgxmock.NewRows(productColumnNames()))

	products, err := repo.ListBySection(context.Background(), domain.SectionFurniture)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NotNil(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_Success(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectExec("UPDATE products").
		WithArgs(
			p.Section, p.Title, p.Slug, p.Description, p.Category, p.SubType,
			p.Brand, p.ModelNo, p.Material, p.Dimensions, p.Color, p.Price,
			pgxmock.AnyArg(), p.SpecValue, p.SpecUnit, p.Available,
			pgxmock.AnyArg(), p.ID,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.Update(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectExec("UPDATE products").
		WithArgs(
			p.Section, p.Title, p.Slug, p.Description, p.Category, p.SubType,
			p.Brand, p.ModelNo, p.Material, p.Dimensions, p.Color, p.Price,
			pgxmock.AnyArg(), p.SpecValue, p.SpecUnit, p.Available,
			pgxmock.AnyArg(), p.ID,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), p)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete_Success(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM products").
		WithArgs("p-1234").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, repo.Delete(context.Background(), "p-1234"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM products").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
