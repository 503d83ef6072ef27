package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sriaruvi/storefront/internal/domain"
	"github.com/sriaruvi/storefront/internal/event"
	redisrepo "github.com/sriaruvi/storefront/internal/repository/redis"
	"github.com/sriaruvi/storefront/internal/service"
	"github.com/sriaruvi/storefront/internal/storage/memory"
	apperrors "github.com/sriaruvi/storefront/pkg/errors"
	"github.com/sriaruvi/storefront/pkg/health"
	pkgkafka "github.com/sriaruvi/storefront/pkg/kafka"
)

// --- In-memory fakes ---

// fakeProductRepo keeps products in insertion order, mirroring the repository
// contract closely enough for full request round-trips.
type fakeProductRepo struct {
	mu       sync.Mutex
	products []*domain.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.products {
		if existing.Slug == p.Slug {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
	}
	cp := *p
	f.products = append(f.products, &cp)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("product", id)
}

func (f *fakeProductRepo) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("product", slug)
}

func (f *fakeProductRepo) ListBySection(_ context.Context, section string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Product, 0)
	for _, p := range f.products {
		if p.Section == section {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.products {
		if existing.ID == p.ID {
			cp := *p
			f.products[i] = &cp
			return nil
		}
	}
	return apperrors.NotFound("product", p.ID)
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.products {
		if existing.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("product", id)
}

func (f *fakeProductRepo) seed(p domain.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := p
	f.products = append(f.products, &cp)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[u.Email]; exists {
		return apperrors.AlreadyExists("user", "email", u.Email)
	}
	cp := *u
	f.users[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("user", id)
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, exists := f.users[email]
	if !exists {
		return nil, apperrors.NotFound("user", email)
	}
	cp := *u
	return &cp, nil
}

// fakeRoleRepo assigns defaultRole to every user unless overridden.
type fakeRoleRepo struct {
	mu          sync.Mutex
	defaultRole string
	roles       map[string]string
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{defaultRole: domain.RoleCustomer, roles: make(map[string]string)}
}

func (f *fakeRoleRepo) GetRole(_ context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if role, ok := f.roles[userID]; ok {
		return role, nil
	}
	return f.defaultRole, nil
}

// --- Harness ---

type testEnv struct {
	router http.Handler
	repo   *fakeProductRepo
	roles  *fakeRoleRepo
	store  *memory.Storage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	repo := &fakeProductRepo{}
	store := memory.New("http://localhost:8080/media")
	media := service.NewMediaService(store, logger)
	// Kafka producer pointed at nothing; publish failures are logged, not surfaced.
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig([]string{"localhost:9092"}), logger)
	producer := event.NewProducer(kafkaProducer, logger)
	catalog := service.NewCatalogService(repo, media, producer, logger)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	users := newFakeUserRepo()
	roles := newFakeRoleRepo()
	auth := service.NewAuthService(users, roles, redisrepo.NewSessionStore(client), time.Hour, logger)

	orders := service.NewOrderService(repo, "919843559222", logger)

	router := NewRouter(catalog, auth, orders, media, health.NewHandler(), RouterConfig{
		AllowedOrigins:      []string{"*"},
		Environment:         "test",
		MaxImagesPerProduct: 10,
		MaxKitchenImages:    6,
		MaxUploadBytes:      10 << 20,
	}, logger)

	return &testEnv{router: router, repo: repo, roles: roles, store: store}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

// signUp registers an account with the given role and returns its token.
func (e *testEnv) signUp(t *testing.T, email, role string) string {
	t.Helper()
	e.roles.mu.Lock()
	e.roles.defaultRole = role
	e.roles.mu.Unlock()

	rec, env := e.do(t, http.MethodPost, "/api/v1/auth/signup", map[string]string{
		"email":    email,
		"password": "secret-password",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var session SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &session))
	return session.Token
}

func seedElectronics(repo *fakeProductRepo) {
	specs := []struct {
		id, title, category string
		price               int64
	}{
		{"e-1", "HP Pavilion 15", "Laptops", 55000},
		{"e-2", "Lenovo IdeaPad 3", "Laptops", 42000},
		{"e-3", "Dell Inspiron 14", "Laptops", 61000},
		{"e-4", "Samsung Crystal 4K", "Televisions", 38000},
		{"e-5", "LG OLED C3", "Televisions", 125000},
	}
	for i, s := range specs {
		repo.seed(domain.Product{
			ID:        s.id,
			Section:   domain.SectionElectronics,
			Title:     s.title,
			Slug:      fmt.Sprintf("slug-%s", s.id),
			Category:  s.category,
			Price:     s.price,
			Images:    []string{"https://cdn.example.com/" + s.id + ".jpg"},
			Available: true,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		})
	}
}

// --- Catalog ---

func TestCatalog_CategoryFilter(t *testing.T) {
	env := newTestEnv(t)
	seedElectronics(env.repo)

	rec, body := env.do(t, http.MethodGet, "/api/v1/catalog/electronics?category=Laptops", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view service.CatalogView
	require.NoError(t, json.Unmarshal(body.Data, &view))
	assert.Len(t, view.Products, 3)
	for _, p := range view.Products {
		assert.Equal(t, "Laptops", p.Category)
	}
	assert.Equal(t, 5, view.Total)
	assert.Equal(t, []string{"Laptops", "Televisions"}, view.Facets.Categories)
}

func TestCatalog_PriceRangeInclusive(t *testing.T) {
	env := newTestEnv(t)
	for i, price := range []int64{5000, 15000, 25000} {
		env.repo.seed(domain.Product{
			ID: fmt.Sprintf("f-%d", i), Section: domain.SectionFurniture,
			Title: fmt.Sprintf("Chair %d", i), Slug: fmt.Sprintf("chair-%d", i),
			Category: "Chairs", Price: price, Available: true,
		})
	}

	rec, body := env.do(t, http.MethodGet, "/api/v1/catalog/furniture?min_price=10000&max_price=20000", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view service.CatalogView
	require.NoError(t, json.Unmarshal(body.Data, &view))
	require.Len(t, view.Products, 1)
	assert.Equal(t, int64(15000), view.Products[0].Price)
}

func TestCatalog_InvalidPriceParam(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/catalog/electronics?min_price=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INVALID_INPUT", body.Error.Code)
}

func TestCatalog_KitchenIsNotAStorefrontSection(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/api/v1/catalog/kitchen", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalog_ProductDetailBySlug(t *testing.T) {
	env := newTestEnv(t)
	seedElectronics(env.repo)

	rec, body := env.do(t, http.MethodGet, "/api/v1/catalog/electronics/slug-e-1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var p domain.Product
	require.NoError(t, json.Unmarshal(body.Data, &p))
	assert.Equal(t, "e-1", p.ID)
}

func TestCatalog_ProductDetailWrongSectionIs404(t *testing.T) {
	env := newTestEnv(t)
	seedElectronics(env.repo)

	rec, _ := env.do(t, http.MethodGet, "/api/v1/catalog/furniture/e-1", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalog_UnavailableProductDetailIs404(t *testing.T) {
	env := newTestEnv(t)
	env.repo.seed(domain.Product{
		ID: "gone", Section: domain.SectionElectronics, Title: "Discontinued",
		Slug: "discontinued", Category: "Laptops", Available: false,
	})

	rec, _ := env.do(t, http.MethodGet, "/api/v1/catalog/electronics/gone", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- Admin auth gating ---

func TestAdmin_RequiresSession(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/api/v1/admin/products/?section=electronics", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdmin_RejectsCustomerRole(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "shopper@example.com", domain.RoleCustomer)

	rec, _ := env.do(t, http.MethodGet, "/api/v1/admin/products/?section=electronics", nil, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// --- Admin product lifecycle ---

func adminProductBody() map[string]any {
	return map[string]any{
		"section":      domain.SectionElectronics,
		"title":        "Sony Bravia X80L",
		"category":     "Televisions",
		"price":        65000,
		"images":       []string{"https://cdn.example.com/bravia.jpg"},
		"availability": true,
	}
}

func TestAdmin_CreateListDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "admin@sriaruvi.in", domain.RoleAdmin)

	rec, body := env.do(t, http.MethodPost, "/api/v1/admin/products/", adminProductBody(), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Product
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, "sony-bravia-x80l", created.Slug)
	require.NotEmpty(t, created.ID)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/catalog/electronics/"+created.ID, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodDelete, "/api/v1/admin/products/"+created.ID, nil, token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Reloading the section no longer shows the deleted product.
	rec, body = env.do(t, http.MethodGet, "/api/v1/catalog/electronics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view service.CatalogView
	require.NoError(t, json.Unmarshal(body.Data, &view))
	for _, p := range view.Products {
		assert.NotEqual(t, created.ID, p.ID)
	}
}

func TestAdmin_CreateValidationFailure(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "admin@sriaruvi.in", domain.RoleAdmin)

	body := adminProductBody()
	delete(body, "title")

	rec, env2 := env.do(t, http.MethodPost, "/api/v1/admin/products/", body, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env2.Error)
	assert.Equal(t, "VALIDATION_ERROR", env2.Error.Code)
}

func TestAdmin_UpdateReplacesProduct(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "admin@sriaruvi.in", domain.RoleAdmin)
	env.repo.seed(domain.Product{
		ID: "p-1", Section: domain.SectionElectronics, Title: "Old Name",
		Slug: "old-name", Category: "Televisions", Price: 1000,
		Images: []string{"https://cdn.example.com/old.jpg"}, Available: true,
	})

	body := adminProductBody()
	rec, out := env.do(t, http.MethodPut, "/api/v1/admin/products/p-1", body, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated domain.Product
	require.NoError(t, json.Unmarshal(out.Data, &updated))
	assert.Equal(t, "p-1", updated.ID)
	assert.Equal(t, "Sony Bravia X80L", updated.Title)
}

func TestAdmin_ListIncludesUnavailable(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "admin@sriaruvi.in", domain.RoleAdmin)
	env.repo.seed(domain.Product{ID: "k-1", Section: domain.SectionKitchen, Title: "Mixer", Slug: "mixer", Category: "Appliances", Available: false})

	rec, body := env.do(t, http.MethodGet, "/api/v1/admin/products/?section=kitchen", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(body.Data, &products))
	require.Len(t, products, 1)
	assert.False(t, products[0].Available)
}

// --- Auth ---

func TestAuth_SignUpMeSignOut(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "user@example.com", domain.RoleCustomer)

	rec, body := env.do(t, http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var session SessionResponse
	require.NoError(t, json.Unmarshal(body.Data, &session))
	assert.Equal(t, "user@example.com", session.Email)

	rec, _ = env.do(t, http.MethodPost, "/api/v1/auth/signout", nil, token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_SignInWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "user@example.com", domain.RoleCustomer)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/auth/signin", map[string]string{
		"email":    "user@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_SignUpRejectsBadEmail(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/auth/signup", map[string]string{
		"email":    "not-an-email",
		"password": "secret-password",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}

// --- Orders ---

func TestOrders_WhatsAppLink(t *testing.T) {
	env := newTestEnv(t)
	seedElectronics(env.repo)

	rec, body := env.do(t, http.MethodPost, "/api/v1/orders/whatsapp", map[string]any{
		"product_id": "e-1",
		"name":       "Arun",
		"mobile":     "9876543210",
		"address":    "12 Main St, Madurai",
		"quantity":   2,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var link OrderLinkResponse
	require.NoError(t, json.Unmarshal(body.Data, &link))
	assert.Contains(t, link.URL, "https://wa.me/919843559222?text=")
}

func TestOrders_OmittedQuantityOrdersOneUnit(t *testing.T) {
	env := newTestEnv(t)
	seedElectronics(env.repo)

	rec, body := env.do(t, http.MethodPost, "/api/v1/orders/whatsapp", map[string]any{
		"product_id": "e-1",
		"name":       "Arun",
		"mobile":     "9876543210",
		"address":    "12 Main St, Madurai",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var link OrderLinkResponse
	require.NoError(t, json.Unmarshal(body.Data, &link))

	u, err := url.Parse(link.URL)
	require.NoError(t, err)
	assert.Contains(t, u.Query().Get("text"), "Quantity: 1")
}

func TestOrders_MissingFieldsRejected(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/orders/whatsapp", map[string]any{
		"product_id": "e-1",
		"quantity":   1,
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, body.Error)
}

// --- Uploads ---

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type uploadPart struct {
	filename    string
	contentType string
	data        []byte
}

func (e *testEnv) doUpload(t *testing.T, token string, parts []uploadPart, fields map[string][]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, p.filename))
		h.Set("Content-Type", p.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(p.data)
		require.NoError(t, err)
	}
	for name, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(name, v))
		}
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads/previews", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func TestUploads_PreviewBatch(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "admin@sriaruvi.in", domain.RoleAdmin)

	parts := []uploadPart{
		{"photo.png", "image/png", encodePNG(t, 1200, 900)},
		{"notes.pdf", "application/pdf", []byte("%PDF-1.4 not an image")},
	}

	rec, body := env.doUpload(t, token, parts, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp PreviewsResponse
	require.NoError(t, json.Unmarshal(body.Data, &resp))
	require.Len(t, resp.Previews, 1)
	assert.Contains(t, resp.Previews[0], "data:image/jpeg;base64,")
	assert.Equal(t, 1, resp.Accepted)
	assert.Equal(t, 1, resp.Skipped)
}

func TestUploads_KitchenCapIsTighter(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "admin@sriaruvi.in", domain.RoleAdmin)

	img := encodePNG(t, 100, 100)
	parts := make([]uploadPart, 0, 7)
	for i := 0; i < 7; i++ {
		parts = append(parts, uploadPart{fmt.Sprintf("img-%d.png", i), "image/png", img})
	}

	rec, body := env.doUpload(t, token, parts, map[string][]string{"section": {domain.SectionKitchen}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PreviewsResponse
	require.NoError(t, json.Unmarshal(body.Data, &resp))
	assert.Len(t, resp.Previews, 6)
}

func TestUploads_ExistingPreviewsCountTowardCap(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "admin@sriaruvi.in", domain.RoleAdmin)

	img := encodePNG(t, 100, 100)
	parts := make([]uploadPart, 0, 3)
	for i := 0; i < 3; i++ {
		parts = append(parts, uploadPart{fmt.Sprintf("img-%d.png", i), "image/png", img})
	}

	existing := make([]string, 5)
	for i := range existing {
		existing[i] = fmt.Sprintf("https://cdn.example.com/existing-%d.jpg", i)
	}

	rec, body := env.doUpload(t, token, parts, map[string][]string{
		"existing": existing,
		"section":  {domain.SectionKitchen},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PreviewsResponse
	require.NoError(t, json.Unmarshal(body.Data, &resp))
	assert.Len(t, resp.Previews, 6)
	assert.Equal(t, existing, resp.Previews[:5])
}

func TestUploads_RequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "shopper@example.com", domain.RoleCustomer)

	rec, _ := env.doUpload(t, token, []uploadPart{{"a.png", "image/png", encodePNG(t, 10, 10)}}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// --- Health ---

func TestHealth_Liveness(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/health/live", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
