package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sriaruvi/storefront/internal/service"
	"github.com/sriaruvi/storefront/pkg/health"
	"github.com/sriaruvi/storefront/pkg/middleware"
)

const serviceName = "storefront"

// RouterConfig carries the knobs the HTTP layer needs beyond its services.
type RouterConfig struct {
	AllowedOrigins []string
	Environment    string

	// MediaDir, when set, is served read-only under /media/ so locally
	// stored images resolve as public URLs.
	MediaDir string

	MaxImagesPerProduct int
	MaxKitchenImages    int
	MaxUploadBytes      int64
}

// ContentTypeJSON sets the JSON content type on every response of a route group.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	catalog *service.CatalogService,
	auth *service.AuthService,
	orders *service.OrderService,
	media *service.MediaService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Environment:    cfg.Environment,
	}))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.RequestLogger(logger))

	// Health and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Locally stored media objects
	if cfg.MediaDir != "" {
		fs := http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaDir)))
		r.Get("/media/*", fs.ServeHTTP)
	}

	sessionAuth := middleware.Auth(sessionValidator(auth))

	// Public storefront endpoints
	catalogHandler := NewCatalogHandler(catalog, logger)
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/{section}", catalogHandler.GetCatalog)
		r.Get("/{section}/{idOrSlug}", catalogHandler.GetProduct)
	})

	orderHandler := NewOrderHandler(orders, logger)
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/whatsapp", orderHandler.BuildWhatsAppLink)
	})

	// Auth endpoints
	authHandler := NewAuthHandler(auth, logger)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
		r.Post("/signout", authHandler.SignOut)
		r.Get("/me", authHandler.Me)
	})

	// Admin endpoints, session-gated and admin-only
	productHandler := NewAdminProductHandler(catalog, logger)
	uploadHandler := NewUploadHandler(media, cfg.MaxImagesPerProduct, cfg.MaxKitchenImages, cfg.MaxUploadBytes, logger)

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(sessionAuth)
		r.Use(middleware.RequireAdmin())

		r.Route("/products", func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Get("/", productHandler.ListProducts)
			r.Post("/", productHandler.CreateProduct)
			r.Put("/{id}", productHandler.UpdateProduct)
			r.Delete("/{id}", productHandler.DeleteProduct)
		})

		r.Post("/uploads/previews", uploadHandler.Previews)
	})

	return r
}

// sessionValidator adapts the auth service to the middleware contract.
func sessionValidator(auth *service.AuthService) middleware.SessionValidator {
	return func(ctx context.Context, token string) (*middleware.Principal, error) {
		session, err := auth.Validate(ctx, token)
		if err != nil {
			return nil, err
		}
		return &middleware.Principal{
			UserID: session.UserID,
			Email:  session.Email,
			Role:   session.Role,
		}, nil
	}
}
