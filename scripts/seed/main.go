// Package main implements a standalone seed script that populates the
// storefront with a starter catalog and an admin account. It writes
// directly over SQL so it can run before the HTTP server is up.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

type seedProduct struct {
	Section  string
	Title    string
	Category string
	Brand    string
	Material string
	Price    int64
	Images   []string
}

var catalog = []seedProduct{
	{"electronics", "Samsung Crystal 4K 55 inch", "Televisions", "Samsung", "", 48990, []string{"https://cdn.sriaruvi.in/tv-samsung-crystal.jpg"}},
	{"electronics", "LG 260L Frost Free Refrigerator", "Refrigerators", "LG", "", 28490, []string{"https://cdn.sriaruvi.in/fridge-lg-260.jpg"}},
	{"electronics", "Whirlpool 7.5kg Washing Machine", "Washing Machines", "Whirlpool", "", 19990, []string{"https://cdn.sriaruvi.in/wm-whirlpool-75.jpg"}},
	{"electronics", "Voltas 1.5 Ton Split AC", "Air Conditioners", "Voltas", "", 34990, []string{"https://cdn.sriaruvi.in/ac-voltas-15.jpg"}},
	{"electronics", "HP Pavilion 15 Laptop", "Laptops", "HP", "", 62990, []string{"https://cdn.sriaruvi.in/laptop-hp-pavilion.jpg"}},
	{"furniture", "Teak Wood Dining Table 6 Seater", "Dining Tables", "", "Teak Wood", 42500, []string{"https://cdn.sriaruvi.in/dining-teak-6.jpg"}},
	{"furniture", "Rosewood King Size Cot", "Cots", "", "Rosewood", 38000, []string{"https://cdn.sriaruvi.in/cot-rosewood-king.jpg"}},
	{"furniture", "Steel Bureau 6ft", "Storage", "", "Steel", 14500, []string{"https://cdn.sriaruvi.in/bureau-steel-6ft.jpg"}},
	{"furniture", "Cushioned Sofa Set 3+1+1", "Sofas", "", "Fabric", 52000, []string{"https://cdn.sriaruvi.in/sofa-311.jpg"}},
	{"kitchen", "Prestige Mixer Grinder 750W", "Appliances", "Prestige", "", 4490, []string{"https://cdn.sriaruvi.in/mixer-prestige-750.jpg"}},
	{"kitchen", "Butterfly Gas Stove 3 Burner", "Appliances", "Butterfly", "", 3890, []string{"https://cdn.sriaruvi.in/stove-butterfly-3.jpg"}},
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool) error {
	for _, p := range catalog {
		images, err := json.Marshal(p.Images)
		if err != nil {
			return fmt.Errorf("marshal images for %q: %w", p.Title, err)
		}

		var brand, material *string
		if p.Brand != "" {
			brand = &p.Brand
		}
		if p.Material != "" {
			material = &p.Material
		}

		now := time.Now().UTC()
		_, err = pool.Exec(ctx, `
			INSERT INTO products (id, section, title, slug, category, brand, material, price, images, availability, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, $10, $10)
			ON CONFLICT (slug) DO NOTHING`,
			uuid.New().String(), p.Section, p.Title, slugify(p.Title), p.Category,
			brand, material, p.Price, images, now,
		)
		if err != nil {
			return fmt.Errorf("insert product %q: %w", p.Title, err)
		}
		log.Printf("seeded product: %s (%s)", p.Title, p.Section)
	}
	return nil
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	tag, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (email) DO NOTHING`,
		id, email, string(hash), now,
	)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Printf("admin %s already exists, skipping", email)
		return nil
	}

	if _, err := pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role) VALUES ($1, 'admin')
		ON CONFLICT (user_id) DO UPDATE SET role = 'admin'`,
		id,
	); err != nil {
		return fmt.Errorf("grant admin role: %w", err)
	}

	log.Printf("seeded admin account: %s", email)
	return nil
}

func main() {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("POSTGRES_USER", "storefront"),
		getEnv("POSTGRES_PASSWORD", "storefront_secret"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "storefront_db"),
		getEnv("POSTGRES_SSL_MODE", "disable"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	if err := seedProducts(ctx, pool); err != nil {
		log.Fatalf("seed products: %v", err)
	}

	adminEmail := getEnv("SEED_ADMIN_EMAIL", "admin@sriaruvi.in")
	adminPassword := getEnv("SEED_ADMIN_PASSWORD", "")
	if adminPassword == "" {
		log.Println("SEED_ADMIN_PASSWORD not set, skipping admin account")
	} else if err := seedAdmin(ctx, pool, adminEmail, adminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	log.Println("seeding complete")
}
