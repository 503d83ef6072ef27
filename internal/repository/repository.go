package repository

import (
	"context"
	"time"

	"github.com/sriaruvi/storefront/internal/domain"
)

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// GetBySlug retrieves a product by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// ListBySection returns every product in a section in insertion order.
	// Filtering happens in memory, never in SQL.
	ListBySection(ctx context.Context, section string) ([]domain.Product, error)

	// Update replaces an existing product in the store.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product from the store by its identifier.
	Delete(ctx context.Context, id string) error
}

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	// Create inserts a new user account.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// RoleRepository looks up the role assigned to a user. Users without an
// explicit assignment are customers.
type RoleRepository interface {
	// GetRole returns the role for the given user id, or domain.RoleCustomer
	// when no assignment exists.
	GetRole(ctx context.Context, userID string) (string, error)
}

// SessionStore persists opaque session tokens with a TTL.
type SessionStore interface {
	// Save stores the session under its token for the given lifetime.
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error

	// Get retrieves the session for a token. Expired or unknown tokens
	// return a not-found error.
	Get(ctx context.Context, token string) (*domain.Session, error)

	// Delete removes the session for a token. Deleting an unknown token
	// is not an error.
	Delete(ctx context.Context, token string) error
}
