package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sriaruvi/storefront/internal/domain"
	"github.com/sriaruvi/storefront/pkg/database"
)

// RoleRepository implements repository.RoleRepository against the user_roles
// table. Users without a row default to the customer role.
type RoleRepository struct {
	pool database.DBTX
}

// NewRoleRepository creates a new PostgreSQL-backed role repository.
func NewRoleRepository(pool database.DBTX) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// GetRole returns the role assigned to the user, or domain.RoleCustomer when
// no assignment exists.
func (r *RoleRepository) GetRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := r.pool.QueryRow(ctx, `SELECT role FROM user_roles WHERE user_id = $1`, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RoleCustomer, nil
		}
		return "", fmt.Errorf("get role: %w", err)
	}
	return role, nil
}
