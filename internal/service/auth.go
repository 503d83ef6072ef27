package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sriaruvi/storefront/internal/domain"
	"github.com/sriaruvi/storefront/internal/repository"
	apperrors "github.com/sriaruvi/storefront/pkg/errors"
)

const bcryptCost = 12

// AuthService implements account and session management. Sessions are opaque
// server-issued tokens stored in Redis; the client never sees credentials
// beyond its own token.
type AuthService struct {
	users    repository.UserRepository
	roles    repository.RoleRepository
	sessions repository.SessionStore
	ttl      time.Duration
	logger   *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	sessions repository.SessionStore,
	ttl time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
	}
}

// newSessionToken generates a 256-bit opaque token.
func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	role, err := s.roles.GetRole(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup user role: %w", err)
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sessions.Save(ctx, session, s.ttl); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return session, nil
}

// SignUp registers a new account and signs it in.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.InvalidInput("a valid email address is required")
	}
	if len(password) < 8 {
		return nil, apperrors.InvalidInput("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user signed up",
		slog.String("user_id", user.ID),
	)

	return s.issueSession(ctx, user)
}

// SignIn authenticates credentials and issues a fresh session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	s.logger.InfoContext(ctx, "user signed in",
		slog.String("user_id", user.ID),
	)

	return s.issueSession(ctx, user)
}

// SignOut invalidates the session for the given token. Signing out an
// unknown token succeeds silently.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Validate resolves a token to its session. Unknown or expired tokens map to
// an unauthorized error.
func (s *AuthService) Validate(ctx context.Context, token string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid or expired session")
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}
