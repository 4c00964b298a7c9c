package ports

import (
	"context"

	"github.com/corpspend/expense-api/internal/core/domain"
)

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	Department string
	// Role is the requested role. Unknown values are coerced to employee,
	// never rejected.
	Role string
}

// AuthResult is returned after a successful register or login.
type AuthResult struct {
	Token string
	Role  domain.Role
}

// AuthService handles registration, login, and user listing.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// ListUsers returns all accounts minus credentials, ordered by role then
	// username. Any authenticated role may call it.
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
