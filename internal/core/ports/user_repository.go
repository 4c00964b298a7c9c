package ports

import (
	"context"

	"github.com/corpspend/expense-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Email uniqueness is enforced at this level: Create returns
// domain.ErrUserExists when the normalized email is already registered.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users matching ids keyed by ID. Unknown ids are
	// simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// List returns all users ordered by role then username.
	List(ctx context.Context) ([]*domain.User, error)
}
