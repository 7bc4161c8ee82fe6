package ports

import (
	"context"

	"github.com/cameshop/cameshop-api/internal/core/domain"
)

// Caller identifies the authenticated actor behind a request, extracted from
// the verified token claims.
type Caller struct {
	UserID string
	Role   domain.Role
}

// UserService defines the account use cases.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login returns a signed access token plus the user on success. Unknown
	// email and wrong password yield the same domain.ErrInvalidLogin.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Get returns the user with the given id. Non-admin callers may only
	// fetch themselves.
	Get(ctx context.Context, caller Caller, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id, name, email, password string) error
	Delete(ctx context.Context, id string) error
}
