package ports

import (
	"context"

	"github.com/cameshop/cameshop-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
//
// Implementations must enforce email uniqueness at the storage level and
// return domain.ErrEmailInUse on violation; the service-layer existence
// check is only a fast-fail courtesy.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
