package ports

import (
	"context"

	"github.com/cameshop/cameshop-api/internal/core/domain"
)

// ItemInput carries the mutable fields of a catalog item.
type ItemInput struct {
	Name        string
	Description string
	Price       float64
}

// ItemService defines the catalog use cases.
type ItemService interface {
	Create(ctx context.Context, input ItemInput) (*domain.Item, error)
	Get(ctx context.Context, id string) (*domain.Item, error)
	// List returns all items; when nameFilter is non-empty only items whose
	// name contains it (case-insensitive) are returned.
	List(ctx context.Context, nameFilter string) ([]*domain.Item, error)
	Update(ctx context.Context, id string, input ItemInput) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
}
