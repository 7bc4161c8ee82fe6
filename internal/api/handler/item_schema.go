package handler

import (
	"time"

	"github.com/cameshop/cameshop-api/internal/core/domain"
)

// itemRequest's price ceiling mirrors domain.MaxItemPrice.
type itemRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description string  `json:"description" validate:"required,max=500"`
	Price       float64 `json:"price"       validate:"required,gt=0,lte=1000000"`
}

type itemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

type listItemsResponse struct {
	Data []itemResponse `json:"data"`
}

func toItemResponse(i *domain.Item) itemResponse {
	return itemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price,
		CreatedAt:   i.CreatedAt,
	}
}
