package domain

import (
	"errors"
	"time"
)

// MaxItemPrice is the upper bound accepted for a catalog item price.
const MaxItemPrice = 1_000_000

var ErrItemNotFound = errors.New("item not found")

// Item is a catalog record.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}
