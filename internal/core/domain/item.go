package domain

import (
	"errors"
	"time"
)

var ErrItemNotFound = errors.New("item not found")

// Item is a stock-tracked entity belonging to exactly one category.
// CategoryID must always resolve to a live category; the repositories
// enforce this atomically with every write.
type Item struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Quantity   int64     `json:"quantity"`
	Price      float64   `json:"price"`
	CategoryID int64     `json:"categoryId"`
	CreatedAt  time.Time `json:"createdOn"`
	UpdatedAt  time.Time `json:"updatedOn"`
}

// ItemWithCategory joins an item with its category's display name for
// listings. A read-side convenience, not a stored denormalization.
type ItemWithCategory struct {
	Item
	CategoryName string `json:"categoryName"`
}
