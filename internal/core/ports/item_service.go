package ports

import (
	"context"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
)

// ItemInput carries the writable fields of an item for create and update.
type ItemInput struct {
	Name       string
	Quantity   int64
	Price      float64
	CategoryID int64
}

type ItemService interface {
	List(ctx context.Context) ([]domain.ItemWithCategory, error)
	Get(ctx context.Context, id int64) (*domain.Item, error)
	Create(ctx context.Context, input ItemInput) (*domain.Item, error)
	Update(ctx context.Context, id int64, input ItemInput) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
}
