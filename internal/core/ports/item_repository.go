package ports

import (
	"context"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
)

// ItemRepository defines persistence for items.
type ItemRepository interface {
	// List returns all items ordered by id ascending, joined with the
	// referenced category's display name.
	List(ctx context.Context) ([]domain.ItemWithCategory, error)

	FindByID(ctx context.Context, id int64) (*domain.Item, error)

	// Create inserts the item, verifying the referenced category exists
	// atomically with the insert. Returns domain.ErrCategoryNotFound when
	// the reference does not resolve.
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)

	// Update rewrites the item under the same category-existence guarantee
	// as Create, even when the category reference is unchanged.
	Update(ctx context.Context, item *domain.Item) (*domain.Item, error)

	Delete(ctx context.Context, id int64) error
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
}
