package ports

import (
	"context"
	"time"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
)

// CategoryRepository defines persistence for categories.
type CategoryRepository interface {
	// List returns all categories ordered by id ascending, each annotated
	// with the live count of items referencing it.
	List(ctx context.Context) ([]domain.CategoryWithCount, error)

	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, name string, now time.Time) (*domain.Category, error)
	Update(ctx context.Context, id int64, name string, now time.Time) (*domain.Category, error)

	// DeleteIfUnreferenced deletes the category only if no items reference
	// it, re-checking the count atomically with the delete so a concurrent
	// item create can never leave a dangling reference. Returns
	// domain.ErrCategoryInUse when items still reference the category.
	DeleteIfUnreferenced(ctx context.Context, id int64) error
}
