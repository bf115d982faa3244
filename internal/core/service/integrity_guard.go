package service

import (
	"context"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
	"github.com/stockcontrol/inventory-api/internal/core/ports"
)

// IntegrityGuard enforces the item↔category relationship ahead of writes:
// an item may only reference a live category, and a category with
// referencing items cannot be deleted. The checks here are advisory
// fast-fails; the repositories repeat them atomically with the write, so a
// concurrent interleaving can never leave a dangling reference.
type IntegrityGuard struct {
	categories ports.CategoryRepository
	items      ports.ItemRepository
}

func NewIntegrityGuard(categories ports.CategoryRepository, items ports.ItemRepository) *IntegrityGuard {
	return &IntegrityGuard{categories: categories, items: items}
}

// EnsureCategoryExists fails with domain.ErrCategoryNotFound when the
// proposed category reference does not resolve.
func (g *IntegrityGuard) EnsureCategoryExists(ctx context.Context, categoryID int64) error {
	ok, err := g.categories.Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// EnsureCategoryDeletable fails with domain.ErrCategoryInUse when one or
// more items still reference the category.
func (g *IntegrityGuard) EnsureCategoryDeletable(ctx context.Context, categoryID int64) error {
	n, err := g.items.CountByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCategoryInUse
	}
	return nil
}
