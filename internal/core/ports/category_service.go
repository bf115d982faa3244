package ports

import (
	"context"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
)

type CategoryService interface {
	List(ctx context.Context) ([]domain.CategoryWithCount, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id int64, name string) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}
