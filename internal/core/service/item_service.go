package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
	"github.com/stockcontrol/inventory-api/internal/core/ports"
)

// ItemService implements item CRUD. Every create and update validates the
// category reference through the integrity guard before touching the store.
type ItemService struct {
	repo   ports.ItemRepository
	guard  *IntegrityGuard
	cache  ListingCache
	logger zerolog.Logger
}

func NewItemService(repo ports.ItemRepository, guard *IntegrityGuard, cache ListingCache, logger zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, guard: guard, cache: cache, logger: logger}
}

func (s *ItemService) List(ctx context.Context) ([]domain.ItemWithCategory, error) {
	var cached []domain.ItemWithCategory
	hit, err := s.cache.Get(ctx, cacheKeyItems, &cached)
	if err != nil {
		s.logger.Warn().Err(err).Msg("item listing cache read failed, reading store")
	} else if hit {
		return cached, nil
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKeyItems, list); err != nil {
		s.logger.Warn().Err(err).Msg("item listing cache write failed")
	}
	return list, nil
}

func (s *ItemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ItemService) Create(ctx context.Context, input ports.ItemInput) (*domain.Item, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &domain.Item{
		Name:       input.Name,
		Quantity:   input.Quantity,
		Price:      input.Price,
		CategoryID: input.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	s.logger.Info().Int64("item_id", created.ID).Int64("category_id", created.CategoryID).Msg("item created")
	return created, nil
}

// Update rewrites the item's fields. The category reference is re-validated
// even when unchanged.
func (s *ItemService) Update(ctx context.Context, id int64, input ports.ItemInput) (*domain.Item, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	item := &domain.Item{
		ID:         id,
		Name:       input.Name,
		Quantity:   input.Quantity,
		Price:      input.Price,
		CategoryID: input.CategoryID,
		UpdatedAt:  time.Now().UTC(),
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	return updated, nil
}

func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Deleting an item changes its category's live count.
	s.invalidateListings(ctx)
	s.logger.Info().Int64("item_id", id).Msg("item deleted")
	return nil
}

// validate fails fast before any mutation: field checks first, then the
// referential check on the proposed category.
func (s *ItemService) validate(ctx context.Context, input ports.ItemInput) error {
	if input.Name == "" {
		return domain.NewValidationError("name", "name must be a non-empty string")
	}
	if input.Quantity < 0 {
		return domain.NewValidationError("quantity", "quantity must be a non-negative integer")
	}
	if input.Price < 0 {
		return domain.NewValidationError("price", "price must be a non-negative number")
	}
	if input.CategoryID <= 0 {
		return domain.NewValidationError("category", "category must be a positive integer")
	}

	if err := s.guard.EnsureCategoryExists(ctx, input.CategoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return domain.NewValidationError("category", "category does not exist")
		}
		return err
	}
	return nil
}

func (s *ItemService) invalidateListings(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cacheKeyCategories, cacheKeyItems); err != nil {
		s.logger.Warn().Err(err).Msg("listing cache invalidation failed")
	}
}
