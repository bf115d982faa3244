package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
	"github.com/stockcontrol/inventory-api/internal/core/ports"
)

// CategoryService implements category CRUD with the live item-count
// aggregate on reads and the referential-integrity guard on deletes.
type CategoryService struct {
	repo   ports.CategoryRepository
	guard  *IntegrityGuard
	cache  ListingCache
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, guard *IntegrityGuard, cache ListingCache, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, guard: guard, cache: cache, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.CategoryWithCount, error) {
	var cached []domain.CategoryWithCount
	hit, err := s.cache.Get(ctx, cacheKeyCategories, &cached)
	if err != nil {
		s.logger.Warn().Err(err).Msg("category listing cache read failed, reading store")
	} else if hit {
		return cached, nil
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKeyCategories, list); err != nil {
		s.logger.Warn().Err(err).Msg("category listing cache write failed")
	}
	return list, nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "category name must be a non-empty string")
	}

	created, err := s.repo.Create(ctx, name, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	s.logger.Info().Int64("category_id", created.ID).Str("name", created.Name).Msg("category created")
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "category name must be a non-empty string")
	}

	updated, err := s.repo.Update(ctx, id, name, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	// The items listing embeds category names, so both projections go stale.
	s.invalidateListings(ctx)
	return updated, nil
}

// Delete removes a category no items reference. The guard check here is a
// fast-fail; the repository re-checks the count atomically with the delete.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.guard.EnsureCategoryDeletable(ctx, id); err != nil {
		return err
	}

	if err := s.repo.DeleteIfUnreferenced(ctx, id); err != nil {
		return err
	}

	s.invalidateListings(ctx)
	s.logger.Info().Int64("category_id", id).Msg("category deleted")
	return nil
}

func (s *CategoryService) invalidateListings(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cacheKeyCategories, cacheKeyItems); err != nil {
		s.logger.Warn().Err(err).Msg("listing cache invalidation failed")
	}
}
