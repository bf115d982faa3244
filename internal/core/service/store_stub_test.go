package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
)

// stubStore is an in-memory stand-in for the mongo-backed repositories,
// shared between the category and item repo stubs so referential checks see
// one consistent state.
type stubStore struct {
	categories map[int64]*domain.Category
	items      map[int64]*domain.Item
	catSeq     int64
	itemSeq    int64
}

func newStubStore() *stubStore {
	return &stubStore{
		categories: make(map[int64]*domain.Category),
		items:      make(map[int64]*domain.Item),
	}
}

type stubCategoryRepo struct{ store *stubStore }

func (r *stubCategoryRepo) List(_ context.Context) ([]domain.CategoryWithCount, error) {
	out := make([]domain.CategoryWithCount, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		var n int64
		for _, it := range r.store.items {
			if it.CategoryID == c.ID {
				n++
			}
		}
		out = append(out, domain.CategoryWithCount{Category: *c, ItemCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := r.store.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.store.categories[id]
	return ok, nil
}

func (r *stubCategoryRepo) Create(_ context.Context, name string, now time.Time) (*domain.Category, error) {
	r.store.catSeq++
	c := &domain.Category{ID: r.store.catSeq, Name: name, CreatedAt: now, UpdatedAt: now}
	r.store.categories[c.ID] = c
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, id int64, name string, now time.Time) (*domain.Category, error) {
	c, ok := r.store.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	c.Name = name
	c.UpdatedAt = now
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) DeleteIfUnreferenced(_ context.Context, id int64) error {
	for _, it := range r.store.items {
		if it.CategoryID == id {
			return domain.ErrCategoryInUse
		}
	}
	if _, ok := r.store.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.store.categories, id)
	return nil
}

type stubItemRepo struct{ store *stubStore }

func (r *stubItemRepo) List(_ context.Context) ([]domain.ItemWithCategory, error) {
	out := make([]domain.ItemWithCategory, 0, len(r.store.items))
	for _, it := range r.store.items {
		name := ""
		if c, ok := r.store.categories[it.CategoryID]; ok {
			name = c.Name
		}
		out = append(out, domain.ItemWithCategory{Item: *it, CategoryName: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id int64) (*domain.Item, error) {
	it, ok := r.store.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	clone := *it
	return &clone, nil
}

func (r *stubItemRepo) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if _, ok := r.store.categories[item.CategoryID]; !ok {
		return nil, domain.ErrCategoryNotFound
	}
	r.store.itemSeq++
	created := *item
	created.ID = r.store.itemSeq
	r.store.items[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubItemRepo) Update(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if _, ok := r.store.categories[item.CategoryID]; !ok {
		return nil, domain.ErrCategoryNotFound
	}
	existing, ok := r.store.items[item.ID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	existing.Name = item.Name
	existing.Quantity = item.Quantity
	existing.Price = item.Price
	existing.CategoryID = item.CategoryID
	existing.UpdatedAt = item.UpdatedAt
	clone := *existing
	return &clone, nil
}

func (r *stubItemRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.store.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.store.items, id)
	return nil
}

func (r *stubItemRepo) CountByCategory(_ context.Context, categoryID int64) (int64, error) {
	var n int64
	for _, it := range r.store.items {
		if it.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// stubCache mimics the Redis listing cache with a plain map.
type stubCache struct {
	entries map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]byte)}
}

func (c *stubCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *stubCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}
