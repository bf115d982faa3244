package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
)

type stubCategoryService struct {
	listFn   func(ctx context.Context) ([]domain.CategoryWithCount, error)
	getFn    func(ctx context.Context, id int64) (*domain.Category, error)
	createFn func(ctx context.Context, name string) (*domain.Category, error)
	updateFn func(ctx context.Context, id int64, name string) (*domain.Category, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubCategoryService) List(ctx context.Context) ([]domain.CategoryWithCount, error) {
	return s.listFn(ctx)
}

func (s *stubCategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.getFn(ctx, id)
}

func (s *stubCategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	return s.createFn(ctx, name)
}

func (s *stubCategoryService) Update(ctx context.Context, id int64, name string) (*domain.Category, error) {
	return s.updateFn(ctx, id, name)
}

func (s *stubCategoryService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func TestCategoryHandler_List(t *testing.T) {
	h := NewCategoryHandler(&stubCategoryService{
		listFn: func(_ context.Context) ([]domain.CategoryWithCount, error) {
			return []domain.CategoryWithCount{
				{Category: domain.Category{ID: 1, Name: "Tools"}, ItemCount: 2},
			}, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodGet, "/api/categories/", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["name"] != "Tools" || resp[0]["itemCount"] != float64(2) {
		t.Fatalf("unexpected payload: %v", resp)
	}
}

func TestCategoryHandler_Get_InvalidID(t *testing.T) {
	h := NewCategoryHandler(&stubCategoryService{
		getFn: func(_ context.Context, _ int64) (*domain.Category, error) {
			t.Fatalf("service must not be called for a bad id")
			return nil, nil
		},
	})

	c, _ := newJSONContext(t, http.MethodGet, "/api/categories/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCategoryHandler_Create(t *testing.T) {
	h := NewCategoryHandler(&stubCategoryService{
		createFn: func(_ context.Context, name string) (*domain.Category, error) {
			return &domain.Category{ID: 1, Name: name}, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodPost, "/api/categories/", `{"name":"Tools"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestCategoryHandler_Create_MissingName(t *testing.T) {
	h := NewCategoryHandler(&stubCategoryService{
		createFn: func(_ context.Context, _ string) (*domain.Category, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	c, _ := newJSONContext(t, http.MethodPost, "/api/categories/", `{}`)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCategoryHandler_Delete_Blocked(t *testing.T) {
	h := NewCategoryHandler(&stubCategoryService{
		deleteFn: func(_ context.Context, _ int64) error {
			return domain.ErrCategoryInUse
		},
	})

	c, _ := newJSONContext(t, http.MethodDelete, "/api/categories/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Delete(c); !errors.Is(err, domain.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse to propagate, got %v", err)
	}
}

func TestCategoryHandler_Delete_Success(t *testing.T) {
	h := NewCategoryHandler(&stubCategoryService{
		deleteFn: func(_ context.Context, id int64) error {
			if id != 7 {
				t.Fatalf("unexpected id: %d", id)
			}
			return nil
		},
	})

	c, rec := newJSONContext(t, http.MethodDelete, "/api/categories/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
