package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
	"github.com/stockcontrol/inventory-api/internal/core/ports"
)

type stubItemService struct {
	listFn   func(ctx context.Context) ([]domain.ItemWithCategory, error)
	getFn    func(ctx context.Context, id int64) (*domain.Item, error)
	createFn func(ctx context.Context, input ports.ItemInput) (*domain.Item, error)
	updateFn func(ctx context.Context, id int64, input ports.ItemInput) (*domain.Item, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubItemService) List(ctx context.Context) ([]domain.ItemWithCategory, error) {
	return s.listFn(ctx)
}

func (s *stubItemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	return s.getFn(ctx, id)
}

func (s *stubItemService) Create(ctx context.Context, input ports.ItemInput) (*domain.Item, error) {
	return s.createFn(ctx, input)
}

func (s *stubItemService) Update(ctx context.Context, id int64, input ports.ItemInput) (*domain.Item, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubItemService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func TestItemHandler_List(t *testing.T) {
	h := NewItemHandler(&stubItemService{
		listFn: func(_ context.Context) ([]domain.ItemWithCategory, error) {
			return []domain.ItemWithCategory{
				{Item: domain.Item{ID: 1, Name: "Hammer", Quantity: 5, Price: 9.99, CategoryID: 1}, CategoryName: "Tools"},
			}, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodGet, "/api/items/", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["categoryName"] != "Tools" {
		t.Fatalf("unexpected payload: %v", resp)
	}
}

func TestItemHandler_Create_Success(t *testing.T) {
	h := NewItemHandler(&stubItemService{
		createFn: func(_ context.Context, input ports.ItemInput) (*domain.Item, error) {
			if input.Name != "Hammer" || input.Quantity != 5 || input.Price != 9.99 || input.CategoryID != 1 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Item{ID: 1, Name: input.Name, Quantity: input.Quantity, Price: input.Price, CategoryID: input.CategoryID}, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodPost, "/api/items/",
		`{"name":"Hammer","quantity":5,"price":9.99,"categoryId":1}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

// Zero is a legitimate quantity and price; only absent fields are rejected.
func TestItemHandler_Create_ZeroValuesPassSchema(t *testing.T) {
	h := NewItemHandler(&stubItemService{
		createFn: func(_ context.Context, input ports.ItemInput) (*domain.Item, error) {
			return &domain.Item{ID: 1, Name: input.Name, CategoryID: input.CategoryID}, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodPost, "/api/items/",
		`{"name":"Freebie","quantity":0,"price":0,"categoryId":1}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestItemHandler_Create_MissingFields(t *testing.T) {
	h := NewItemHandler(&stubItemService{
		createFn: func(_ context.Context, _ ports.ItemInput) (*domain.Item, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	for _, body := range []string{
		`{"quantity":5,"price":9.99,"categoryId":1}`,
		`{"name":"Hammer","price":9.99,"categoryId":1}`,
		`{"name":"Hammer","quantity":5,"categoryId":1}`,
		`{"name":"Hammer","quantity":5,"price":9.99}`,
		`{"name":"Hammer","quantity":-1,"price":9.99,"categoryId":1}`,
	} {
		c, _ := newJSONContext(t, http.MethodPost, "/api/items/", body)
		err := h.Create(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestItemHandler_Update_NotFound(t *testing.T) {
	h := NewItemHandler(&stubItemService{
		updateFn: func(_ context.Context, _ int64, _ ports.ItemInput) (*domain.Item, error) {
			return nil, domain.ErrItemNotFound
		},
	})

	c, _ := newJSONContext(t, http.MethodPut, "/api/items/9",
		`{"name":"Hammer","quantity":5,"price":9.99,"categoryId":1}`)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Update(c); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound to propagate, got %v", err)
	}
}

func TestItemHandler_Delete_NoContent(t *testing.T) {
	h := NewItemHandler(&stubItemService{
		deleteFn: func(_ context.Context, id int64) error {
			if id != 3 {
				t.Fatalf("unexpected id: %d", id)
			}
			return nil
		},
	})

	c, rec := newJSONContext(t, http.MethodDelete, "/api/items/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
