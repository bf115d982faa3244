package domain

import (
	"errors"
	"time"
)

var ErrCategoryNotFound = errors.New("category not found")

// ErrCategoryInUse blocks deletion of a category that items still reference.
var ErrCategoryInUse = errors.New("cannot delete category: items are associated with it")

// Category is a named grouping that items reference.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdOn"`
	UpdatedAt time.Time `json:"updatedOn"`
}

// CategoryWithCount is the read-side projection for listings: a category
// annotated with the live number of items referencing it. The count is
// computed per read, never stored.
type CategoryWithCount struct {
	Category
	ItemCount int64 `json:"itemCount"`
}
