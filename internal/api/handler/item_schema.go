package handler

// itemRequest uses pointers for quantity and price so a missing field is
// distinguishable from a legitimate zero.
type itemRequest struct {
	Name       string   `json:"name"       validate:"required"`
	Quantity   *int64   `json:"quantity"   validate:"required,gte=0"`
	Price      *float64 `json:"price"      validate:"required,gte=0"`
	CategoryID int64    `json:"categoryId" validate:"required,gt=0"`
}
