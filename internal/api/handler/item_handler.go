package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockcontrol/inventory-api/internal/core/ports"
)

// ItemHandler handles HTTP requests for item operations.
type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// List returns all items joined with their category names.
//
// @Summary      List items
// @Tags         items
// @Produce      json
// @Success      200  {array}  domain.ItemWithCategory
// @Router       /api/items/ [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns a single item by id.
//
// @Summary      Get an item
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  domain.Item
// @Failure      404  {object}  map[string]string
// @Router       /api/items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	item, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create adds a new item referencing an existing category. Admin only.
//
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      itemRequest  true  "Item fields"
// @Success      201   {object}  domain.Item
// @Failure      400   {object}  map[string]string
// @Router       /api/items/ [post]
func (h *ItemHandler) Create(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.Create(c.Request().Context(), toItemInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Update rewrites an item's fields, re-validating the category reference.
// Admin only.
//
// @Summary      Update an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Item id"
// @Param        body  body      itemRequest  true  "Item fields"
// @Success      200   {object}  domain.Item
// @Failure      404   {object}  map[string]string
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.Update(c.Request().Context(), id, toItemInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete removes an item unconditionally. Admin only.
//
// @Summary      Delete an item
// @Tags         items
// @Security     BearerAuth
// @Param        id  path  int  true  "Item id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toItemInput(req itemRequest) ports.ItemInput {
	return ports.ItemInput{
		Name:       req.Name,
		Quantity:   *req.Quantity,
		Price:      *req.Price,
		CategoryID: req.CategoryID,
	}
}
