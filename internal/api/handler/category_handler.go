package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockcontrol/inventory-api/internal/api/metrics"
	"github.com/stockcontrol/inventory-api/internal/core/domain"
	"github.com/stockcontrol/inventory-api/internal/core/ports"
)

// CategoryHandler handles HTTP requests for category operations.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List returns all categories with their live item counts.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  domain.CategoryWithCount
// @Router       /api/categories/ [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Get returns a single category by id.
//
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category id"
// @Success      200  {object}  domain.Category
// @Failure      404  {object}  map[string]string
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	category, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Create adds a new category. Admin only.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category name"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  map[string]string
// @Router       /api/categories/ [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// Update renames a category. Admin only.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Category id"
// @Param        body  body      categoryRequest  true  "New name"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  map[string]string
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.service.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Delete removes a category no items reference. Admin only.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Category id"
// @Success      200  {object}  deletedResponse
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrCategoryInUse) {
			metrics.CategoryDeletesTotal.WithLabelValues("blocked").Inc()
		}
		return err
	}

	metrics.CategoryDeletesTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, deletedResponse{Message: fmt.Sprintf("id %d successfully deleted", id)})
}
