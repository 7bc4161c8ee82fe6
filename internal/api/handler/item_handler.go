package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cameshop/cameshop-api/internal/api/metrics"
	"github.com/cameshop/cameshop-api/internal/core/ports"
)

// ItemHandler handles HTTP requests for catalog operations.
type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// List returns catalog items, optionally filtered by name.
//
// @Summary      List items
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        name  query     string  false  "Case-insensitive substring filter on name"
// @Success      200   {object}  listItemsResponse
// @Router       /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return err
	}

	resp := listItemsResponse{Data: make([]itemResponse, 0, len(items))}
	for _, item := range items {
		resp.Data = append(resp.Data, toItemResponse(item))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns a single catalog item.
//
// @Summary      Get an item by id
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  itemResponse
// @Failure      404  {object}  errorResponse
// @Router       /items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Create adds a catalog item. Any authenticated role.
//
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      itemRequest  true  "Item details"
// @Success      200   {object}  itemResponse
// @Failure      400   {object}  errorResponse
// @Router       /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.Create(c.Request().Context(), ports.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}

	metrics.ItemMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Update replaces an item's fields. Admin only.
//
// @Summary      Update an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Item id"
// @Param        body  body      itemRequest  true  "New item details"
// @Success      200   {object}  itemResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}

	metrics.ItemMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Delete removes an item. Admin only.
//
// @Summary      Delete an item
// @Tags         items
// @Security     BearerAuth
// @Param        id  path  string  true  "Item id"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.ItemMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
