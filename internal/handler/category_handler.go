package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/service"
)

// CategoryHandler handles staff-facing category management endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryCreateRequest represents a category creation request.
type CategoryCreateRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// CategoryUpdateRequest represents a partial category update. Omitted fields
// keep their current values.
type CategoryUpdateRequest struct {
	Name        string `json:"name" validate:"omitempty,max=100"`
	Description string `json:"description"`
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryCreateRequest true "Category data"
// @Success 201 {object} categoryResponse
// @Failure 400 {object} map[string][]string
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.Create(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newCategoryResponse(category))
}

// List godoc
// @Summary List all categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} categoryResponse
// @Router /admin/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCategoryResponses(categories))
}

// Get godoc
// @Summary Read one category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} categoryResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrNotFound)
	}

	category, err := h.categoryService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCategoryResponse(category))
}

// Update godoc
// @Summary Update one category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body CategoryUpdateRequest true "Category fields"
// @Success 200 {object} categoryResponse
// @Failure 400 {object} map[string][]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrNotFound)
	}

	var req CategoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.Update(c.Request().Context(), id, service.CategoryUpdateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCategoryResponse(category))
}

// Delete godoc
// @Summary Delete one category and its articles
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrNotFound)
	}

	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Category deleted successfully."})
}
