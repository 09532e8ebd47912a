package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/service"
)

// AdminHandler handles staff-facing account management and dashboard
// endpoints. Role enforcement happens in the permission gate before any of
// these run.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// AdminUserUpdateRequest represents a partial account update. Omitted fields
// keep their current values.
type AdminUserUpdateRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// AdminAccess godoc
// @Summary Probe for superuser capability
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} messageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/admin-access [get]
func (h *AdminHandler) AdminAccess(c echo.Context) error {
	// The gate already rejected everyone but superusers.
	return c.JSON(http.StatusOK, messageResponse{Message: "Access granted."})
}

// Stats godoc
// @Summary Dashboard aggregate counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListUsers godoc
// @Summary List all accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} adminUserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	out := make([]adminUserResponse, 0, len(users))
	for i := range users {
		out = append(out, newAdminUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// GetUser godoc
// @Summary Read one account
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} adminUserResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrNotFound)
	}

	user, err := h.adminService.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newAdminUserResponse(user))
}

// UpdateUser godoc
// @Summary Update one account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body AdminUserUpdateRequest true "Account fields"
// @Success 200 {object} adminUserResponse
// @Failure 400 {object} map[string][]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrNotFound)
	}

	var req AdminUserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.adminService.UpdateUser(c.Request().Context(), id, service.AdminUserUpdateInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newAdminUserResponse(user))
}

// DeactivateUser godoc
// @Summary Toggle an account's active flag
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} adminUserResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/deactivate [patch]
func (h *AdminHandler) DeactivateUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrNotFound)
	}

	user, err := h.adminService.ToggleActive(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newAdminUserResponse(user))
}

// parseIDParam reads the :id route parameter as an unsigned integer.
func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
